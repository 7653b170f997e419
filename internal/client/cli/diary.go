package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/patch"
)

func (a *App) diaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diary",
		Short: "Day-bucketed diary entries",
	}
	cmd.AddCommand(a.diaryMonthCmd(), a.diaryDayCmd(), a.diaryAddCmd(), a.diaryEditCmd(), a.diaryRmCmd())
	return cmd
}

// monthFlags reads the optional --month/--year pair, defaulting to the
// current month. --month is one-based on the command line.
func monthFlags(cmd *cobra.Command) (month, year int) {
	now := time.Now()
	month, year = int(now.Month())-1, now.Year()
	if cmd.Flags().Changed("month") {
		m, _ := cmd.Flags().GetInt("month")
		month = m - 1
	}
	if cmd.Flags().Changed("year") {
		year, _ = cmd.Flags().GetInt("year")
	}
	return month, year
}

func (a *App) diaryMonthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show day counts for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, year := monthFlags(cmd)
			if err := a.diary.FetchMonth(cmd.Context(), month, year); err != nil {
				return err
			}
			counts := a.diary.CountsByDate()
			days := make([]string, 0, len(counts))
			for day := range counts {
				days = append(days, day)
			}
			sort.Strings(days)
			for _, day := range days {
				fmt.Printf("%s  %d\n", day, counts[day])
			}
			return nil
		},
	}
	cmd.Flags().Int("month", 0, "month (1-12)")
	cmd.Flags().Int("year", 0, "year")
	return cmd
}

func (a *App) diaryDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "Show one day's entries, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := models.ParseDate(args[0])
			if err != nil {
				return err
			}
			if err := a.diary.FetchMonth(cmd.Context(), int(date.Month())-1, date.Year()); err != nil {
				return err
			}
			for _, e := range a.diary.EntriesByDate(date) {
				title := ""
				if e.Title != nil {
					title = *e.Title
				}
				fmt.Printf("%s  %s\n", e.ID, title)
				if e.Content != nil && *e.Content != "" {
					fmt.Printf("    %s\n", *e.Content)
				}
			}
			return nil
		},
	}
}

func (a *App) diaryAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <YYYY-MM-DD>",
		Short: "Add an entry to a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			content, _ := cmd.Flags().GetString("content")

			date, err := models.ParseDate(args[0])
			if err != nil {
				return err
			}
			created, err := a.diary.Create(cmd.Context(), &models.DiaryEntry{
				Date:    date,
				Title:   &title,
				Content: &content,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created.ID)
			return nil
		},
	}
	cmd.Flags().String("title", "", "entry title")
	cmd.Flags().String("content", "", "entry body")
	return cmd
}

func (a *App) diaryEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.DiaryPatch
			if cmd.Flags().Changed("title") {
				v, _ := cmd.Flags().GetString("title")
				p.Title = patch.Set(v)
			}
			if cmd.Flags().Changed("content") {
				v, _ := cmd.Flags().GetString("content")
				p.Content = patch.Set(v)
			}
			if cmd.Flags().Changed("date") {
				v, _ := cmd.Flags().GetString("date")
				date, err := models.ParseDate(v)
				if err != nil {
					return err
				}
				p.Date = patch.Set(date)
			}
			_, err := a.diary.Update(cmd.Context(), args[0], p)
			return err
		},
	}
	cmd.Flags().String("title", "", "entry title")
	cmd.Flags().String("content", "", "entry body")
	cmd.Flags().String("date", "", "move to another day (YYYY-MM-DD)")
	return cmd
}

func (a *App) diaryRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.diary.Delete(cmd.Context(), args[0])
		},
	}
}

func (a *App) ratariaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rataria",
		Short: "Freeform notes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.rataria.FetchAll(cmd.Context()); err != nil {
				return err
			}
			for _, e := range a.rataria.Entries() {
				title := ""
				if e.Title != nil {
					title = *e.Title
				}
				fmt.Printf("%s  %s\n", e.ID, title)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			content, _ := cmd.Flags().GetString("content")
			created, err := a.rataria.Create(cmd.Context(), title, content)
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created.ID)
			return nil
		},
	}
	add.Flags().String("title", "", "note title")
	add.Flags().String("content", "", "note body")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.rataria.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}
