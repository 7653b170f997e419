package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gestorapp/gestor/internal/models"
)

func (a *App) tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the most-important-task list",
	}
	cmd.AddCommand(a.tasksListCmd(), a.tasksAddCmd(), a.tasksStatusCmd(), a.tasksRmCmd())
	return cmd
}

func (a *App) tasksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks ordered by due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tasks.FetchAll(cmd.Context()); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDUE\tSTATUS\tPRIORITY\tURGENT\tTITLE")
			for _, t := range a.tasks.Tasks() {
				urgent := ""
				if t.IsUrgent {
					urgent = "!"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.DueDate.Key(), t.Status, t.Priority, urgent, t.Title)
			}
			return w.Flush()
		},
	}
}

func (a *App) tasksAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, _ := cmd.Flags().GetString("due")
			priority, _ := cmd.Flags().GetString("priority")
			urgent, _ := cmd.Flags().GetBool("urgent")

			date, err := models.ParseDate(due)
			if err != nil {
				return err
			}
			created, err := a.tasks.Create(cmd.Context(), &models.Task{
				Title:    args[0],
				DueDate:  date,
				Priority: models.TaskPriority(priority),
				IsUrgent: urgent,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created.ID)
			return nil
		},
	}
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().String("priority", "normal", "priority (normal|important|urgent)")
	cmd.Flags().Bool("urgent", false, "urgent flag")
	return cmd
}

func (a *App) tasksStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <pending|done|not_done>",
		Short: "Move a task to any status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tasks.FetchAll(cmd.Context()); err != nil {
				return err
			}
			_, err := a.tasks.SetStatus(cmd.Context(), args[0], models.TaskStatus(args[1]))
			return err
		},
	}
}

func (a *App) tasksRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tasks.FetchAll(cmd.Context()); err != nil {
				return err
			}
			return a.tasks.Delete(cmd.Context(), args[0])
		},
	}
}
