package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gestorapp/gestor/internal/models"
)

func (a *App) accessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "Credentials vault (admin)",
	}
	cmd.AddCommand(a.accessFoldersCmd(), a.accessEntriesCmd(), a.accessDocsCmd())
	return cmd
}

// applyAccessView installs the --search / --folder / --unfiled flags on the
// access store. A search term overrides any folder scope.
func (a *App) applyAccessView(cmd *cobra.Command) {
	if search, _ := cmd.Flags().GetString("search"); search != "" {
		a.access.SetSearch(search)
	}
	if unfiled, _ := cmd.Flags().GetBool("unfiled"); unfiled {
		a.access.SelectFolder(nil)
		return
	}
	if folder, _ := cmd.Flags().GetString("folder"); folder != "" {
		a.access.SelectFolder(&folder)
	}
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "search term (overrides folder scope)")
	cmd.Flags().String("folder", "", "folder id to scope to")
	cmd.Flags().Bool("unfiled", false, "show only unfiled items")
}

func (a *App) accessFoldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage vault folders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.access.FetchAll(cmd.Context()); err != nil {
				return err
			}
			for _, f := range a.access.Folders() {
				fmt.Printf("%s  %s\n", f.ID, f.Name)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var color *string
			if cmd.Flags().Changed("color") {
				c, _ := cmd.Flags().GetString("color")
				color = &c
			}
			created, err := a.access.CreateFolder(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created.ID)
			return nil
		},
	}
	add.Flags().String("color", "", "display color")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a folder; its items become unfiled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.access.FetchAll(cmd.Context()); err != nil {
				return err
			}
			return a.access.DeleteFolder(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func (a *App) accessEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Manage credential entries",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List entries under the current view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.access.FetchAll(cmd.Context()); err != nil {
				return err
			}
			a.applyAccessView(cmd)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tUSERNAME\tURL")
			for _, e := range a.access.FilteredEntries() {
				username, url := "", ""
				if e.Username != nil {
					username = *e.Username
				}
				if e.URL != nil {
					url = *e.URL
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Title, username, url)
			}
			return w.Flush()
		},
	}
	addViewFlags(list)

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a credential entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &models.AccessEntry{Title: args[0]}
			if v, _ := cmd.Flags().GetString("url"); v != "" {
				e.URL = &v
			}
			if v, _ := cmd.Flags().GetString("username"); v != "" {
				e.Username = &v
			}
			if v, _ := cmd.Flags().GetString("folder"); v != "" {
				e.FolderID = &v
			}
			if cmd.Flags().Changed("password") {
				v, _ := cmd.Flags().GetString("password")
				e.Password = &v
			} else {
				v, err := promptPassword("Password: ")
				if err != nil {
					return err
				}
				if v != "" {
					e.Password = &v
				}
			}

			created, err := a.access.CreateEntry(cmd.Context(), e)
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created.ID)
			return nil
		},
	}
	add.Flags().String("url", "", "service URL")
	add.Flags().String("username", "", "login")
	add.Flags().String("password", "", "password (prompted when omitted)")
	add.Flags().String("folder", "", "folder id")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.access.DeleteEntry(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func (a *App) accessDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage vault documents",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List documents under the current view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.access.FetchAll(cmd.Context()); err != nil {
				return err
			}
			a.applyAccessView(cmd)
			for _, d := range a.access.FilteredDocuments() {
				fmt.Printf("%s  %s\n", d.ID, d.Title)
			}
			return nil
		},
	}
	addViewFlags(list)

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			content, _ := cmd.Flags().GetString("content")
			d := &models.AccessDocument{Title: title, Content: &content}
			if v, _ := cmd.Flags().GetString("folder"); v != "" {
				d.FolderID = &v
			}
			created, err := a.access.CreateDocument(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created.ID)
			return nil
		},
	}
	add.Flags().String("title", "", "document title")
	add.Flags().String("content", "", "document body")
	add.Flags().String("folder", "", "folder id")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.access.DeleteDocument(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}
