package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/patch"
)

func (a *App) clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage the client roster",
	}
	cmd.AddCommand(
		a.clientsListCmd(),
		a.clientsAddCmd(),
		a.clientsEditCmd(),
		a.clientsRmCmd(),
		a.clientsReorderCmd(),
		a.clientsStatsCmd(),
	)
	return cmd
}

func (a *App) clientsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients in manual order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.clients.FetchAll(cmd.Context()); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tNAME\tSTATUS\tPAYMENT\tBUDGET")
			for i, c := range a.clients.Clients() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\n", i, c.ID, c.Name, c.Status, c.PaymentMethod, c.MonthlyBudget)
			}
			return w.Flush()
		},
	}
}

func (a *App) clientsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			location, _ := cmd.Flags().GetString("location")
			payment, _ := cmd.Flags().GetString("payment")
			status, _ := cmd.Flags().GetString("status")
			budget, _ := cmd.Flags().GetFloat64("budget")

			created, err := a.clients.Create(cmd.Context(), &models.Client{
				Name:          name,
				Location:      location,
				PaymentMethod: models.PaymentMethod(payment),
				Status:        models.ClientStatus(status),
				MonthlyBudget: budget,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "client name")
	cmd.Flags().String("location", "", "city/region")
	cmd.Flags().String("payment", "pix", "payment method (pix|card)")
	cmd.Flags().String("status", "active", "status (active|paused|inactive|prospecting|closed)")
	cmd.Flags().Float64("budget", 0, "monthly budget")
	return cmd
}

func (a *App) clientsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update client fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.ClientPatch
			if cmd.Flags().Changed("name") {
				v, _ := cmd.Flags().GetString("name")
				p.Name = patch.Set(v)
			}
			if cmd.Flags().Changed("status") {
				v, _ := cmd.Flags().GetString("status")
				p.Status = patch.Set(models.ClientStatus(v))
			}
			if cmd.Flags().Changed("payment") {
				v, _ := cmd.Flags().GetString("payment")
				p.PaymentMethod = patch.Set(models.PaymentMethod(v))
			}
			if cmd.Flags().Changed("budget") {
				v, _ := cmd.Flags().GetFloat64("budget")
				p.MonthlyBudget = patch.Set(v)
			}
			if cmd.Flags().Changed("notes") {
				v, _ := cmd.Flags().GetString("notes")
				if v == "" {
					p.Notes = patch.Null[string]()
				} else {
					p.Notes = patch.Set(v)
				}
			}

			_, err := a.clients.Update(cmd.Context(), args[0], p)
			return err
		},
	}
	cmd.Flags().String("name", "", "client name")
	cmd.Flags().String("status", "", "status")
	cmd.Flags().String("payment", "", "payment method")
	cmd.Flags().Float64("budget", 0, "monthly budget")
	cmd.Flags().String("notes", "", "notes (empty clears)")
	return cmd
}

func (a *App) clientsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.clients.FetchAll(cmd.Context()); err != nil {
				return err
			}
			return a.clients.Delete(cmd.Context(), args[0])
		},
	}
}

func (a *App) clientsReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <id>",
		Short: "Move a client to a new position (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, _ := cmd.Flags().GetInt("to")
			if err := a.clients.FetchAll(cmd.Context()); err != nil {
				return err
			}
			return a.clients.Reorder(cmd.Context(), args[0], to)
		},
	}
	cmd.Flags().Int("to", 0, "target position (zero-based)")
	return cmd
}

func (a *App) clientsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Dashboard numbers derived from the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.clients.FetchAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("total clients:  %d\n", a.clients.TotalClients())
			fmt.Printf("active clients: %d\n", a.clients.ActiveClients())
			fmt.Printf("total budget:   %.2f\n", a.clients.TotalBudget())
			for method, n := range a.clients.ClientsByPayment() {
				fmt.Printf("payment %-5s:  %d\n", method, n)
			}
			return nil
		},
	}
}
