package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant",
	}
	cmd.AddCommand(a.chatModelsCmd(), a.chatSessionsCmd(), a.chatSendCmd(), a.chatLogCmd(), a.chatRmCmd())
	return cmd
}

func (a *App) chatModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List selectable models",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.gw.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range list {
				kind := "text"
				if m.IsImageModel {
					kind = "image"
				}
				fmt.Printf("%-32s %-6s %s\n", m.ID, kind, m.Name)
			}
			return nil
		},
	}
}

func (a *App) chatSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List sessions, most recently active first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.chat.FetchSessions(cmd.Context()); err != nil {
				return err
			}
			for _, s := range a.chat.Sessions() {
				fmt.Printf("%s  [%s]  %s\n", s.ID, s.ModelID, s.Title)
			}
			return nil
		},
	}
}

func (a *App) chatSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <prompt>",
		Short: "Send a prompt; starts a session when none is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if model, _ := cmd.Flags().GetString("model"); model != "" {
				a.chat.SetModel(model)
			}
			if session, _ := cmd.Flags().GetString("session"); session != "" {
				if err := a.chat.Select(cmd.Context(), session); err != nil {
					return err
				}
			}

			reply, err := a.chat.Send(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if reply.Content != "" {
				fmt.Println(reply.Content)
			}
			if reply.ImageURL != nil {
				fmt.Printf("[image] %s\n", *reply.ImageURL)
			}
			return nil
		},
	}
	cmd.Flags().String("session", "", "existing session id")
	cmd.Flags().String("model", "", "model for a new session")
	return cmd
}

func (a *App) chatLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <session-id>",
		Short: "Show a session's messages in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.chat.Select(cmd.Context(), args[0]); err != nil {
				return err
			}
			for _, m := range a.chat.Messages() {
				fmt.Printf("[%s] %s\n", m.Role, m.Content)
				if m.ImageURL != nil {
					fmt.Printf("[image] %s\n", *m.ImageURL)
				}
			}
			return nil
		},
	}
}

func (a *App) chatRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <session-id>",
		Short: "Delete a session and its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.chat.DeleteSession(cmd.Context(), args[0])
		},
	}
}

func (a *App) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the saved theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			if toggle, _ := cmd.Flags().GetBool("toggle"); toggle {
				dark, err := a.theme.Toggle()
				if err != nil {
					return err
				}
				fmt.Printf("theme: %s\n", themeName(dark))
				return nil
			}
			fmt.Printf("theme: %s\n", themeName(a.theme.Dark()))
			return nil
		},
	}
	cmd.Flags().Bool("toggle", false, "flip between light and dark")
	return cmd
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
