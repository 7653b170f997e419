package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/patch"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				var err error
				if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			if err := a.auth.SignIn(cmd.Context(), email, password); err != nil {
				return err
			}
			if err := a.saveSession(); err != nil {
				return err
			}
			fmt.Printf("signed in as %s\n", a.auth.User().Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	return cmd
}

func (a *App) registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			if email == "" {
				var err error
				if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			if err := a.auth.SignUp(cmd.Context(), email, password, name); err != nil {
				return err
			}
			fmt.Println("account created, now run: gestor login")
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("name", "", "full name")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.SignOut(cmd.Context()); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			if err := a.saveSession(); err != nil && !os.IsNotExist(err) {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func (a *App) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Restore(cmd.Context()); err != nil {
				return err
			}
			u := a.auth.User()
			fmt.Printf("%s <%s> role=%s\n", u.FullName, u.Email, u.Role)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.ProfilePatch
			if cmd.Flags().Changed("name") {
				name, _ := cmd.Flags().GetString("name")
				p.FullName = patch.Set(name)
			}
			if cmd.Flags().Changed("avatar") {
				path, _ := cmd.Flags().GetString("avatar")
				if path == "" {
					p.AvatarURL = patch.Null[string]()
				} else {
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					return a.auth.UploadAvatar(cmd.Context(), contentTypeFor(path), data)
				}
			}
			return a.auth.UpdateProfile(cmd.Context(), p)
		},
	}
	set.Flags().String("name", "", "full name")
	set.Flags().String("avatar", "", "path to an avatar image (empty clears it)")
	cmd.AddCommand(set)
	return cmd
}

func contentTypeFor(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
