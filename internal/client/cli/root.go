// Package cli implements the gestor command-line client on top of the
// entity stores. Session tokens persist between invocations in the user's
// config directory.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gestorapp/gestor/internal/client/config"
	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/client/stores"
	"github.com/gestorapp/gestor/internal/client/theme"
)

type App struct {
	config  *config.Config
	gw      *gateway.Gateway
	auth    *stores.AuthStore
	clients *stores.ClientsStore
	tasks   *stores.TasksStore
	diary   *stores.DiaryStore
	rataria *stores.RatariaStore
	access  *stores.AccessStore
	chat    *stores.ChatStore
	theme   *theme.Store
}

func NewApp(cfg *config.Config) *App {
	gw := gateway.New(cfg.ServerBaseURL, cfg.RequestTimeout)

	app := &App{
		config:  cfg,
		gw:      gw,
		auth:    stores.NewAuthStore(gw),
		clients: stores.NewClientsStore(gw),
		tasks:   stores.NewTasksStore(gw),
		diary:   stores.NewDiaryStore(gw),
		rataria: stores.NewRatariaStore(gw),
		access:  stores.NewAccessStore(gw),
		chat:    stores.NewChatStore(gw),
		theme:   theme.Open(filepath.Join(configDir(), "theme.json")),
	}
	app.restoreSession()
	return app
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "gestor")
}

func sessionPath() string {
	return filepath.Join(configDir(), "session.json")
}

type sessionFile struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (a *App) restoreSession() {
	raw, err := os.ReadFile(sessionPath())
	if err != nil {
		return
	}
	var s sessionFile
	if json.Unmarshal(raw, &s) != nil {
		return
	}
	a.gw.SetTokens(s.AccessToken, s.RefreshToken)
}

func (a *App) saveSession() error {
	access, refresh := a.gw.Tokens()
	if access == "" && refresh == "" {
		if err := os.Remove(sessionPath()); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	raw, err := json.Marshal(sessionFile{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir(), 0o700); err != nil {
		return err
	}
	return os.WriteFile(sessionPath(), raw, 0o600)
}

// Execute builds the command tree and runs it.
func Execute() error {
	app := NewApp(config.LoadConfig())

	root := &cobra.Command{
		Use:           "gestor",
		Short:         "Gestor business management CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		app.loginCmd(),
		app.registerCmd(),
		app.logoutCmd(),
		app.profileCmd(),
		app.clientsCmd(),
		app.tasksCmd(),
		app.diaryCmd(),
		app.ratariaCmd(),
		app.accessCmd(),
		app.chatCmd(),
		app.themeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
