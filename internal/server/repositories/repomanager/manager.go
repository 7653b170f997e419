// Package repomanager aggregates the Postgres repositories behind one
// handle, owns the database connection and applies migrations on startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/gestorapp/gestor/internal/server/repositories/access"
	"github.com/gestorapp/gestor/internal/server/repositories/chat"
	"github.com/gestorapp/gestor/internal/server/repositories/clients"
	"github.com/gestorapp/gestor/internal/server/repositories/diary"
	"github.com/gestorapp/gestor/internal/server/repositories/rataria"
	"github.com/gestorapp/gestor/internal/server/repositories/refreshtokens"
	"github.com/gestorapp/gestor/internal/server/repositories/tasks"
	"github.com/gestorapp/gestor/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error

	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Clients() clients.Repository
	Tasks() tasks.Repository
	Diary() diary.Repository
	Rataria() rataria.Repository
	Access() access.Repository
	Chat() chat.Repository
}
