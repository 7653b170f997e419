package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/gestorapp/gestor/internal/server/migrations"
	"github.com/gestorapp/gestor/internal/server/repositories/access"
	"github.com/gestorapp/gestor/internal/server/repositories/chat"
	"github.com/gestorapp/gestor/internal/server/repositories/clients"
	"github.com/gestorapp/gestor/internal/server/repositories/diary"
	"github.com/gestorapp/gestor/internal/server/repositories/rataria"
	"github.com/gestorapp/gestor/internal/server/repositories/refreshtokens"
	"github.com/gestorapp/gestor/internal/server/repositories/tasks"
	"github.com/gestorapp/gestor/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db            *sql.DB
	users         users.Repository
	refreshTokens refreshtokens.Repository
	clients       clients.Repository
	tasks         tasks.Repository
	diary         diary.Repository
	rataria       rataria.Repository
	access        access.Repository
	chat          chat.Repository
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:            db,
		users:         users.NewPostgresRepository(db),
		refreshTokens: refreshtokens.NewPostgresRepository(db),
		clients:       clients.NewPostgresRepository(db),
		tasks:         tasks.NewPostgresRepository(db),
		diary:         diary.NewPostgresRepository(db),
		rataria:       rataria.NewPostgresRepository(db),
		access:        access.NewPostgresRepository(db),
		chat:          chat.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Conn() *sql.DB { return m.db }
func (m *PostgresRepositoryManager) Close() error  { return m.db.Close() }

func (m *PostgresRepositoryManager) Users() users.Repository                 { return m.users }
func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository { return m.refreshTokens }
func (m *PostgresRepositoryManager) Clients() clients.Repository             { return m.clients }
func (m *PostgresRepositoryManager) Tasks() tasks.Repository                 { return m.tasks }
func (m *PostgresRepositoryManager) Diary() diary.Repository                 { return m.diary }
func (m *PostgresRepositoryManager) Rataria() rataria.Repository             { return m.rataria }
func (m *PostgresRepositoryManager) Access() access.Repository               { return m.access }
func (m *PostgresRepositoryManager) Chat() chat.Repository                   { return m.chat }
