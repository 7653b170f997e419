package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/dbx"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/server/repositories/access"
)

// AccessService manages the credentials vault. It keeps a direct handle on
// the database so folder deletion can run its un-file-then-delete sequence
// in one transaction.
type AccessService struct {
	repo access.Repository
	db   *sql.DB
}

func NewAccessService(repo access.Repository, db *sql.DB) *AccessService {
	return &AccessService{repo: repo, db: db}
}

func (s *AccessService) ListFolders(ctx context.Context, userID string) ([]*models.AccessFolder, error) {
	return s.repo.ListFolders(ctx, userID)
}

func (s *AccessService) CreateFolder(ctx context.Context, f *models.AccessFolder) (*models.AccessFolder, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return s.repo.CreateFolder(ctx, f)
}

func (s *AccessService) UpdateFolder(ctx context.Context, userID, id string, p models.AccessFolderPatch) (*models.AccessFolder, error) {
	if p.Name.IsSet() {
		name, ok := p.Name.Get()
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
		}
	}
	return s.repo.UpdateFolder(ctx, userID, id, p)
}

// DeleteFolder un-files the folder's entries and documents and removes the
// folder, atomically.
func (s *AccessService) DeleteFolder(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return access.NewPostgresRepository(tx).DeleteFolder(ctx, userID, id)
	})
}

func (s *AccessService) ListEntries(ctx context.Context, userID string) ([]*models.AccessEntry, error) {
	return s.repo.ListEntries(ctx, userID)
}

func (s *AccessService) CreateEntry(ctx context.Context, e *models.AccessEntry) (*models.AccessEntry, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	return s.repo.CreateEntry(ctx, e)
}

func (s *AccessService) UpdateEntry(ctx context.Context, userID, id string, p models.AccessEntryPatch) (*models.AccessEntry, error) {
	if p.Title.IsSet() {
		title, ok := p.Title.Get()
		if !ok || strings.TrimSpace(title) == "" {
			return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
		}
	}
	return s.repo.UpdateEntry(ctx, userID, id, p)
}

func (s *AccessService) DeleteEntry(ctx context.Context, userID, id string) error {
	return s.repo.DeleteEntry(ctx, userID, id)
}

func (s *AccessService) ListDocuments(ctx context.Context, userID string) ([]*models.AccessDocument, error) {
	return s.repo.ListDocuments(ctx, userID)
}

func (s *AccessService) CreateDocument(ctx context.Context, d *models.AccessDocument) (*models.AccessDocument, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		d.Title = common.UntitledFallback
	}
	return s.repo.CreateDocument(ctx, d)
}

func (s *AccessService) UpdateDocument(ctx context.Context, userID, id string, p models.AccessDocumentPatch) (*models.AccessDocument, error) {
	return s.repo.UpdateDocument(ctx, userID, id, p)
}

func (s *AccessService) DeleteDocument(ctx context.Context, userID, id string) error {
	return s.repo.DeleteDocument(ctx, userID, id)
}
