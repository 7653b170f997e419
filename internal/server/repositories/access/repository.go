package access

import (
	"context"

	"github.com/gestorapp/gestor/internal/models"
)

// Repository covers the three vault aggregates. Folder deletion un-files
// children; run it through a transactional handle when atomicity with other
// statements matters.
type Repository interface {
	ListFolders(ctx context.Context, userID string) ([]*models.AccessFolder, error)
	CreateFolder(ctx context.Context, f *models.AccessFolder) (*models.AccessFolder, error)
	UpdateFolder(ctx context.Context, userID, id string, p models.AccessFolderPatch) (*models.AccessFolder, error)
	DeleteFolder(ctx context.Context, userID, id string) error

	ListEntries(ctx context.Context, userID string) ([]*models.AccessEntry, error)
	CreateEntry(ctx context.Context, e *models.AccessEntry) (*models.AccessEntry, error)
	UpdateEntry(ctx context.Context, userID, id string, p models.AccessEntryPatch) (*models.AccessEntry, error)
	DeleteEntry(ctx context.Context, userID, id string) error

	ListDocuments(ctx context.Context, userID string) ([]*models.AccessDocument, error)
	CreateDocument(ctx context.Context, d *models.AccessDocument) (*models.AccessDocument, error)
	UpdateDocument(ctx context.Context, userID, id string, p models.AccessDocumentPatch) (*models.AccessDocument, error)
	DeleteDocument(ctx context.Context, userID, id string) error
}
