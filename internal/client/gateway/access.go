package gateway

import (
	"context"
	"net/http"

	"github.com/gestorapp/gestor/internal/models"
)

func (g *Gateway) ListAccessFolders(ctx context.Context) ([]*models.AccessFolder, error) {
	var list []*models.AccessFolder
	if err := g.do(ctx, http.MethodGet, "/access/folders", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateAccessFolder(ctx context.Context, f *models.AccessFolder) (*models.AccessFolder, error) {
	var created models.AccessFolder
	if err := g.do(ctx, http.MethodPost, "/access/folders", nil, f, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) UpdateAccessFolder(ctx context.Context, id string, p models.AccessFolderPatch) (*models.AccessFolder, error) {
	var updated models.AccessFolder
	if err := g.do(ctx, http.MethodPatch, "/access/folders/"+id, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *Gateway) DeleteAccessFolder(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/access/folders/"+id, nil, nil, nil)
}

func (g *Gateway) ListAccessEntries(ctx context.Context) ([]*models.AccessEntry, error) {
	var list []*models.AccessEntry
	if err := g.do(ctx, http.MethodGet, "/access/entries", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateAccessEntry(ctx context.Context, e *models.AccessEntry) (*models.AccessEntry, error) {
	var created models.AccessEntry
	if err := g.do(ctx, http.MethodPost, "/access/entries", nil, e, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) UpdateAccessEntry(ctx context.Context, id string, p models.AccessEntryPatch) (*models.AccessEntry, error) {
	var updated models.AccessEntry
	if err := g.do(ctx, http.MethodPatch, "/access/entries/"+id, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *Gateway) DeleteAccessEntry(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/access/entries/"+id, nil, nil, nil)
}

func (g *Gateway) ListAccessDocuments(ctx context.Context) ([]*models.AccessDocument, error) {
	var list []*models.AccessDocument
	if err := g.do(ctx, http.MethodGet, "/access/documents", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateAccessDocument(ctx context.Context, d *models.AccessDocument) (*models.AccessDocument, error) {
	var created models.AccessDocument
	if err := g.do(ctx, http.MethodPost, "/access/documents", nil, d, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) UpdateAccessDocument(ctx context.Context, id string, p models.AccessDocumentPatch) (*models.AccessDocument, error) {
	var updated models.AccessDocument
	if err := g.do(ctx, http.MethodPatch, "/access/documents/"+id, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *Gateway) DeleteAccessDocument(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/access/documents/"+id, nil, nil, nil)
}
