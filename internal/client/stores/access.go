package stores

import (
	"context"
	"strings"
	"sync"

	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/models"
)

// AccessStore caches the credentials vault: folders, entries and documents,
// plus the view state (search term and folder scope). When a search term is
// set it overrides the folder scope entirely.
type AccessStore struct {
	mu         sync.Mutex
	gw         *gateway.Gateway
	folders    []*models.AccessFolder
	entries    []*models.AccessEntry
	documents  []*models.AccessDocument
	search     string
	folderSet  bool
	folderID   *string // nil with folderSet means the unfiled view
	loading    bool
	err        string
	fetchToken int
}

func NewAccessStore(gw *gateway.Gateway) *AccessStore {
	return &AccessStore{gw: gw}
}

func (s *AccessStore) Folders() []*models.AccessFolder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.AccessFolder, len(s.folders))
	copy(out, s.folders)
	return out
}

func (s *AccessStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AccessStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// FetchAll loads folders, entries and documents in one go.
func (s *AccessStore) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.fetchToken++
	token := s.fetchToken
	s.mu.Unlock()

	folders, err := s.gw.ListAccessFolders(ctx)
	var entries []*models.AccessEntry
	var documents []*models.AccessDocument
	if err == nil {
		entries, err = s.gw.ListAccessEntries(ctx)
	}
	if err == nil {
		documents, err = s.gw.ListAccessDocuments(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.fetchToken {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.err = ""
	s.folders = folders
	s.entries = entries
	s.documents = documents
	return nil
}

// SetSearch installs a search term; a non-empty term makes the folder scope
// irrelevant until cleared.
func (s *AccessStore) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = strings.TrimSpace(term)
}

// SelectFolder scopes the view to one folder; nil selects the unfiled view.
func (s *AccessStore) SelectFolder(folderID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderSet = true
	s.folderID = folderID
}

// ClearFolder returns to the everything view.
func (s *AccessStore) ClearFolder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderSet = false
	s.folderID = nil
}

func matchFolder(folderID *string, want *string) bool {
	if want == nil {
		return folderID == nil
	}
	return folderID != nil && *folderID == *want
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// FilteredEntries applies the view state: search term first (matching
// title, URL, username and notes), folder scope otherwise.
func (s *AccessStore) FilteredEntries() []*models.AccessEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.AccessEntry
	for _, e := range s.entries {
		if s.search != "" {
			if containsFold(e.Title, s.search) ||
				(e.URL != nil && containsFold(*e.URL, s.search)) ||
				(e.Username != nil && containsFold(*e.Username, s.search)) ||
				(e.Notes != nil && containsFold(*e.Notes, s.search)) {
				out = append(out, e)
			}
			continue
		}
		if !s.folderSet || matchFolder(e.FolderID, s.folderID) {
			out = append(out, e)
		}
	}
	return out
}

// FilteredDocuments applies the view state: search term first (matching
// title and content), folder scope otherwise.
func (s *AccessStore) FilteredDocuments() []*models.AccessDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.AccessDocument
	for _, d := range s.documents {
		if s.search != "" {
			if containsFold(d.Title, s.search) ||
				(d.Content != nil && containsFold(*d.Content, s.search)) {
				out = append(out, d)
			}
			continue
		}
		if !s.folderSet || matchFolder(d.FolderID, s.folderID) {
			out = append(out, d)
		}
	}
	return out
}

func (s *AccessStore) CreateFolder(ctx context.Context, name string, color *string) (*models.AccessFolder, error) {
	created, err := s.gw.CreateAccessFolder(ctx, &models.AccessFolder{Name: name, Color: color})
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	s.folders = append(s.folders, created)
	return created, nil
}

func (s *AccessStore) UpdateFolder(ctx context.Context, id string, p models.AccessFolderPatch) (*models.AccessFolder, error) {
	updated, err := s.gw.UpdateAccessFolder(ctx, id, p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	for i, f := range s.folders {
		if f.ID == id {
			s.folders[i] = updated
			break
		}
	}
	return updated, nil
}

// DeleteFolder removes the folder remotely, then mirrors the server-side
// cascade locally: children survive with their folder reference cleared.
func (s *AccessStore) DeleteFolder(ctx context.Context, id string) error {
	if err := s.gw.DeleteAccessFolder(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	for i, f := range s.folders {
		if f.ID == id {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			break
		}
	}
	for _, e := range s.entries {
		if e.FolderID != nil && *e.FolderID == id {
			e.FolderID = nil
		}
	}
	for _, d := range s.documents {
		if d.FolderID != nil && *d.FolderID == id {
			d.FolderID = nil
		}
	}
	if s.folderSet && s.folderID != nil && *s.folderID == id {
		s.folderSet = false
		s.folderID = nil
	}
	return nil
}

func (s *AccessStore) CreateEntry(ctx context.Context, e *models.AccessEntry) (*models.AccessEntry, error) {
	created, err := s.gw.CreateAccessEntry(ctx, e)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	s.entries = append([]*models.AccessEntry{created}, s.entries...)
	return created, nil
}

func (s *AccessStore) UpdateEntry(ctx context.Context, id string, p models.AccessEntryPatch) (*models.AccessEntry, error) {
	updated, err := s.gw.UpdateAccessEntry(ctx, id, p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	for i, e := range s.entries {
		if e.ID == id {
			if !updated.UpdatedAt.Before(e.UpdatedAt) {
				s.entries[i] = updated
			}
			break
		}
	}
	return updated, nil
}

func (s *AccessStore) DeleteEntry(ctx context.Context, id string) error {
	if err := s.gw.DeleteAccessEntry(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	return nil
}

func (s *AccessStore) CreateDocument(ctx context.Context, d *models.AccessDocument) (*models.AccessDocument, error) {
	created, err := s.gw.CreateAccessDocument(ctx, d)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	s.documents = append([]*models.AccessDocument{created}, s.documents...)
	return created, nil
}

func (s *AccessStore) UpdateDocument(ctx context.Context, id string, p models.AccessDocumentPatch) (*models.AccessDocument, error) {
	updated, err := s.gw.UpdateAccessDocument(ctx, id, p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	for i, d := range s.documents {
		if d.ID == id {
			if !updated.UpdatedAt.Before(d.UpdatedAt) {
				s.documents[i] = updated
			}
			break
		}
	}
	return updated, nil
}

func (s *AccessStore) DeleteDocument(ctx context.Context, id string) error {
	if err := s.gw.DeleteAccessDocument(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	for i, d := range s.documents {
		if d.ID == id {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			break
		}
	}
	return nil
}
