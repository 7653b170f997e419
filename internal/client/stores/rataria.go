package stores

import (
	"context"
	"sync"

	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
)

// RatariaStore caches the freeform notes list.
type RatariaStore struct {
	mu         sync.Mutex
	gw         *gateway.Gateway
	entries    []*models.RatariaEntry
	loading    bool
	err        string
	fetchToken int
}

func NewRatariaStore(gw *gateway.Gateway) *RatariaStore {
	return &RatariaStore{gw: gw}
}

func (s *RatariaStore) Entries() []*models.RatariaEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.RatariaEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *RatariaStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *RatariaStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *RatariaStore) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.fetchToken++
	token := s.fetchToken
	s.mu.Unlock()

	list, err := s.gw.ListRataria(ctx)

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
	s.entries = list
	return nil
}

// Create persists a note, falling back to the untitled display name when
// the title is empty, and prepends it on success.
func (s *RatariaStore) Create(ctx context.Context, title, content string) (*models.RatariaEntry, error) {
	if title == "" {
		title = common.UntitledFallback
	}
	created, err := s.gw.CreateRatariaEntry(ctx, &models.RatariaEntry{Title: &title, Content: &content})
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	s.entries = append([]*models.RatariaEntry{created}, s.entries...)
	return created, nil
}

func (s *RatariaStore) Update(ctx context.Context, id string, p models.RatariaPatch) (*models.RatariaEntry, error) {
	updated, err := s.gw.UpdateRatariaEntry(ctx, id, p)
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

func (s *RatariaStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteRatariaEntry(ctx, id); err != nil {
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
