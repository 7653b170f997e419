package stores

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/models"
)

// DiaryStore caches one month of diary entries keyed by the zero-based
// month/year it was fetched for.
type DiaryStore struct {
	mu         sync.Mutex
	gw         *gateway.Gateway
	entries    []*models.DiaryEntry
	month      int
	year       int
	loading    bool
	err        string
	fetchToken int
}

func NewDiaryStore(gw *gateway.Gateway) *DiaryStore {
	now := time.Now()
	return &DiaryStore{gw: gw, month: int(now.Month()) - 1, year: now.Year()}
}

func (s *DiaryStore) Entries() []*models.DiaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.DiaryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Month returns the currently selected zero-based month and year.
func (s *DiaryStore) Month() (month, year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.month, s.year
}

func (s *DiaryStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *DiaryStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// normalizeMonth folds an out-of-range zero-based month into [0,11],
// adjusting the year. Month -1 of 2025 becomes December 2024; month 12
// becomes January 2026.
func normalizeMonth(month, year int) (int, int) {
	t := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return int(t.Month()) - 1, t.Year()
}

// FetchMonth loads the entries of one month and makes it the selected month.
// Out-of-range months roll the year over. A slow response for a previously
// selected month never clobbers a newer one.
func (s *DiaryStore) FetchMonth(ctx context.Context, month, year int) error {
	month, year = normalizeMonth(month, year)

	s.mu.Lock()
	s.loading = true
	s.month, s.year = month, year
	s.fetchToken++
	token := s.fetchToken
	s.mu.Unlock()

	list, err := s.gw.ListDiaryMonth(ctx, month, year)

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

func (s *DiaryStore) Create(ctx context.Context, e *models.DiaryEntry) (*models.DiaryEntry, error) {
	created, err := s.gw.CreateDiaryEntry(ctx, e)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	s.entries = append([]*models.DiaryEntry{created}, s.entries...)
	return created, nil
}

func (s *DiaryStore) Update(ctx context.Context, id string, p models.DiaryPatch) (*models.DiaryEntry, error) {
	updated, err := s.gw.UpdateDiaryEntry(ctx, id, p)
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

func (s *DiaryStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteDiaryEntry(ctx, id); err != nil {
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

// EntriesByDate returns the entries of one calendar day, most recently
// created first.
func (s *DiaryStore) EntriesByDate(date models.DateOnly) []*models.DiaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.DiaryEntry
	for _, e := range s.entries {
		if e.Date.Key() == date.Key() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// CountsByDate returns the entry count per day key, the calendar's badge
// numbers.
func (s *DiaryStore) CountsByDate() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, e := range s.entries {
		counts[e.Date.Key()]++
	}
	return counts
}
