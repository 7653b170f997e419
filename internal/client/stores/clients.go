package stores

import (
	"context"
	"sync"

	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/models"
)

// ClientsStore caches the client roster in manual order and derives the
// dashboard numbers from it.
type ClientsStore struct {
	mu         sync.Mutex
	gw         *gateway.Gateway
	clients    []*models.Client
	loading    bool
	err        string
	fetchToken int
}

func NewClientsStore(gw *gateway.Gateway) *ClientsStore {
	return &ClientsStore{gw: gw}
}

func (s *ClientsStore) Clients() []*models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *ClientsStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ClientsStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// FetchAll replaces the cache on success. On failure the stale cache is
// kept and only the error state changes. A fetch started later always wins
// over one started earlier.
func (s *ClientsStore) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.fetchToken++
	token := s.fetchToken
	s.mu.Unlock()

	list, err := s.gw.ListClients(ctx)

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
	s.clients = list
	return nil
}

// Create persists the client and prepends the stored row on success.
func (s *ClientsStore) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	created, err := s.gw.CreateClient(ctx, c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	s.clients = append([]*models.Client{created}, s.clients...)
	return created, nil
}

// Update patches the cached row in place with the server's answer. A cached
// row that is already newer than the response is left untouched.
func (s *ClientsStore) Update(ctx context.Context, id string, p models.ClientPatch) (*models.Client, error) {
	updated, err := s.gw.UpdateClient(ctx, id, p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	for i, c := range s.clients {
		if c.ID == id {
			if !updated.UpdatedAt.Before(c.UpdatedAt) {
				s.clients[i] = updated
			}
			break
		}
	}
	return updated, nil
}

// Delete removes the row remotely first, then locally.
func (s *ClientsStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteClient(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	for i, c := range s.clients {
		if c.ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			break
		}
	}
	return nil
}

// Reorder moves one client to targetIndex, persists the full resulting
// ordering and applies it locally. Moving a client onto its own position is
// a no-op. The list math mirrors drag-and-drop: the moved item is removed
// first, then inserted at the target index of the shortened list.
func (s *ClientsStore) Reorder(ctx context.Context, id string, targetIndex int) error {
	s.mu.Lock()
	current := -1
	for i, c := range s.clients {
		if c.ID == id {
			current = i
			break
		}
	}
	if current == -1 || targetIndex < 0 || targetIndex >= len(s.clients) || current == targetIndex {
		s.mu.Unlock()
		return nil
	}

	reordered := make([]*models.Client, 0, len(s.clients))
	reordered = append(reordered, s.clients[:current]...)
	reordered = append(reordered, s.clients[current+1:]...)
	reordered = append(reordered[:targetIndex:targetIndex], append([]*models.Client{s.clients[current]}, reordered[targetIndex:]...)...)

	ids := make([]string, len(reordered))
	for i, c := range reordered {
		ids[i] = c.ID
	}
	s.mu.Unlock()

	if err := s.gw.ReorderClients(ctx, ids); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	for i, c := range reordered {
		c.SortPosition = i
	}
	s.clients = reordered
	return nil
}

// TotalClients counts all cached clients.
func (s *ClientsStore) TotalClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ActiveClients counts clients in the active status.
func (s *ClientsStore) ActiveClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.clients {
		if c.Status == models.StatusActive {
			n++
		}
	}
	return n
}

// TotalBudget sums the monthly budget across all cached clients.
func (s *ClientsStore) TotalBudget() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, c := range s.clients {
		total += c.MonthlyBudget
	}
	return total
}

// ClientsByPayment counts clients per payment method.
func (s *ClientsStore) ClientsByPayment() map[models.PaymentMethod]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[models.PaymentMethod]int)
	for _, c := range s.clients {
		counts[c.PaymentMethod]++
	}
	return counts
}
