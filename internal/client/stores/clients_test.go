package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/patch"
)

func newGateway(t *testing.T, handler http.Handler) *gateway.Gateway {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return gateway.New(ts.URL, 5*time.Second)
}

func clientRow(id, name string) *models.Client {
	return &models.Client{ID: id, Name: name, Status: models.StatusActive,
		PaymentMethod: models.PaymentPix, UpdatedAt: time.Unix(1700000000, 0)}
}

func TestClientsStore_FetchAndCreate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*models.Client{clientRow("a", "Acme"), clientRow("b", "Beta")})
	})
	mux.HandleFunc("POST /clients", func(w http.ResponseWriter, r *http.Request) {
		var c models.Client
		json.NewDecoder(r.Body).Decode(&c)
		c.ID = "c"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(&c)
	})

	s := NewClientsStore(newGateway(t, mux))
	ctx := context.Background()

	if err := s.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll error: %v", err)
	}
	if got := s.TotalClients(); got != 2 {
		t.Fatalf("TotalClients = %d, want 2", got)
	}

	created, err := s.Create(ctx, &models.Client{Name: "Gamma"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	list := s.Clients()
	if list[0].ID != created.ID {
		t.Errorf("created client not prepended: %v", list[0].ID)
	}
	if s.Loading() || s.Err() != "" {
		t.Errorf("unexpected state: loading=%v err=%q", s.Loading(), s.Err())
	}
}

func TestClientsStore_FetchFailureKeepsCache(t *testing.T) {
	fail := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "boom", "type": "api_error"},
			})
			return
		}
		json.NewEncoder(w).Encode([]*models.Client{clientRow("a", "Acme")})
	})

	s := NewClientsStore(newGateway(t, mux))
	ctx := context.Background()

	if err := s.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll error: %v", err)
	}
	fail = true
	if err := s.FetchAll(ctx); err == nil {
		t.Fatal("expected fetch error")
	}
	if got := s.TotalClients(); got != 1 {
		t.Errorf("stale cache dropped, TotalClients = %d", got)
	}
	if s.Err() == "" {
		t.Error("error state not recorded")
	}
}

func TestClientsStore_UpdateIgnoresStaleResponse(t *testing.T) {
	stale := clientRow("a", "Old name")
	stale.UpdatedAt = time.Unix(1600000000, 0)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*models.Client{clientRow("a", "Acme")})
	})
	mux.HandleFunc("PATCH /clients/a", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(stale)
	})

	s := NewClientsStore(newGateway(t, mux))
	ctx := context.Background()
	if err := s.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll error: %v", err)
	}

	if _, err := s.Update(ctx, "a", models.ClientPatch{Name: patch.Set("Old name")}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got := s.Clients()[0].Name; got != "Acme" {
		t.Errorf("stale response applied, name = %q", got)
	}
}

func TestClientsStore_Reorder(t *testing.T) {
	var gotOrder []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*models.Client{
			clientRow("a", "A"), clientRow("b", "B"), clientRow("c", "C"),
		})
	})
	mux.HandleFunc("PUT /clients/order", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			IDs []string `json:"ids"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotOrder = body.IDs
		json.NewEncoder(w).Encode(map[string]string{"status": "reordered"})
	})

	s := NewClientsStore(newGateway(t, mux))
	ctx := context.Background()
	if err := s.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll error: %v", err)
	}

	// drag A past B and C
	if err := s.Reorder(ctx, "a", 2); err != nil {
		t.Fatalf("Reorder error: %v", err)
	}
	want := []string{"b", "c", "a"}
	for i, id := range want {
		if gotOrder[i] != id {
			t.Fatalf("persisted order = %v, want %v", gotOrder, want)
		}
	}
	list := s.Clients()
	for i, id := range want {
		if list[i].ID != id || list[i].SortPosition != i {
			t.Fatalf("local order = %v", list)
		}
	}

	// moving onto the current position changes nothing
	gotOrder = nil
	if err := s.Reorder(ctx, "c", 1); err != nil {
		t.Fatalf("Reorder error: %v", err)
	}
	if gotOrder != nil {
		t.Errorf("no-op reorder hit the server: %v", gotOrder)
	}

	// unknown ids and out-of-range targets are ignored
	if err := s.Reorder(ctx, "zzz", 0); err != nil {
		t.Fatalf("Reorder error: %v", err)
	}
	if err := s.Reorder(ctx, "a", 99); err != nil {
		t.Fatalf("Reorder error: %v", err)
	}
}

func TestClientsStore_Stats(t *testing.T) {
	inactive := clientRow("b", "Beta")
	inactive.Status = models.StatusInactive
	inactive.PaymentMethod = models.PaymentCard
	inactive.MonthlyBudget = 150

	active := clientRow("a", "Acme")
	active.MonthlyBudget = 100.5

	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*models.Client{active, inactive})
	})

	s := NewClientsStore(newGateway(t, mux))
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll error: %v", err)
	}

	if got := s.ActiveClients(); got != 1 {
		t.Errorf("ActiveClients = %d, want 1", got)
	}
	if got := s.TotalBudget(); got != 250.5 {
		t.Errorf("TotalBudget = %v, want 250.5", got)
	}
	byPayment := s.ClientsByPayment()
	if byPayment[models.PaymentPix] != 1 || byPayment[models.PaymentCard] != 1 {
		t.Errorf("ClientsByPayment = %v", byPayment)
	}
}
