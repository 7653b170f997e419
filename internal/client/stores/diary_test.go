package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gestorapp/gestor/internal/models"
)

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		month, year         int
		wantMonth, wantYear int
	}{
		{0, 2025, 0, 2025},
		{11, 2025, 11, 2025},
		{-1, 2025, 11, 2024},
		{12, 2025, 0, 2026},
		{14, 2025, 2, 2026},
	}
	for _, tt := range tests {
		m, y := normalizeMonth(tt.month, tt.year)
		if m != tt.wantMonth || y != tt.wantYear {
			t.Errorf("normalizeMonth(%d, %d) = %d, %d; want %d, %d",
				tt.month, tt.year, m, y, tt.wantMonth, tt.wantYear)
		}
	}
}

func diaryEntry(id string, date models.DateOnly, createdAt time.Time) *models.DiaryEntry {
	return &models.DiaryEntry{ID: id, Date: date, Title: strPtr("entry " + id), CreatedAt: createdAt}
}

func TestDiaryStore_FetchMonth(t *testing.T) {
	day := models.NewDate(2024, time.December, 24)
	otherDay := models.NewDate(2024, time.December, 25)
	base := time.Unix(1700000000, 0).UTC()

	var gotMonth, gotYear string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /diary", func(w http.ResponseWriter, r *http.Request) {
		gotMonth = r.URL.Query().Get("month")
		gotYear = r.URL.Query().Get("year")
		json.NewEncoder(w).Encode([]*models.DiaryEntry{
			diaryEntry("d-1", day, base),
			diaryEntry("d-2", day, base.Add(time.Hour)),
			diaryEntry("d-3", otherDay, base),
		})
	})

	s := NewDiaryStore(newGateway(t, mux))
	ctx := context.Background()

	// month 12 of 2024 rolls over to January 2025 before the request
	if err := s.FetchMonth(ctx, 12, 2024); err != nil {
		t.Fatalf("FetchMonth error: %v", err)
	}
	if gotMonth != "0" || gotYear != "2025" {
		t.Errorf("requested month=%s year=%s, want 0 2025", gotMonth, gotYear)
	}
	month, year := s.Month()
	if month != 0 || year != 2025 {
		t.Errorf("selected month = %d/%d, want 0/2025", month, year)
	}

	counts := s.CountsByDate()
	if counts[day.Key()] != 2 || counts[otherDay.Key()] != 1 {
		t.Errorf("CountsByDate = %v", counts)
	}

	byDay := s.EntriesByDate(day)
	if len(byDay) != 2 {
		t.Fatalf("EntriesByDate returned %d entries", len(byDay))
	}
	if byDay[0].ID != "d-2" {
		t.Errorf("entries not newest first: %v, %v", byDay[0].ID, byDay[1].ID)
	}
}

func TestDiaryStore_CreateAndDelete(t *testing.T) {
	day := models.NewDate(2025, time.March, 3)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /diary", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*models.DiaryEntry{})
	})
	mux.HandleFunc("POST /diary", func(w http.ResponseWriter, r *http.Request) {
		var e models.DiaryEntry
		json.NewDecoder(r.Body).Decode(&e)
		e.ID = "d-9"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(&e)
	})
	mux.HandleFunc("DELETE /diary/d-9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	})

	s := NewDiaryStore(newGateway(t, mux))
	ctx := context.Background()
	if err := s.FetchMonth(ctx, 2, 2025); err != nil {
		t.Fatalf("FetchMonth error: %v", err)
	}

	created, err := s.Create(ctx, &models.DiaryEntry{Date: day, Title: strPtr("aula")})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID != "d-9" || len(s.Entries()) != 1 {
		t.Fatalf("entry not cached: %+v", s.Entries())
	}

	if err := s.Delete(ctx, "d-9"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(s.Entries()) != 0 {
		t.Errorf("entry not removed locally")
	}
}
