package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
)

type fakeClientRepo struct {
	clients   []*models.Client
	positions []string
}

func (f *fakeClientRepo) ListByUser(ctx context.Context, userID string) ([]*models.Client, error) {
	return f.clients, nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, userID, id string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeClientRepo) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	return c, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, userID, id string, p models.ClientPatch) (*models.Client, error) {
	return f.GetByID(ctx, userID, id)
}

func (f *fakeClientRepo) Delete(ctx context.Context, userID, id string) error {
	return nil
}

func (f *fakeClientRepo) UpdatePositions(ctx context.Context, userID string, ids []string) error {
	f.positions = ids
	return nil
}

func clientNamed(id string) *models.Client {
	return &models.Client{ID: id, UserID: "u-1", Name: "client " + id}
}

// sliceConverter lets slice arguments (uuid arrays) reach the mock driver
// unchanged.
type sliceConverter struct{}

func (sliceConverter) ConvertValue(v any) (driver.Value, error) { return v, nil }

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(sliceConverter{}),
	)
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreateClient_Defaults(t *testing.T) {
	svc := NewClientService(&fakeClientRepo{}, nil)

	got, err := svc.Create(context.Background(), &models.Client{UserID: "u-1", Name: "  Acme  "})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Name != "Acme" {
		t.Errorf("name not trimmed: %q", got.Name)
	}
	if got.PaymentMethod != models.PaymentPix {
		t.Errorf("expected default payment method, got %q", got.PaymentMethod)
	}
	if got.Status != models.StatusActive {
		t.Errorf("expected default status, got %q", got.Status)
	}
}

func TestCreateClient_Invalid(t *testing.T) {
	svc := NewClientService(&fakeClientRepo{}, nil)

	tests := []struct {
		name   string
		client *models.Client
	}{
		{"empty name", &models.Client{Name: "   "}},
		{"bad payment method", &models.Client{Name: "Acme", PaymentMethod: "barter"}},
		{"bad status", &models.Client{Name: "Acme", Status: "dormant"}},
		{"negative budget", &models.Client{Name: "Acme", MonthlyBudget: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.client)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestReorder_Invalid(t *testing.T) {
	repo := &fakeClientRepo{clients: []*models.Client{
		clientNamed("a"), clientNamed("b"), clientNamed("c"),
	}}
	svc := NewClientService(repo, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		ids  []string
	}{
		{"empty", nil},
		{"too short", []string{"a", "b"}},
		{"unknown id", []string{"a", "b", "x"}},
		{"duplicate id", []string{"a", "b", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Reorder(ctx, "u-1", tt.ids)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestReorder_CommitsFullPermutation(t *testing.T) {
	repo := &fakeClientRepo{clients: []*models.Client{
		clientNamed("a"), clientNamed("b"), clientNamed("c"),
	}}
	db, mock := newMockDB(t)
	svc := NewClientService(repo, db)

	ids := []string{"c", "a", "b"}
	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^\s*UPDATE clients c\s+SET sort_position`).
		WithArgs("u-1", ids).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	if err := svc.Reorder(context.Background(), "u-1", ids); err != nil {
		t.Fatalf("Reorder error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReorder_RollsBackOnRowCountMismatch(t *testing.T) {
	repo := &fakeClientRepo{clients: []*models.Client{
		clientNamed("a"), clientNamed("b"), clientNamed("c"),
	}}
	db, mock := newMockDB(t)
	svc := NewClientService(repo, db)

	ids := []string{"c", "a", "b"}
	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^\s*UPDATE clients c\s+SET sort_position`).
		WithArgs("u-1", ids).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectRollback()

	err := svc.Reorder(context.Background(), "u-1", ids)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
