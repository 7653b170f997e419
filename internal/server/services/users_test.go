package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/server/config"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	hashes map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, hashes: map[string]string{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, email, passwordHash, fullName string) (*models.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, common.ErrorEmailAlreadyExists
	}
	u := &models.User{ID: "u-" + email, Email: email, FullName: fullName}
	f.users[email] = u
	f.hashes[email] = passwordHash
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, "", common.ErrorNotFound
	}
	return u, f.hashes[email], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, p models.ProfilePatch) (*models.User, error) {
	return f.GetByID(ctx, id)
}

type storedToken struct {
	userID    string
	expiresAt time.Time
}

type fakeRefreshTokenRepo struct {
	tokens map[string]storedToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]storedToken{}}
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	f.tokens[token] = storedToken{userID: userID, expiresAt: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshTokenRepo) Get(ctx context.Context, token string) (*models.RefreshToken, error) {
	st, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.RefreshToken{Token: token, UserID: st.userID, ExpiresAt: st.expiresAt}, nil
}

func (f *fakeRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteForUser(ctx context.Context, userID string) error {
	for t, st := range f.tokens {
		if st.userID == userID {
			delete(f.tokens, t)
		}
	}
	return nil
}

func newUserService(repo *fakeUserRepo, tokens *fakeRefreshTokenRepo) *UserService {
	return NewUserService(repo, tokens, &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	})
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo, newFakeRefreshTokenRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Ana@Example.COM ", "long enough", "Ana")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	hash := repo.hashes[user.Email]
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("long enough")) != nil {
		t.Error("stored hash does not match the password")
	}

	if _, err := svc.Register(ctx, "ana@example.com", "long enough", "Ana"); !errors.Is(err, common.ErrorEmailAlreadyExists) {
		t.Errorf("duplicate email: got %v", err)
	}
	if _, err := svc.Register(ctx, "not-an-email", "long enough", ""); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("bad email: got %v", err)
	}
	if _, err := svc.Register(ctx, "x@y.z", "short", ""); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("short password: got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	svc := newUserService(repo, tokens)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ana@example.com", "long enough", "Ana"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, pair, err := svc.Login(ctx, "ANA@example.com", "long enough")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("incomplete token pair")
	}
	if got, err := svc.VerifyAccessToken(pair.AccessToken); err != nil || got != user.ID {
		t.Errorf("VerifyAccessToken = %q, %v", got, err)
	}
	if _, ok := tokens.tokens[pair.RefreshToken]; !ok {
		t.Error("refresh token not stored")
	}

	if _, _, err := svc.Login(ctx, "ana@example.com", "wrong password"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Errorf("wrong password: got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "whatever"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Errorf("unknown user: got %v", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	svc := newUserService(repo, tokens)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ana@example.com", "long enough", "Ana"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	_, pair, err := svc.Login(ctx, "ana@example.com", "long enough")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if fresh.RefreshToken == pair.RefreshToken {
		t.Error("refresh token not rotated")
	}
	if _, ok := tokens.tokens[pair.RefreshToken]; ok {
		t.Error("presented token not invalidated")
	}

	// the old token cannot be replayed
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, common.ErrorUnauthorized) {
		t.Errorf("replayed token: got %v", err)
	}
}

func TestRefresh_ExpiredToken(t *testing.T) {
	tokens := newFakeRefreshTokenRepo()
	tokens.tokens["old"] = storedToken{userID: "u-1", expiresAt: time.Now().Add(-time.Minute)}
	svc := newUserService(newFakeUserRepo(), tokens)

	if _, err := svc.Refresh(context.Background(), "old"); !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
	if _, ok := tokens.tokens["old"]; ok {
		t.Error("expired token not deleted")
	}
}
