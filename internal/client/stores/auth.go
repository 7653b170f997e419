// Package stores holds the client-side entity caches. Every store follows
// the same contract: a cached list, loading and error state behind a mutex,
// fetch tokens that discard stale responses, optimistic-free mutations that
// apply the server's answer, and derived read helpers.
package stores

import (
	"context"
	"sync"

	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/patch"
)

// AuthStore tracks the signed-in user.
type AuthStore struct {
	mu      sync.Mutex
	gw      *gateway.Gateway
	user    *models.User
	loading bool
	err     string
}

func NewAuthStore(gw *gateway.Gateway) *AuthStore {
	return &AuthStore{gw: gw}
}

func (s *AuthStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *AuthStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.IsAdmin()
}

func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *AuthStore) SignUp(ctx context.Context, email, password, fullName string) error {
	s.setLoading(true)
	_, err := s.gw.SignUp(ctx, email, password, fullName)
	s.finish(err)
	return err
}

func (s *AuthStore) SignIn(ctx context.Context, email, password string) error {
	s.setLoading(true)
	user, err := s.gw.SignIn(ctx, email, password)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.err = ""
	s.user = user
	return nil
}

func (s *AuthStore) SignOut(ctx context.Context) error {
	err := s.gw.SignOut(ctx)
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return err
}

// Restore fetches the profile for an existing token pair, e.g. on startup.
func (s *AuthStore) Restore(ctx context.Context) error {
	user, err := s.gw.Profile(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

func (s *AuthStore) UpdateProfile(ctx context.Context, p models.ProfilePatch) error {
	user, err := s.gw.UpdateProfile(ctx, p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.err = ""
	s.user = user
	return nil
}

// UploadAvatar uploads the picture through the presigned flow and stores the
// resulting object key on the profile. Use the gateway's PresignGet to turn
// the key into a viewable URL.
func (s *AuthStore) UploadAvatar(ctx context.Context, contentType string, data []byte) error {
	key, uploadURL, err := s.gw.PresignUpload(ctx, contentType, int64(len(data)))
	if err != nil {
		return err
	}
	if err := s.gw.Upload(ctx, uploadURL, contentType, data); err != nil {
		return err
	}
	return s.UpdateProfile(ctx, models.ProfilePatch{AvatarURL: patch.Set(key)})
}

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *AuthStore) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return
	}
	s.err = ""
}
