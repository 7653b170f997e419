// Package services implements the gateway's business logic on top of the
// repositories: authentication, client ordering, month-windowed retrieval,
// vault cascades and the assistant integration.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/server/auth"
	"github.com/gestorapp/gestor/internal/server/config"
	"github.com/gestorapp/gestor/internal/server/repositories/refreshtokens"
	"github.com/gestorapp/gestor/internal/server/repositories/users"
)

type UserService struct {
	repo                         users.Repository
	refreshTokenRepo             refreshtokens.Repository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, refreshTokenRepo refreshtokens.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must have at least 8 characters", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repo.Create(ctx, email, string(hash), fullName)
	if err != nil {
		if errors.Is(err, common.ErrorEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, hash, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented token is invalidated and a
// fresh pair is issued.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	rt, err := s.refreshTokenRepo.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if time.Now().After(rt.ExpiresAt) {
		_ = s.refreshTokenRepo.Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	if err := s.refreshTokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, common.ErrorInternal
	}

	return s.issueTokens(ctx, rt.UserID)
}

func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	return s.refreshTokenRepo.Delete(ctx, refreshToken)
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, p models.ProfilePatch) (*models.User, error) {
	return s.repo.UpdateProfile(ctx, userID, p)
}

// IsAdmin reports whether the user holds the admin role.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

// VerifyAccessToken resolves the owner identity carried by an access token.
func (s *UserService) VerifyAccessToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) issueTokens(ctx context.Context, userID string) (*models.TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.refreshTokenRepo.Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
