package chat

import (
	"context"

	"github.com/gestorapp/gestor/internal/models"
)

type Repository interface {
	ListSessions(ctx context.Context, userID string) ([]*models.ChatSession, error)
	GetSession(ctx context.Context, userID, id string) (*models.ChatSession, error)
	CreateSession(ctx context.Context, s *models.ChatSession) (*models.ChatSession, error)
	// TouchSession bumps updated_at so recently active sessions sort first.
	TouchSession(ctx context.Context, userID, id string) error
	DeleteSession(ctx context.Context, userID, id string) error

	ListMessages(ctx context.Context, sessionID string) ([]*models.ChatMessage, error)
	CreateMessage(ctx context.Context, m *models.ChatMessage) (*models.ChatMessage, error)
}
