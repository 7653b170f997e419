package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/genai"
	"github.com/gestorapp/gestor/internal/models"
	"github.com/gestorapp/gestor/internal/server/repositories/chat"
)

// titleLimit bounds session titles derived from the first prompt.
const titleLimit = 40

// Generator is the slice of the genai client the chat service uses.
type Generator interface {
	SendMessage(ctx context.Context, modelID, prompt string, history []genai.Message) (string, error)
	GenerateImage(ctx context.Context, modelID, prompt string) (*genai.ImageData, string, error)
}

// ImageStore persists generated images and returns a public URL.
type ImageStore interface {
	Store(ctx context.Context, contentType string, data []byte) (string, error)
}

type ChatService struct {
	repo      chat.Repository
	generator Generator
	images    ImageStore
}

func NewChatService(repo chat.Repository, generator Generator, images ImageStore) *ChatService {
	return &ChatService{repo: repo, generator: generator, images: images}
}

func (s *ChatService) ListSessions(ctx context.Context, userID string) ([]*models.ChatSession, error) {
	return s.repo.ListSessions(ctx, userID)
}

func (s *ChatService) CreateSession(ctx context.Context, userID, title, modelID string) (*models.ChatSession, error) {
	if modelID == "" {
		modelID = genai.DefaultModelID
	}
	if !genai.KnownModel(modelID) {
		return nil, fmt.Errorf("%w: unknown model %q", common.ErrorValidation, modelID)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = common.UntitledFallback
	}
	return s.repo.CreateSession(ctx, &models.ChatSession{
		UserID:  userID,
		Title:   deriveTitle(title),
		ModelID: modelID,
	})
}

func (s *ChatService) DeleteSession(ctx context.Context, userID, id string) error {
	return s.repo.DeleteSession(ctx, userID, id)
}

func (s *ChatService) Messages(ctx context.Context, userID, sessionID string) ([]*models.ChatMessage, error) {
	if _, err := s.repo.GetSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, sessionID)
}

// SendMessage persists the user's turn, asks the session's model for a
// reply (text, or an image for image-capable models) and persists the model
// turn. Both turns are returned so the caller sees the stored records.
func (s *ChatService) SendMessage(ctx context.Context, userID, sessionID, prompt string) (*models.ChatMessage, *models.ChatMessage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, nil, fmt.Errorf("%w: message is empty", common.ErrorValidation)
	}

	session, err := s.repo.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	history, err := s.repo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	userTurn, err := s.repo.CreateMessage(ctx, &models.ChatMessage{
		SessionID: sessionID,
		Role:      models.ChatRoleUser,
		Content:   prompt,
		ModelID:   session.ModelID,
	})
	if err != nil {
		return nil, nil, err
	}

	reply := &models.ChatMessage{
		SessionID: sessionID,
		Role:      models.ChatRoleModel,
		ModelID:   session.ModelID,
	}

	if genai.IsImageModel(session.ModelID) {
		image, text, err := s.generator.GenerateImage(ctx, session.ModelID, prompt)
		if err != nil {
			return nil, nil, fmt.Errorf("generating image: %w", err)
		}
		if image != nil {
			url, err := s.images.Store(ctx, image.MIMEType, image.Data)
			if err != nil {
				return nil, nil, fmt.Errorf("storing generated image: %w", err)
			}
			reply.ImageURL = &url
		}
		reply.Content = text
	} else {
		turns := make([]genai.Message, 0, len(history))
		for _, m := range history {
			turns = append(turns, genai.Message{Role: string(m.Role), Text: m.Content})
		}
		text, err := s.generator.SendMessage(ctx, session.ModelID, prompt, turns)
		if err != nil {
			return nil, nil, fmt.Errorf("generating reply: %w", err)
		}
		reply.Content = text
	}

	modelTurn, err := s.repo.CreateMessage(ctx, reply)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.TouchSession(ctx, userID, sessionID); err != nil {
		return nil, nil, err
	}

	return userTurn, modelTurn, nil
}

// deriveTitle trims a first prompt down to a compact session title.
func deriveTitle(s string) string {
	if utf8.RuneCountInString(s) <= titleLimit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:titleLimit])) + "..."
}
