package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/genai"
	"github.com/gestorapp/gestor/internal/models"
)

type fakeChatRepo struct {
	sessions []*models.ChatSession
	messages []*models.ChatMessage
	touched  []string
}

func (f *fakeChatRepo) ListSessions(ctx context.Context, userID string) ([]*models.ChatSession, error) {
	return f.sessions, nil
}

func (f *fakeChatRepo) GetSession(ctx context.Context, userID, id string) (*models.ChatSession, error) {
	for _, s := range f.sessions {
		if s.ID == id && s.UserID == userID {
			return s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeChatRepo) CreateSession(ctx context.Context, s *models.ChatSession) (*models.ChatSession, error) {
	s.ID = "s-1"
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeChatRepo) TouchSession(ctx context.Context, userID, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeChatRepo) DeleteSession(ctx context.Context, userID, id string) error {
	return nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, sessionID string) ([]*models.ChatMessage, error) {
	return f.messages, nil
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, m *models.ChatMessage) (*models.ChatMessage, error) {
	f.messages = append(f.messages, m)
	return m, nil
}

type fakeGenerator struct {
	reply       string
	history     []genai.Message
	image       *genai.ImageData
	imageText   string
	imageCalled bool
}

func (f *fakeGenerator) SendMessage(ctx context.Context, modelID, prompt string, history []genai.Message) (string, error) {
	f.history = history
	return f.reply, nil
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, modelID, prompt string) (*genai.ImageData, string, error) {
	f.imageCalled = true
	return f.image, f.imageText, nil
}

type fakeImageStore struct {
	url         string
	contentType string
}

func (f *fakeImageStore) Store(ctx context.Context, contentType string, data []byte) (string, error) {
	f.contentType = contentType
	return f.url, nil
}

func TestCreateSession(t *testing.T) {
	svc := NewChatService(&fakeChatRepo{}, &fakeGenerator{}, &fakeImageStore{})
	ctx := context.Background()

	s, err := svc.CreateSession(ctx, "u-1", "", "")
	if err != nil {
		t.Fatalf("CreateSession error: %v", err)
	}
	if s.ModelID != genai.DefaultModelID {
		t.Errorf("expected default model, got %q", s.ModelID)
	}
	if s.Title != common.UntitledFallback {
		t.Errorf("expected fallback title, got %q", s.Title)
	}

	if _, err := svc.CreateSession(ctx, "u-1", "x", "gpt-9"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected validation error for unknown model, got %v", err)
	}

	long := strings.Repeat("palavra ", 20)
	s, err = svc.CreateSession(ctx, "u-1", long, genai.DefaultModelID)
	if err != nil {
		t.Fatalf("CreateSession error: %v", err)
	}
	if len([]rune(s.Title)) > titleLimit+3 || !strings.HasSuffix(s.Title, "...") {
		t.Errorf("title not truncated: %q", s.Title)
	}
}

func TestSendMessage_TextModel(t *testing.T) {
	repo := &fakeChatRepo{
		sessions: []*models.ChatSession{{ID: "s-1", UserID: "u-1", ModelID: genai.DefaultModelID}},
		messages: []*models.ChatMessage{
			{SessionID: "s-1", Role: models.ChatRoleUser, Content: "oi"},
			{SessionID: "s-1", Role: models.ChatRoleModel, Content: "olá"},
		},
	}
	gen := &fakeGenerator{reply: "tudo bem"}
	svc := NewChatService(repo, gen, &fakeImageStore{})

	userTurn, modelTurn, err := svc.SendMessage(context.Background(), "u-1", "s-1", "  e aí?  ")
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if userTurn.Content != "e aí?" || userTurn.Role != models.ChatRoleUser {
		t.Errorf("unexpected user turn: %+v", userTurn)
	}
	if modelTurn.Content != "tudo bem" || modelTurn.Role != models.ChatRoleModel {
		t.Errorf("unexpected model turn: %+v", modelTurn)
	}
	if len(gen.history) != 2 {
		t.Errorf("expected prior turns forwarded as history, got %d", len(gen.history))
	}
	if len(repo.touched) != 1 || repo.touched[0] != "s-1" {
		t.Errorf("session not touched: %v", repo.touched)
	}
}

func TestSendMessage_ImageModel(t *testing.T) {
	repo := &fakeChatRepo{
		sessions: []*models.ChatSession{{ID: "s-1", UserID: "u-1", ModelID: "imagen-3.0-generate-002"}},
	}
	gen := &fakeGenerator{
		image:     &genai.ImageData{MIMEType: "image/png", Data: []byte{1, 2, 3}},
		imageText: "aqui está",
	}
	store := &fakeImageStore{url: "https://cdn.example.com/users/1/pic.png"}
	svc := NewChatService(repo, gen, store)

	_, modelTurn, err := svc.SendMessage(context.Background(), "u-1", "s-1", "um gato")
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if !gen.imageCalled {
		t.Fatal("expected image generation path")
	}
	if store.contentType != "image/png" {
		t.Errorf("image not stored with its MIME type: %q", store.contentType)
	}
	if modelTurn.ImageURL == nil || *modelTurn.ImageURL != store.url {
		t.Errorf("unexpected image url: %v", modelTurn.ImageURL)
	}
	if modelTurn.Content != "aqui está" {
		t.Errorf("unexpected content: %q", modelTurn.Content)
	}
}

func TestSendMessage_Invalid(t *testing.T) {
	svc := NewChatService(&fakeChatRepo{}, &fakeGenerator{}, &fakeImageStore{})
	ctx := context.Background()

	if _, _, err := svc.SendMessage(ctx, "u-1", "s-1", "   "); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, _, err := svc.SendMessage(ctx, "u-1", "nope", "oi"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
