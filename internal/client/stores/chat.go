package stores

import (
	"context"
	"sync"

	"github.com/gestorapp/gestor/internal/client/gateway"
	"github.com/gestorapp/gestor/internal/genai"
	"github.com/gestorapp/gestor/internal/models"
)

// ChatStore caches assistant sessions and the message log of the selected
// session.
type ChatStore struct {
	mu            sync.Mutex
	gw            *gateway.Gateway
	sessions      []*models.ChatSession
	messages      []*models.ChatMessage
	selected      string // session id
	selectedModel string
	loading       bool
	err           string
	fetchToken    int
}

func NewChatStore(gw *gateway.Gateway) *ChatStore {
	return &ChatStore{gw: gw, selectedModel: genai.DefaultModelID}
}

func (s *ChatStore) Sessions() []*models.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.ChatSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

func (s *ChatStore) Messages() []*models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *ChatStore) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *ChatStore) SelectedModel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedModel
}

// SetModel picks the model used when starting the next session. Unknown ids
// are ignored.
func (s *ChatStore) SetModel(modelID string) {
	if !genai.KnownModel(modelID) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedModel = modelID
}

func (s *ChatStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ChatStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ChatStore) FetchSessions(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.fetchToken++
	token := s.fetchToken
	s.mu.Unlock()

	list, err := s.gw.ListChatSessions(ctx)

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
	s.sessions = list
	return nil
}

// Select loads a session's message log and makes it current.
func (s *ChatStore) Select(ctx context.Context, sessionID string) error {
	messages, err := s.gw.ListChatMessages(ctx, sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.err = ""
	s.selected = sessionID
	s.messages = messages
	return nil
}

// StartSession creates a session with the selected model and makes it
// current.
func (s *ChatStore) StartSession(ctx context.Context, title string) (*models.ChatSession, error) {
	s.mu.Lock()
	modelID := s.selectedModel
	s.mu.Unlock()

	created, err := s.gw.CreateChatSession(ctx, title, modelID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	s.sessions = append([]*models.ChatSession{created}, s.sessions...)
	s.selected = created.ID
	s.messages = nil
	return created, nil
}

func (s *ChatStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.gw.DeleteChatSession(ctx, sessionID); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	for i, sess := range s.sessions {
		if sess.ID == sessionID {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	if s.selected == sessionID {
		s.selected = ""
		s.messages = nil
	}
	return nil
}

// Send posts a prompt to the current session and appends both stored turns
// to the log.
func (s *ChatStore) Send(ctx context.Context, prompt string) (*models.ChatMessage, error) {
	s.mu.Lock()
	sessionID := s.selected
	s.mu.Unlock()
	if sessionID == "" {
		created, err := s.StartSession(ctx, prompt)
		if err != nil {
			return nil, err
		}
		sessionID = created.ID
	}

	userTurn, modelTurn, err := s.gw.SendChatMessage(ctx, sessionID, prompt)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.err = ""
	if s.selected == sessionID {
		s.messages = append(s.messages, userTurn, modelTurn)
	}
	return modelTurn, nil
}
