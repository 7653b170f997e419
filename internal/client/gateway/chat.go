package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gestorapp/gestor/internal/models"
)

// ModelInfo is one entry of the assistant's model selector.
type ModelInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsImageModel bool   `json:"isImageModel"`
}

func (g *Gateway) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var list []ModelInfo
	if err := g.do(ctx, http.MethodGet, "/chat/models", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) ListChatSessions(ctx context.Context) ([]*models.ChatSession, error) {
	var list []*models.ChatSession
	if err := g.do(ctx, http.MethodGet, "/chat/sessions", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateChatSession(ctx context.Context, title, modelID string) (*models.ChatSession, error) {
	var created models.ChatSession
	err := g.do(ctx, http.MethodPost, "/chat/sessions", nil, map[string]string{
		"title":   title,
		"modelId": modelID,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) DeleteChatSession(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/chat/sessions/"+id, nil, nil, nil)
}

func (g *Gateway) ListChatMessages(ctx context.Context, sessionID string) ([]*models.ChatMessage, error) {
	var list []*models.ChatMessage
	if err := g.do(ctx, http.MethodGet, "/chat/sessions/"+sessionID+"/messages", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SendChatMessage posts a prompt and returns the stored user and model turns.
func (g *Gateway) SendChatMessage(ctx context.Context, sessionID, message string) (userTurn, modelTurn *models.ChatMessage, err error) {
	var resp struct {
		UserMessage  *models.ChatMessage `json:"userMessage"`
		ModelMessage *models.ChatMessage `json:"modelMessage"`
	}
	err = g.do(ctx, http.MethodPost, "/chat/sessions/"+sessionID+"/messages", nil,
		map[string]string{"message": message}, &resp)
	if err != nil {
		return nil, nil, err
	}
	return resp.UserMessage, resp.ModelMessage, nil
}

// PresignUpload asks the server for a presigned PUT URL for an image.
func (g *Gateway) PresignUpload(ctx context.Context, contentType string, size int64) (key, uploadURL string, err error) {
	var resp struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	err = g.do(ctx, http.MethodPost, "/files/presign-upload", nil, map[string]any{
		"contentType": contentType,
		"size":        size,
	}, &resp)
	if err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}

// PresignGet resolves a storage key to a temporary download URL.
func (g *Gateway) PresignGet(ctx context.Context, key string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	err := g.do(ctx, http.MethodPost, "/files/presign-get", nil,
		map[string]string{"key": key}, &resp)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// Upload PUTs object bytes to a presigned URL. The URL already carries the
// authorization, so no bearer token is attached.
func (g *Gateway) Upload(ctx context.Context, uploadURL, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	return nil
}
