package models

import "time"

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

func (r ChatRole) Valid() bool {
	return r == ChatRoleUser || r == ChatRoleModel
}

// ChatSession groups an ordered conversation with one generative model.
type ChatSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	ModelID   string    `json:"modelId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatMessage is one turn. ImageURL points at a generated image stored in
// object storage; ModelID records which model produced a model turn.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"imageUrl"`
	ModelID   string    `json:"modelId"`
	CreatedAt time.Time `json:"createdAt"`
}
