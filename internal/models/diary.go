package models

import (
	"time"

	"github.com/gestorapp/gestor/internal/patch"
)

// DiaryEntry is a day-bucketed rich-text note. Date is the calendar day the
// entry belongs to, independent of CreatedAt.
type DiaryEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      DateOnly  `json:"date"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DiaryPatch struct {
	Date    patch.Field[DateOnly] `json:"date,omitzero"`
	Title   patch.Field[string]   `json:"title,omitzero"`
	Content patch.Field[string]   `json:"content,omitzero"`
}

// RatariaEntry is a freeform rich-text note without a calendar date.
type RatariaEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RatariaPatch struct {
	Title   patch.Field[string] `json:"title,omitzero"`
	Content patch.Field[string] `json:"content,omitzero"`
}
