package models

import (
	"time"

	"github.com/gestorapp/gestor/internal/patch"
)

// AccessFolder organizes vault entries and documents. Deleting a folder
// un-files its children (folder reference reset to null); it never deletes
// them.
type AccessFolder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AccessFolderPatch struct {
	Name  patch.Field[string] `json:"name,omitzero"`
	Color patch.Field[string] `json:"color,omitzero"`
}

// AccessEntry is a credential record, optionally filed in a folder.
type AccessEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FolderID  *string   `json:"folderId"`
	Title     string    `json:"title"`
	URL       *string   `json:"url"`
	Username  *string   `json:"username"`
	Password  *string   `json:"password"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AccessEntryPatch struct {
	FolderID patch.Field[string] `json:"folderId,omitzero"`
	Title    patch.Field[string] `json:"title,omitzero"`
	URL      patch.Field[string] `json:"url,omitzero"`
	Username patch.Field[string] `json:"username,omitzero"`
	Password patch.Field[string] `json:"password,omitzero"`
	Notes    patch.Field[string] `json:"notes,omitzero"`
}

// AccessDocument is a freeform rich-text document, optionally filed in a
// folder.
type AccessDocument struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FolderID  *string   `json:"folderId"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AccessDocumentPatch struct {
	FolderID patch.Field[string] `json:"folderId,omitzero"`
	Title    patch.Field[string] `json:"title,omitzero"`
	Content  patch.Field[string] `json:"content,omitzero"`
}
