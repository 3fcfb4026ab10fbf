package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Favorite is a pointer from a viewer to another user's open booklist. The
// name, visibility, and owner are cached at favorite time; List re-resolves
// the live booklist and falls back to these cached fields if it's gone.
type Favorite struct {
	bun.BaseModel `bun:"table:favorites,alias:f"`

	ID         int       `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     int       `bun:",nullzero" json:"user_id"`
	BooklistID int       `bun:",nullzero" json:"booklist_id"`

	// Cached snapshot of the source booklist. May drift, and a legacy row
	// can have an empty cache, so zero values are stored as-is.
	ListOwnerID int    `json:"list_owner_id"`
	Name        string `json:"name"`
	Visibility  string `json:"visibility"`
}
