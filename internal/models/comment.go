package models

import "time"

// CommentType tags the intent of a building comment.
type CommentType string

const (
	CommentGeneral    CommentType = "general"
	CommentCorrection CommentType = "correction"
	CommentCompliment CommentType = "compliment"
)

// AnonymousUserName is recorded when a comment is submitted without a name.
const AnonymousUserName = "Anonymous User"

// Valid reports whether t is one of the known comment types.
func (t CommentType) Valid() bool {
	switch t {
	case CommentGeneral, CommentCorrection, CommentCompliment:
		return true
	}
	return false
}

// BuildingComment is an append-only note left on a building.
// CreatedAt is assigned when the comment is stored and never changes.
type BuildingComment struct {
	CreatedAt  time.Time   `json:"created_at"`
	ID         string      `json:"id"`
	BuildingID string      `json:"building_id"`
	UserName   string      `json:"user_name"`
	Comment    string      `json:"comment"`
	Type       CommentType `json:"type"`
}

// CommentDraft is the caller-supplied part of a comment; the store fills in
// the identifier and timestamp.
type CommentDraft struct {
	BuildingID string
	UserName   string
	Comment    string
	Type       CommentType
}
