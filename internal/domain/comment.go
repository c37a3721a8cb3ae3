package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	CommentTextMinLen = 10
	CommentTextMaxLen = 500
	RatingMin         = 1
	RatingMax         = 5
)

type Comment struct {
	ID              int64         `json:"id" db:"id"`
	CharacterID     int64         `json:"character_id" db:"character_id"`
	AuthorID        int64         `json:"author_id" db:"author_id"`
	Rating          int           `json:"rating" db:"rating"`
	Text            string        `json:"text" db:"text"`
	Status          CommentStatus `json:"status" db:"status"`
	RejectionReason *string       `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ReviewedBy      *int64        `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`

	Author *CommentAuthor `json:"author,omitempty" db:"-"`
}

type CommentAuthor struct {
	ID          int64  `json:"id" db:"author_user_id"`
	DisplayName string `json:"display_name" db:"author_display_name"`
}

type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECTED"
)

// Approved and Rejected are terminal for comments: the only legal
// transitions start from Pending.
var commentTransitions = map[CommentStatus]map[CharacterAction]CommentStatus{
	CommentPending: {
		CharacterActionApprove: CommentApproved,
		CharacterActionReject:  CommentRejected,
	},
}

func (s CommentStatus) Allows(action CharacterAction) bool {
	_, ok := commentTransitions[s][action]
	return ok
}

type CreateCommentInput struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func (i CreateCommentInput) Validate() error {
	if i.Rating < RatingMin || i.Rating > RatingMax {
		return ValidationError("rating must be between 1 and 5")
	}
	// Bounds are in characters, not bytes.
	if l := utf8.RuneCountInString(strings.TrimSpace(i.Text)); l < CommentTextMinLen || l > CommentTextMaxLen {
		return ValidationError("text must be between 10 and 500 characters")
	}
	return nil
}

// ValidateRejectionReason applies the same trimmed-length bounds as comment
// text to a moderator's rejection reason.
func ValidateRejectionReason(reason string) error {
	if l := utf8.RuneCountInString(strings.TrimSpace(reason)); l < CommentTextMinLen || l > CommentTextMaxLen {
		return ValidationError("rejection reason must be between 10 and 500 characters")
	}
	return nil
}
