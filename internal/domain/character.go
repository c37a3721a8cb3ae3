package domain

import (
	"strings"
	"time"
)

type Character struct {
	ID              int64           `json:"id" db:"id"`
	OwnerID         int64           `json:"owner_id" db:"owner_id"`
	Name            string          `json:"name" db:"name"`
	ClassID         int64           `json:"class_id" db:"class_id"`
	Gender          Gender          `json:"gender" db:"gender"`
	SkinColor       string          `json:"skin_color" db:"skin_color"`
	EyeColor        string          `json:"eye_color" db:"eye_color"`
	HairColor       string          `json:"hair_color" db:"hair_color"`
	HairStyle       string          `json:"hair_style" db:"hair_style"`
	EyeShape        string          `json:"eye_shape" db:"eye_shape"`
	NoseShape       string          `json:"nose_shape" db:"nose_shape"`
	MouthShape      string          `json:"mouth_shape" db:"mouth_shape"`
	FaceShape       string          `json:"face_shape" db:"face_shape"`
	FacialHair      string          `json:"facial_hair" db:"facial_hair"`
	BodyType        string          `json:"body_type" db:"body_type"`
	Status          CharacterStatus `json:"status" db:"status"`
	IsShared        bool            `json:"is_shared" db:"is_shared"`
	PortraitURL     *string         `json:"portrait_url,omitempty" db:"portrait_url"`
	RejectionReason *string         `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ReviewedBy      *int64          `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	Owner *CharacterOwner `json:"owner,omitempty" db:"-"`
}

// CharacterOwner is the public slice of the owning user attached to gallery
// and moderation reads.
type CharacterOwner struct {
	ID          int64  `json:"id" db:"owner_user_id"`
	DisplayName string `json:"display_name" db:"owner_display_name"`
}

type CharacterStatus string

const (
	CharacterDraft    CharacterStatus = "DRAFT"
	CharacterPending  CharacterStatus = "PENDING"
	CharacterApproved CharacterStatus = "APPROVED"
	CharacterRejected CharacterStatus = "REJECTED"
)

func (s CharacterStatus) IsValid() bool {
	switch s {
	case CharacterDraft, CharacterPending, CharacterApproved, CharacterRejected:
		return true
	default:
		return false
	}
}

// CharacterAction names every business transition the lifecycle manager
// exposes. Edit keeps the current status except for the rename-on-approved
// re-review, which the service applies on top of the table.
type CharacterAction string

const (
	CharacterActionEdit      CharacterAction = "EDIT"
	CharacterActionSubmit    CharacterAction = "SUBMIT"
	CharacterActionApprove   CharacterAction = "APPROVE"
	CharacterActionReject    CharacterAction = "REJECT"
	CharacterActionShare     CharacterAction = "SHARE"
	CharacterActionDuplicate CharacterAction = "DUPLICATE"
)

// characterTransitions is the single source of truth for legal transitions:
// from-status × action → resulting status. An absent entry means the action
// is not allowed from that status, so "approve twice" is unrepresentable.
var characterTransitions = map[CharacterStatus]map[CharacterAction]CharacterStatus{
	CharacterDraft: {
		CharacterActionEdit:   CharacterDraft,
		CharacterActionSubmit: CharacterPending,
	},
	CharacterPending: {
		CharacterActionApprove: CharacterApproved,
		CharacterActionReject:  CharacterRejected,
	},
	CharacterApproved: {
		CharacterActionEdit:      CharacterApproved,
		CharacterActionShare:     CharacterApproved,
		CharacterActionDuplicate: CharacterApproved,
	},
	CharacterRejected: {
		CharacterActionEdit:   CharacterRejected,
		CharacterActionSubmit: CharacterPending,
	},
}

func (s CharacterStatus) Allows(action CharacterAction) bool {
	_, ok := characterTransitions[s][action]
	return ok
}

func (s CharacterStatus) Next(action CharacterAction) (CharacterStatus, bool) {
	next, ok := characterTransitions[s][action]
	return next, ok
}

type Gender string

const (
	GenderMale      Gender = "Male"
	GenderFemale    Gender = "Female"
	GenderNonBinary Gender = "NonBinary"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary:
		return true
	default:
		return false
	}
}

// CharacterAttributes carries the owner-editable fields shared by create and
// update.
type CharacterAttributes struct {
	Name       string `json:"name"`
	ClassID    int64  `json:"class_id"`
	Gender     Gender `json:"gender"`
	SkinColor  string `json:"skin_color"`
	EyeColor   string `json:"eye_color"`
	HairColor  string `json:"hair_color"`
	HairStyle  string `json:"hair_style"`
	EyeShape   string `json:"eye_shape"`
	NoseShape  string `json:"nose_shape"`
	MouthShape string `json:"mouth_shape"`
	FaceShape  string `json:"face_shape"`
	FacialHair string `json:"facial_hair"`
	BodyType   string `json:"body_type"`
}

type DuplicateCharacterInput struct {
	Name string `json:"name"`
}

type RejectInput struct {
	Reason string `json:"reason"`
}

// GalleryFilter drives the public shared-character listing.
type GalleryFilter struct {
	Search  string  `query:"search"`
	ClassID *int64  `query:"class_id"`
	Sort    SortKey `query:"sort"`
}

// NameChanged reports whether the submitted name differs from the persisted
// one. The comparison is an exact ordinal match: trimming or casing
// differences count as a change.
func (c *Character) NameChanged(newName string) bool {
	return c.Name != newName
}

// ClearReview wipes the review verdict when the character returns to the
// moderation queue, so a fresh Pending row never carries a stale rejection
// reason or reviewer.
func (c *Character) ClearReview() {
	c.RejectionReason = nil
	c.ReviewedBy = nil
	c.ReviewedAt = nil
}

// ApplyAttributes copies the editable fields onto the character.
func (c *Character) ApplyAttributes(attrs CharacterAttributes) {
	c.Name = attrs.Name
	c.ClassID = attrs.ClassID
	c.Gender = attrs.Gender
	c.SkinColor = attrs.SkinColor
	c.EyeColor = attrs.EyeColor
	c.HairColor = attrs.HairColor
	c.HairStyle = attrs.HairStyle
	c.EyeShape = attrs.EyeShape
	c.NoseShape = attrs.NoseShape
	c.MouthShape = attrs.MouthShape
	c.FaceShape = attrs.FaceShape
	c.FacialHair = attrs.FacialHair
	c.BodyType = attrs.BodyType
}

func (a CharacterAttributes) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ValidationError("name is required")
	}
	if !a.Gender.IsValid() {
		return ValidationError("invalid gender")
	}
	if a.ClassID <= 0 {
		return ValidationError("class_id is required")
	}
	return nil
}
