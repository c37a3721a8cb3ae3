package domain

import "time"

// CharacterClass is catalog reference data; characters hold a ClassID that
// must resolve to an active class at create/update time.
type CharacterClass struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type ItemSlot struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type ItemType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Item struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	SlotID      int64     `json:"slot_id" db:"slot_id"`
	TypeID      int64     `json:"type_id" db:"type_id"`
	ClassID     *int64    `json:"class_id,omitempty" db:"class_id"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type SortKey string

const (
	SortNameAsc  SortKey = "nameAsc"
	SortNameDesc SortKey = "nameDesc"
	SortRecent   SortKey = "recent"
	SortOldest   SortKey = "oldest"
)

func (s SortKey) IsValid() bool {
	switch s {
	case SortNameAsc, SortNameDesc, SortRecent, SortOldest:
		return true
	default:
		return false
	}
}

// OrderBy maps a sort key onto an ORDER BY clause over fixed column names.
// Defaults to recent-first for anything unrecognized so repositories never
// interpolate caller input.
func (s SortKey) OrderBy() string {
	switch s {
	case SortNameAsc:
		return "name ASC"
	case SortNameDesc:
		return "name DESC"
	case SortOldest:
		return "created_at ASC"
	default:
		return "created_at DESC"
	}
}

// ItemFilter is the paged catalog query of the entity store: free-text
// search plus optional slot/type/class and active-flag filters.
type ItemFilter struct {
	Search   string  `query:"search"`
	SlotID   *int64  `query:"slot_id"`
	TypeID   *int64  `query:"type_id"`
	ClassID  *int64  `query:"class_id"`
	IsActive *bool   `query:"is_active"`
	Sort     SortKey `query:"sort"`
}
