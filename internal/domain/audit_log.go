package domain

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID         int64           `json:"id" db:"id"`
	ActorID    int64           `json:"actor_id" db:"actor_id"`
	ActorName  *string         `json:"actor_name,omitempty" db:"actor_name"`
	Action     string          `json:"action" db:"action"`
	TargetType string          `json:"target_type" db:"target_type"`
	TargetID   int64           `json:"target_id" db:"target_id"`
	TargetName string          `json:"target_name" db:"target_name"`
	Details    json.RawMessage `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

const (
	AuditTargetCharacter = "CHARACTER"
	AuditTargetComment   = "COMMENT"
	AuditTargetUser      = "USER"
)

const (
	AuditApproveCharacter = "APPROVE_CHARACTER"
	AuditRejectCharacter  = "REJECT_CHARACTER"
	AuditApproveComment   = "APPROVE_COMMENT"
	AuditRejectComment    = "REJECT_COMMENT"
	AuditSuspendUser      = "SUSPEND_USER"
	AuditReactivateUser   = "REACTIVATE_USER"
	AuditDeleteUser       = "DELETE_USER"
)
