package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repositories struct {
	User      UserRepository
	Character CharacterRepository
	Comment   CommentRepository
	Catalog   CatalogRepository
	AuditLog  AuditLogRepository
	Session   SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Character: NewCharacterRepository(db),
		Comment:   NewCommentRepository(db),
		Catalog:   NewCatalogRepository(db),
		AuditLog:  NewAuditLogRepository(db),
		Session:   NewSessionRepository(db),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (23505). The unique indexes are the authoritative guard behind
// the services' check-then-act validations.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
