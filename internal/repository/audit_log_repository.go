package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hero-forge/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
	ListByTarget(ctx context.Context, targetType string, targetID int64, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (actor_id, action, target_type, target_id, target_name, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ActorID, log.Action, log.TargetType, log.TargetID, log.TargetName, log.Details,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *auditLogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			al.*,
			u.display_name AS actor_name
		FROM audit_logs al
		LEFT JOIN users u ON al.actor_id = u.id
		ORDER BY al.created_at DESC
		LIMIT $1 OFFSET $2`

	var logs []domain.AuditLog
	err := r.db.SelectContext(ctx, &logs, query, params.PageSize, params.Offset())
	return logs, total, err
}

func (r *auditLogRepository) ListByTarget(ctx context.Context, targetType string, targetID int64, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs WHERE target_type = $1 AND target_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, targetType, targetID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM audit_logs
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	var logs []domain.AuditLog
	err := r.db.SelectContext(ctx, &logs, query, targetType, targetID, params.PageSize, params.Offset())
	return logs, total, err
}
