package service

import (
	"context"
	"encoding/json"

	"hero-forge/internal/domain"
	"hero-forge/internal/repository"
)

// AuditService appends structured activity records. Record is consumed
// fire-and-forget by the orchestrators; the reads back the staff activity
// screens.
type AuditService interface {
	Record(ctx context.Context, actorID int64, action, targetType string, targetID int64, targetName string, details interface{}) error
	RecentActivity(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
	ActivityForTarget(ctx context.Context, targetType string, targetID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(ctx context.Context, actorID int64, action, targetType string, targetID int64, targetName string, details interface{}) error {
	var payload json.RawMessage
	if details != nil {
		payload, _ = json.Marshal(details)
	}

	log := &domain.AuditLog{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		TargetName: targetName,
		Details:    payload,
	}

	return s.auditRepo.Create(ctx, log)
}

func (s *auditService) RecentActivity(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	params.Normalize()

	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}

func (s *auditService) ActivityForTarget(ctx context.Context, targetType string, targetID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	params.Normalize()

	logs, total, err := s.auditRepo.ListByTarget(ctx, targetType, targetID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}
