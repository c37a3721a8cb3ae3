package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"hero-forge/internal/domain"
	"hero-forge/internal/repository"
)

// UserService carries the admin account-lifecycle tooling. Suspension and
// deletion also revoke every active session so the account loses access
// immediately; the notification and audit record are best-effort.
type UserService interface {
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	Suspend(ctx context.Context, id, adminID int64) error
	Reactivate(ctx context.Context, id, adminID int64) error
	Delete(ctx context.Context, id, adminID int64) error
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	email       EmailService
	audit       AuditService
	log         zerolog.Logger
	timeout     time.Duration

	dispatch func(ctx context.Context, fn func(context.Context))
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, email EmailService, audit AuditService, log zerolog.Logger, timeout time.Duration) UserService {
	s := &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		email:       email,
		audit:       audit,
		log:         log.With().Str("component", "accounts").Logger(),
		timeout:     timeout,
	}
	s.dispatch = func(ctx context.Context, fn func(context.Context)) {
		detached := context.WithoutCancel(ctx)
		go func() {
			ctx, cancel := context.WithTimeout(detached, s.timeout)
			defer cancel()
			fn(ctx)
		}()
	}
	return s
}

func (s *userService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	params.Normalize()

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *userService) Suspend(ctx context.Context, id, adminID int64) error {
	user, err := s.loadTarget(ctx, id, adminID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return domain.ValidationError("account is already suspended")
	}

	writeCtx := context.WithoutCancel(ctx)
	if err := s.userRepo.Suspend(writeCtx, id); err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeAllForUser(writeCtx, id); err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("session revocation after suspend failed")
	}

	s.dispatch(ctx, func(ctx context.Context) {
		if err := s.email.SendAccountSuspended(ctx, user.Email, user.DisplayName); err != nil {
			s.log.Error().Err(err).Int64("user_id", id).Msg("suspension notification failed")
		}
		if err := s.audit.Record(ctx, adminID, domain.AuditSuspendUser, domain.AuditTargetUser, id, user.DisplayName, nil); err != nil {
			s.log.Error().Err(err).Int64("user_id", id).Msg("audit record failed")
		}
	})

	return nil
}

func (s *userService) Reactivate(ctx context.Context, id, adminID int64) error {
	user, err := s.loadTarget(ctx, id, adminID)
	if err != nil {
		return err
	}
	if user.IsActive {
		return domain.ValidationError("account is not suspended")
	}

	if err := s.userRepo.Reactivate(context.WithoutCancel(ctx), id); err != nil {
		return err
	}

	s.dispatch(ctx, func(ctx context.Context) {
		if err := s.audit.Record(ctx, adminID, domain.AuditReactivateUser, domain.AuditTargetUser, id, user.DisplayName, nil); err != nil {
			s.log.Error().Err(err).Int64("user_id", id).Msg("audit record failed")
		}
	})

	return nil
}

func (s *userService) Delete(ctx context.Context, id, adminID int64) error {
	user, err := s.loadTarget(ctx, id, adminID)
	if err != nil {
		return err
	}

	writeCtx := context.WithoutCancel(ctx)
	if err := s.userRepo.SoftDelete(writeCtx, id); err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeAllForUser(writeCtx, id); err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("session revocation after delete failed")
	}

	s.dispatch(ctx, func(ctx context.Context) {
		if err := s.audit.Record(ctx, adminID, domain.AuditDeleteUser, domain.AuditTargetUser, id, user.DisplayName, nil); err != nil {
			s.log.Error().Err(err).Int64("user_id", id).Msg("audit record failed")
		}
	})

	return nil
}

func (s *userService) loadTarget(ctx context.Context, id, adminID int64) (*domain.User, error) {
	if id == adminID {
		return nil, domain.ValidationError("you cannot manage your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}
	return user, nil
}
