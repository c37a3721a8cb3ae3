package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"hero-forge/internal/domain"
	"hero-forge/internal/repository"
)

var (
	moderationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hero_forge_moderation_transitions_total",
		Help: "Committed moderation transitions by target type and outcome.",
	}, []string{"target", "outcome"})

	sideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hero_forge_side_effect_failures_total",
		Help: "Best-effort notification/audit dispatches that failed.",
	}, []string{"effect"})
)

// ModerationService coordinates the staff review queues. Each approve/reject
// runs the lifecycle transition first; the owner notification and audit
// record then fire on a context detached from the request, with their own
// timeout. Their failure is logged and counted but never surfaces to the
// moderator, and never rolls back the committed transition.
type ModerationService interface {
	GetPendingCharacters(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Character], error)
	GetPendingComments(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
	ApproveCharacter(ctx context.Context, id, reviewerID int64) (*domain.Character, error)
	RejectCharacter(ctx context.Context, id, reviewerID int64, reason string) (*domain.Character, error)
	ApproveComment(ctx context.Context, id, reviewerID int64) (*domain.Comment, error)
	RejectComment(ctx context.Context, id, reviewerID int64, reason string) (*domain.Comment, error)
}

type moderationService struct {
	characters    CharacterService
	comments      CommentService
	characterRepo repository.CharacterRepository
	commentRepo   repository.CommentRepository
	userRepo      repository.UserRepository
	email         EmailService
	audit         AuditService
	log           zerolog.Logger
	timeout       time.Duration

	// dispatch runs a side effect; overridable so tests can run it inline.
	dispatch func(ctx context.Context, fn func(context.Context))
}

func NewModerationService(
	characters CharacterService,
	comments CommentService,
	characterRepo repository.CharacterRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	email EmailService,
	audit AuditService,
	log zerolog.Logger,
	timeout time.Duration,
) ModerationService {
	s := &moderationService{
		characters:    characters,
		comments:      comments,
		characterRepo: characterRepo,
		commentRepo:   commentRepo,
		userRepo:      userRepo,
		email:         email,
		audit:         audit,
		log:           log.With().Str("component", "moderation").Logger(),
		timeout:       timeout,
	}
	s.dispatch = s.dispatchDetached
	return s
}

func (s *moderationService) GetPendingCharacters(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Character], error) {
	if err := params.ValidateQueue(); err != nil {
		return domain.PaginatedResponse[domain.Character]{}, err
	}

	characters, total, err := s.characterRepo.ListPending(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Character]{}, err
	}

	return domain.NewPaginatedResponse(characters, params.Page, params.PageSize, total), nil
}

func (s *moderationService) GetPendingComments(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	if err := params.ValidateQueue(); err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	comments, total, err := s.commentRepo.ListPending(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}

func (s *moderationService) ApproveCharacter(ctx context.Context, id, reviewerID int64) (*domain.Character, error) {
	character, err := s.characters.Approve(ctx, id, reviewerID)
	if err != nil {
		return nil, err
	}

	moderationTransitions.WithLabelValues("character", "approved").Inc()
	s.afterCharacterReview(ctx, character, reviewerID, domain.AuditApproveCharacter, nil)
	return character, nil
}

func (s *moderationService) RejectCharacter(ctx context.Context, id, reviewerID int64, reason string) (*domain.Character, error) {
	character, err := s.characters.Reject(ctx, id, reviewerID, reason)
	if err != nil {
		return nil, err
	}

	moderationTransitions.WithLabelValues("character", "rejected").Inc()
	s.afterCharacterReview(ctx, character, reviewerID, domain.AuditRejectCharacter, &reason)
	return character, nil
}

func (s *moderationService) ApproveComment(ctx context.Context, id, reviewerID int64) (*domain.Comment, error) {
	comment, err := s.comments.Approve(ctx, id, reviewerID)
	if err != nil {
		return nil, err
	}

	moderationTransitions.WithLabelValues("comment", "approved").Inc()
	s.afterCommentReview(ctx, comment, reviewerID, domain.AuditApproveComment, nil)
	return comment, nil
}

func (s *moderationService) RejectComment(ctx context.Context, id, reviewerID int64, reason string) (*domain.Comment, error) {
	comment, err := s.comments.Reject(ctx, id, reviewerID, reason)
	if err != nil {
		return nil, err
	}

	moderationTransitions.WithLabelValues("comment", "rejected").Inc()
	s.afterCommentReview(ctx, comment, reviewerID, domain.AuditRejectComment, comment.RejectionReason)
	return comment, nil
}

func (s *moderationService) afterCharacterReview(ctx context.Context, character *domain.Character, reviewerID int64, action string, reason *string) {
	s.dispatch(ctx, func(ctx context.Context) {
		owner, err := s.userRepo.GetByID(ctx, character.OwnerID)
		if err != nil || owner == nil {
			sideEffectFailures.WithLabelValues("notification").Inc()
			s.log.Error().Err(err).Int64("owner_id", character.OwnerID).Msg("owner lookup for notification failed")
		} else {
			var sendErr error
			if action == domain.AuditApproveCharacter {
				sendErr = s.email.SendCharacterApproved(ctx, owner.Email, owner.DisplayName, character.Name)
			} else {
				sendErr = s.email.SendCharacterRejected(ctx, owner.Email, owner.DisplayName, character.Name, derefOr(reason, ""))
			}
			if sendErr != nil {
				sideEffectFailures.WithLabelValues("notification").Inc()
				s.log.Error().Err(sendErr).Int64("character_id", character.ID).Msg("moderation notification failed")
			}
		}

		details := map[string]interface{}{"status": character.Status}
		if reason != nil {
			details["reason"] = *reason
		}
		if err := s.audit.Record(ctx, reviewerID, action, domain.AuditTargetCharacter, character.ID, character.Name, details); err != nil {
			sideEffectFailures.WithLabelValues("audit").Inc()
			s.log.Error().Err(err).Int64("character_id", character.ID).Msg("audit record failed")
		}
	})
}

func (s *moderationService) afterCommentReview(ctx context.Context, comment *domain.Comment, reviewerID int64, action string, reason *string) {
	s.dispatch(ctx, func(ctx context.Context) {
		characterName := ""
		if character, err := s.characterRepo.GetByID(ctx, comment.CharacterID); err == nil && character != nil {
			characterName = character.Name
		}

		author, err := s.userRepo.GetByID(ctx, comment.AuthorID)
		if err != nil || author == nil {
			sideEffectFailures.WithLabelValues("notification").Inc()
			s.log.Error().Err(err).Int64("author_id", comment.AuthorID).Msg("author lookup for notification failed")
		} else {
			var sendErr error
			if action == domain.AuditApproveComment {
				sendErr = s.email.SendCommentApproved(ctx, author.Email, author.DisplayName, characterName)
			} else {
				sendErr = s.email.SendCommentRejected(ctx, author.Email, author.DisplayName, characterName, derefOr(reason, ""))
			}
			if sendErr != nil {
				sideEffectFailures.WithLabelValues("notification").Inc()
				s.log.Error().Err(sendErr).Int64("comment_id", comment.ID).Msg("moderation notification failed")
			}
		}

		details := map[string]interface{}{"status": comment.Status}
		if reason != nil {
			details["reason"] = *reason
		}
		if err := s.audit.Record(ctx, reviewerID, action, domain.AuditTargetComment, comment.ID, characterName, details); err != nil {
			sideEffectFailures.WithLabelValues("audit").Inc()
			s.log.Error().Err(err).Int64("comment_id", comment.ID).Msg("audit record failed")
		}
	})
}

// dispatchDetached runs fn detached from the request's cancellation scope
// with its own timeout, so a client disconnect cannot cancel a notification
// mid-flight and a slow mail provider cannot hold the request.
func (s *moderationService) dispatchDetached(ctx context.Context, fn func(context.Context)) {
	detached := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(detached, s.timeout)
		defer cancel()
		fn(ctx)
	}()
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
