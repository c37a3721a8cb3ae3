package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hero-forge/internal/domain"
	"hero-forge/internal/repository"
)

// CommentService owns the comment state machine. Eligibility against the
// target character is checked once, at creation; later character transitions
// do not retract existing comments.
type CommentService interface {
	Create(ctx context.Context, characterID, authorID int64, input domain.CreateCommentInput) (*domain.Comment, error)
	ListApprovedForCharacter(ctx context.Context, characterID int64) ([]domain.Comment, error)
	GetOwnComment(ctx context.Context, characterID, authorID int64) (*domain.Comment, error)
	Delete(ctx context.Context, id, requesterID int64) error
	Approve(ctx context.Context, id, reviewerID int64) (*domain.Comment, error)
	Reject(ctx context.Context, id, reviewerID int64, reason string) (*domain.Comment, error)
}

type commentService struct {
	commentRepo   repository.CommentRepository
	characterRepo repository.CharacterRepository
	redis         *redis.Client
}

func NewCommentService(commentRepo repository.CommentRepository, characterRepo repository.CharacterRepository, redis *redis.Client) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		characterRepo: characterRepo,
		redis:         redis,
	}
}

func (s *commentService) Create(ctx context.Context, characterID, authorID int64, input domain.CreateCommentInput) (*domain.Comment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, domain.NotFound("character not found")
	}
	if character.Status != domain.CharacterApproved {
		return nil, domain.ValidationError("comments are only accepted on approved characters")
	}
	if character.OwnerID == authorID {
		return nil, domain.ValidationError("you cannot comment on your own character")
	}

	exists, err := s.commentRepo.ExistsByAuthorAndCharacter(ctx, characterID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("you have already commented on this character")
	}

	comment := &domain.Comment{
		CharacterID: characterID,
		AuthorID:    authorID,
		Rating:      input.Rating,
		Text:        strings.TrimSpace(input.Text),
		Status:      domain.CommentPending,
	}

	if err := s.commentRepo.Create(context.WithoutCancel(ctx), comment); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Conflict("you have already commented on this character")
		}
		return nil, err
	}

	return comment, nil
}

func (s *commentService) ListApprovedForCharacter(ctx context.Context, characterID int64) ([]domain.Comment, error) {
	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, domain.NotFound("character not found")
	}

	cacheKey := fmt.Sprintf("comments:approved:%d", characterID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var comments []domain.Comment
			if json.Unmarshal([]byte(cached), &comments) == nil {
				return comments, nil
			}
		}
	}

	comments, err := s.commentRepo.ListApprovedByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(comments); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, 5*time.Minute).Err()
		}
	}

	return comments, nil
}

// GetOwnComment returns the caller's comment regardless of status, or nil
// when they have not commented; absence is not an error.
func (s *commentService) GetOwnComment(ctx context.Context, characterID, authorID int64) (*domain.Comment, error) {
	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, domain.NotFound("character not found")
	}

	return s.commentRepo.GetByAuthorAndCharacter(ctx, characterID, authorID)
}

func (s *commentService) Delete(ctx context.Context, id, requesterID int64) error {
	comment, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != requesterID {
		return domain.Forbidden("only the author can delete this comment")
	}

	if err := s.commentRepo.Delete(context.WithoutCancel(ctx), id); err != nil {
		return err
	}

	s.invalidateCache(ctx, comment.CharacterID)
	return nil
}

func (s *commentService) Approve(ctx context.Context, id, reviewerID int64) (*domain.Comment, error) {
	return s.review(ctx, id, reviewerID, domain.CharacterActionApprove, nil)
}

func (s *commentService) Reject(ctx context.Context, id, reviewerID int64, reason string) (*domain.Comment, error) {
	if err := domain.ValidateRejectionReason(reason); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	return s.review(ctx, id, reviewerID, domain.CharacterActionReject, &reason)
}

func (s *commentService) review(ctx context.Context, id, reviewerID int64, action domain.CharacterAction, reason *string) (*domain.Comment, error) {
	comment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !comment.Status.Allows(action) {
		return nil, domain.ValidationError("comment is not pending review")
	}

	to := domain.CommentApproved
	if action == domain.CharacterActionReject {
		to = domain.CommentRejected
	}

	applied, err := s.commentRepo.ReviewTransition(context.WithoutCancel(ctx), id, to, reviewerID, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ValidationError("comment is not pending review")
	}

	now := time.Now()
	comment.Status = to
	comment.ReviewedBy = &reviewerID
	comment.ReviewedAt = &now
	comment.RejectionReason = reason

	s.invalidateCache(ctx, comment.CharacterID)
	return comment, nil
}

func (s *commentService) load(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.NotFound("comment not found")
	}
	return comment, nil
}

func (s *commentService) invalidateCache(ctx context.Context, characterID int64) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, fmt.Sprintf("comments:approved:%d", characterID)).Err()
}
