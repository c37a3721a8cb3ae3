package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hero-forge/internal/domain"
	"hero-forge/internal/repository"
)

// CharacterService owns the character state machine. Every operation
// validates ownership and the legal-transition table before touching the
// store; mutating writes run on a non-cancelable context so a client
// disconnect cannot tear a half-applied transition.
type CharacterService interface {
	Create(ctx context.Context, ownerID int64, attrs domain.CharacterAttributes) (*domain.Character, error)
	Get(ctx context.Context, id, requesterID int64) (*domain.Character, error)
	ListOwn(ctx context.Context, ownerID int64) ([]domain.Character, error)
	Update(ctx context.Context, id, requesterID int64, attrs domain.CharacterAttributes) (*domain.Character, error)
	Delete(ctx context.Context, id, requesterID int64) error
	Submit(ctx context.Context, id, requesterID int64) (*domain.Character, error)
	Duplicate(ctx context.Context, id, requesterID int64, name string) (*domain.Character, error)
	ToggleShare(ctx context.Context, id, requesterID int64) (*domain.Character, error)
	Approve(ctx context.Context, id, reviewerID int64) (*domain.Character, error)
	Reject(ctx context.Context, id, reviewerID int64, reason string) (*domain.Character, error)
}

type characterService struct {
	characterRepo repository.CharacterRepository
	catalogRepo   repository.CatalogRepository

	// invalidateGallery bumps the gallery cache version after a transition
	// that changes what the public listing shows; overridable in tests.
	invalidateGallery func(ctx context.Context)
}

func NewCharacterService(characterRepo repository.CharacterRepository, catalogRepo repository.CatalogRepository, rdb *redis.Client) CharacterService {
	return &characterService{
		characterRepo: characterRepo,
		catalogRepo:   catalogRepo,
		invalidateGallery: func(ctx context.Context) {
			bumpGalleryVersion(ctx, rdb)
		},
	}
}

func (s *characterService) Create(ctx context.Context, ownerID int64, attrs domain.CharacterAttributes) (*domain.Character, error) {
	if err := s.validateAttributes(ctx, ownerID, attrs, 0); err != nil {
		return nil, err
	}

	character := &domain.Character{
		OwnerID:  ownerID,
		Status:   domain.CharacterDraft,
		IsShared: false,
	}
	character.ApplyAttributes(attrs)

	if err := s.characterRepo.Create(context.WithoutCancel(ctx), character); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Conflict("you already have a character with this name")
		}
		return nil, err
	}

	return character, nil
}

func (s *characterService) Get(ctx context.Context, id, requesterID int64) (*domain.Character, error) {
	character, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if character.OwnerID != requesterID {
		return nil, domain.Forbidden("you do not own this character")
	}
	return character, nil
}

func (s *characterService) ListOwn(ctx context.Context, ownerID int64) ([]domain.Character, error) {
	return s.characterRepo.ListByOwner(ctx, ownerID)
}

func (s *characterService) Update(ctx context.Context, id, requesterID int64, attrs domain.CharacterAttributes) (*domain.Character, error) {
	character, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if character.OwnerID != requesterID {
		return nil, domain.Forbidden("you do not own this character")
	}
	if !character.Status.Allows(domain.CharacterActionEdit) {
		return nil, domain.ValidationError("character cannot be edited while pending review")
	}

	if err := s.validateAttributes(ctx, requesterID, attrs, id); err != nil {
		return nil, err
	}

	// Renaming an approved character forces a re-review and revokes sharing.
	wasApproved := character.Status == domain.CharacterApproved
	nameChanged := character.NameChanged(attrs.Name)
	character.ApplyAttributes(attrs)
	if nameChanged && wasApproved {
		character.Status = domain.CharacterPending
		character.IsShared = false
		character.ClearReview()
	}

	if err := s.characterRepo.Update(context.WithoutCancel(ctx), character); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Conflict("you already have a character with this name")
		}
		return nil, err
	}

	// Approved characters may be visible in the public gallery.
	if wasApproved {
		s.invalidateGallery(ctx)
	}

	return character, nil
}

func (s *characterService) Delete(ctx context.Context, id, requesterID int64) error {
	character, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if character.OwnerID != requesterID {
		return domain.Forbidden("you do not own this character")
	}

	// Hard removal at any status; pending moderation queue entries simply
	// stop resolving.
	if err := s.characterRepo.Delete(context.WithoutCancel(ctx), id); err != nil {
		return err
	}
	if character.IsShared {
		s.invalidateGallery(ctx)
	}
	return nil
}

func (s *characterService) Submit(ctx context.Context, id, requesterID int64) (*domain.Character, error) {
	character, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if character.OwnerID != requesterID {
		return nil, domain.Forbidden("you do not own this character")
	}

	next, ok := character.Status.Next(domain.CharacterActionSubmit)
	if !ok {
		return nil, domain.ValidationError("only draft or rejected characters can be submitted for review")
	}

	character.Status = next
	character.IsShared = false
	character.ClearReview()
	if err := s.characterRepo.Update(context.WithoutCancel(ctx), character); err != nil {
		return nil, err
	}

	return character, nil
}

func (s *characterService) Duplicate(ctx context.Context, id, requesterID int64, name string) (*domain.Character, error) {
	source, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if source.OwnerID != requesterID {
		return nil, domain.Forbidden("you do not own this character")
	}
	if !source.Status.Allows(domain.CharacterActionDuplicate) {
		return nil, domain.ValidationError("only approved characters can be duplicated")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.ValidationError("name is required")
	}

	exists, err := s.characterRepo.ExistsByNameForOwner(ctx, requesterID, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("you already have a character with this name")
	}

	clone := &domain.Character{
		OwnerID:    requesterID,
		Name:       name,
		ClassID:    source.ClassID,
		Gender:     source.Gender,
		SkinColor:  source.SkinColor,
		EyeColor:   source.EyeColor,
		HairColor:  source.HairColor,
		HairStyle:  source.HairStyle,
		EyeShape:   source.EyeShape,
		NoseShape:  source.NoseShape,
		MouthShape: source.MouthShape,
		FaceShape:  source.FaceShape,
		FacialHair: source.FacialHair,
		BodyType:   source.BodyType,
		Status:     domain.CharacterDraft,
		IsShared:   false,
	}

	if err := s.characterRepo.Create(context.WithoutCancel(ctx), clone); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Conflict("you already have a character with this name")
		}
		return nil, err
	}

	return clone, nil
}

func (s *characterService) ToggleShare(ctx context.Context, id, requesterID int64) (*domain.Character, error) {
	character, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if character.OwnerID != requesterID {
		return nil, domain.Forbidden("you do not own this character")
	}
	if !character.Status.Allows(domain.CharacterActionShare) {
		return nil, domain.ValidationError("only approved characters can be shared")
	}

	character.IsShared = !character.IsShared
	if err := s.characterRepo.SetShared(context.WithoutCancel(ctx), id, character.IsShared); err != nil {
		return nil, err
	}
	s.invalidateGallery(ctx)

	return character, nil
}

func (s *characterService) Approve(ctx context.Context, id, reviewerID int64) (*domain.Character, error) {
	return s.review(ctx, id, reviewerID, domain.CharacterActionApprove, nil)
}

func (s *characterService) Reject(ctx context.Context, id, reviewerID int64, reason string) (*domain.Character, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ValidationError("rejection reason is required")
	}
	return s.review(ctx, id, reviewerID, domain.CharacterActionReject, &reason)
}

func (s *characterService) review(ctx context.Context, id, reviewerID int64, action domain.CharacterAction, reason *string) (*domain.Character, error) {
	character, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := character.Status.Next(action)
	if !ok {
		return nil, domain.ValidationError("character is not pending review")
	}

	// Compare-and-swap: the update only lands while the row is still
	// Pending, so a concurrent reviewer loses deterministically.
	applied, err := s.characterRepo.ReviewTransition(context.WithoutCancel(ctx), id, next, reviewerID, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ValidationError("character is not pending review")
	}

	now := time.Now()
	character.Status = next
	character.IsShared = false
	character.ReviewedBy = &reviewerID
	character.ReviewedAt = &now
	character.RejectionReason = reason

	// A verdict revokes sharing, so the public listing must refresh.
	s.invalidateGallery(ctx)

	return character, nil
}

func (s *characterService) load(ctx context.Context, id int64) (*domain.Character, error) {
	character, err := s.characterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, domain.NotFound("character not found")
	}
	return character, nil
}

func (s *characterService) validateAttributes(ctx context.Context, ownerID int64, attrs domain.CharacterAttributes, excludeID int64) error {
	if err := attrs.Validate(); err != nil {
		return err
	}

	class, err := s.catalogRepo.GetClassByID(ctx, attrs.ClassID)
	if err != nil {
		return err
	}
	if class == nil || !class.IsActive {
		return domain.ValidationError("unknown character class")
	}

	exists, err := s.characterRepo.ExistsByNameForOwner(ctx, ownerID, attrs.Name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("you already have a character with this name")
	}

	return nil
}
