package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hero-forge/internal/domain"
	"hero-forge/internal/mocks"
)

func validAttributes() domain.CharacterAttributes {
	return domain.CharacterAttributes{
		Name:      "Arthas",
		ClassID:   1,
		Gender:    domain.GenderMale,
		SkinColor: "pale",
		EyeColor:  "blue",
		HairColor: "white",
	}
}

func activeClass() *domain.CharacterClass {
	return &domain.CharacterClass{ID: 1, Name: "Warrior", IsActive: true}
}

func TestCharacterService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		catalogRepo := new(mocks.CatalogRepository)
		svc := NewCharacterService(characterRepo, catalogRepo, nil)

		catalogRepo.On("GetClassByID", ctx, int64(1)).Return(activeClass(), nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "Arthas", int64(0)).Return(false, nil).Once()
		characterRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Character) bool {
			return c.OwnerID == 1 && c.Name == "Arthas" && c.Status == domain.CharacterDraft && !c.IsShared
		})).Return(nil).Once()

		character, err := svc.Create(ctx, 1, validAttributes())

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterDraft, character.Status)
		assert.False(t, character.IsShared)
		characterRepo.AssertExpectations(t)
	})

	t.Run("Invalid Gender", func(t *testing.T) {
		svc := NewCharacterService(new(mocks.CharacterRepository), new(mocks.CatalogRepository), nil)

		attrs := validAttributes()
		attrs.Gender = "Other"
		_, err := svc.Create(ctx, 1, attrs)

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Unknown Class", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		catalogRepo := new(mocks.CatalogRepository)
		svc := NewCharacterService(characterRepo, catalogRepo, nil)

		catalogRepo.On("GetClassByID", ctx, int64(1)).Return(nil, nil).Once()

		_, err := svc.Create(ctx, 1, validAttributes())

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		catalogRepo := new(mocks.CatalogRepository)
		svc := NewCharacterService(characterRepo, catalogRepo, nil)

		catalogRepo.On("GetClassByID", ctx, int64(1)).Return(activeClass(), nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "Arthas", int64(0)).Return(true, nil).Once()

		_, err := svc.Create(ctx, 1, validAttributes())

		assert.Equal(t, domain.ErrConflict, domain.KindOf(err))
	})
}

func TestCharacterService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Forbidden For Non Owner", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterDraft}, nil).Once()

		_, err := svc.Update(ctx, 10, 2, validAttributes())

		assert.Equal(t, domain.ErrForbidden, domain.KindOf(err))
	})

	t.Run("Blocked While Pending", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterPending}, nil).Once()

		_, err := svc.Update(ctx, 10, 1, validAttributes())

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Unchanged Name Keeps Approved Status", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		catalogRepo := new(mocks.CatalogRepository)
		svc := NewCharacterService(characterRepo, catalogRepo, nil)

		existing := &domain.Character{ID: 10, OwnerID: 1, Name: "Arthas", Status: domain.CharacterApproved, IsShared: true}
		characterRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
		catalogRepo.On("GetClassByID", ctx, int64(1)).Return(activeClass(), nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "Arthas", int64(10)).Return(false, nil).Once()
		characterRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		character, err := svc.Update(ctx, 10, 1, validAttributes())

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterApproved, character.Status)
		assert.True(t, character.IsShared)
	})

	t.Run("Rename On Approved Forces Re-Review", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		catalogRepo := new(mocks.CatalogRepository)
		svc := NewCharacterService(characterRepo, catalogRepo, nil)

		reviewer := int64(99)
		reviewedAt := time.Now()
		existing := &domain.Character{
			ID: 10, OwnerID: 1, Name: "Arthas",
			Status: domain.CharacterApproved, IsShared: true,
			ReviewedBy: &reviewer, ReviewedAt: &reviewedAt,
		}
		characterRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
		catalogRepo.On("GetClassByID", ctx, int64(1)).Return(activeClass(), nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "Arthas2", int64(10)).Return(false, nil).Once()
		characterRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Character) bool {
			return c.Status == domain.CharacterPending && !c.IsShared &&
				c.ReviewedBy == nil && c.ReviewedAt == nil && c.RejectionReason == nil
		})).Return(nil).Once()

		attrs := validAttributes()
		attrs.Name = "Arthas2"
		character, err := svc.Update(ctx, 10, 1, attrs)

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterPending, character.Status)
		assert.False(t, character.IsShared)
		assert.Nil(t, character.ReviewedBy)
		assert.Nil(t, character.ReviewedAt)
		characterRepo.AssertExpectations(t)
	})

	t.Run("Casing Difference Counts As Rename", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		catalogRepo := new(mocks.CatalogRepository)
		svc := NewCharacterService(characterRepo, catalogRepo, nil)

		existing := &domain.Character{ID: 10, OwnerID: 1, Name: "Arthas", Status: domain.CharacterApproved, IsShared: true}
		characterRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
		catalogRepo.On("GetClassByID", ctx, int64(1)).Return(activeClass(), nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "arthas", int64(10)).Return(false, nil).Once()
		characterRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		attrs := validAttributes()
		attrs.Name = "arthas"
		character, err := svc.Update(ctx, 10, 1, attrs)

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterPending, character.Status)
	})
}

func TestCharacterService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft To Pending", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterDraft}, nil).Once()
		characterRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Character) bool {
			return c.Status == domain.CharacterPending
		})).Return(nil).Once()

		character, err := svc.Submit(ctx, 10, 1)

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterPending, character.Status)
	})

	t.Run("Rejected To Pending Clears Old Verdict", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		reviewer := int64(99)
		reviewedAt := time.Now()
		reason := "needs work"
		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{
			ID: 10, OwnerID: 1, Status: domain.CharacterRejected,
			RejectionReason: &reason, ReviewedBy: &reviewer, ReviewedAt: &reviewedAt,
		}, nil).Once()
		characterRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Character) bool {
			return c.Status == domain.CharacterPending &&
				c.RejectionReason == nil && c.ReviewedBy == nil && c.ReviewedAt == nil
		})).Return(nil).Once()

		character, err := svc.Submit(ctx, 10, 1)

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterPending, character.Status)
		assert.Nil(t, character.RejectionReason)
		characterRepo.AssertExpectations(t)
	})

	t.Run("Approved Cannot Be Submitted", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterApproved}, nil).Once()

		_, err := svc.Submit(ctx, 10, 1)

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})
}

func TestCharacterService_Duplicate(t *testing.T) {
	ctx := context.Background()

	source := &domain.Character{
		ID: 10, OwnerID: 1, Name: "Arthas", ClassID: 1,
		Gender: domain.GenderMale, HairColor: "white",
		Status: domain.CharacterApproved, IsShared: true,
	}

	t.Run("Copies Cosmetics Into Fresh Draft", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(source, nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "Arthas II", int64(0)).Return(false, nil).Once()
		characterRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Character) bool {
			return c.Name == "Arthas II" && c.HairColor == "white" &&
				c.Status == domain.CharacterDraft && !c.IsShared && c.ID == 0
		})).Return(nil).Once()

		clone, err := svc.Duplicate(ctx, 10, 1, "Arthas II")

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterDraft, clone.Status)
		assert.False(t, clone.IsShared)
		characterRepo.AssertExpectations(t)
	})

	t.Run("Only Approved Sources", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterDraft}, nil).Once()

		_, err := svc.Duplicate(ctx, 10, 1, "Arthas II")

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Name Taken", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(source, nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "Arthas", int64(0)).Return(true, nil).Once()

		_, err := svc.Duplicate(ctx, 10, 1, "Arthas")

		assert.Equal(t, domain.ErrConflict, domain.KindOf(err))
	})
}

func TestCharacterService_ToggleShare(t *testing.T) {
	ctx := context.Background()

	t.Run("Toggles Approved Character", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterApproved}, nil).Once()
		characterRepo.On("SetShared", mock.Anything, int64(10), true).Return(nil).Once()

		character, err := svc.ToggleShare(ctx, 10, 1)

		assert.NoError(t, err)
		assert.True(t, character.IsShared)
	})

	t.Run("Draft Cannot Be Shared", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterDraft}, nil).Once()

		_, err := svc.ToggleShare(ctx, 10, 1)

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})
}

func TestCharacterService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("Approve Pending", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterPending}, nil).Once()
		characterRepo.On("ReviewTransition", mock.Anything, int64(10), domain.CharacterApproved, int64(99), (*string)(nil)).Return(true, nil).Once()

		character, err := svc.Approve(ctx, 10, 99)

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterApproved, character.Status)
		assert.Equal(t, int64(99), *character.ReviewedBy)
	})

	t.Run("Second Reviewer Loses The Race", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterPending}, nil).Once()
		characterRepo.On("ReviewTransition", mock.Anything, int64(10), domain.CharacterApproved, int64(99), (*string)(nil)).Return(false, nil).Once()

		_, err := svc.Approve(ctx, 10, 99)

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Approve Already Approved", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterApproved}, nil).Once()

		_, err := svc.Approve(ctx, 10, 99)

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Reject Requires Reason", func(t *testing.T) {
		svc := NewCharacterService(new(mocks.CharacterRepository), new(mocks.CatalogRepository), nil)

		_, err := svc.Reject(ctx, 10, 99, "   ")

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Reject Revokes Sharing", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterPending, IsShared: true}, nil).Once()
		characterRepo.On("ReviewTransition", mock.Anything, int64(10), domain.CharacterRejected, int64(99), mock.AnythingOfType("*string")).Return(true, nil).Once()

		character, err := svc.Reject(ctx, 10, 99, "cosmetics break the style guide")

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterRejected, character.Status)
		assert.False(t, character.IsShared)
		assert.Equal(t, "cosmetics break the style guide", *character.RejectionReason)
	})
}

func TestCharacterService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Deletes At Any Status", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterPending}, nil).Once()
		characterRepo.On("Delete", mock.Anything, int64(10)).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, 10, 1))
	})

	t.Run("Not Found", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(nil, nil).Once()

		err := svc.Delete(ctx, 10, 1)

		assert.Equal(t, domain.ErrNotFound, domain.KindOf(err))
	})

	t.Run("Forbidden For Non Owner", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1}, nil).Once()

		err := svc.Delete(ctx, 10, 2)

		assert.Equal(t, domain.ErrForbidden, domain.KindOf(err))
	})
}

// galleryBumpCounter swaps in an invalidation hook that counts calls instead
// of touching Redis.
func galleryBumpCounter(svc CharacterService) *int {
	bumps := 0
	svc.(*characterService).invalidateGallery = func(context.Context) { bumps++ }
	return &bumps
}

func TestCharacterService_GalleryInvalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("Toggle Share Bumps The Cache Version", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)
		bumps := galleryBumpCounter(svc)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterApproved, IsShared: true}, nil).Once()
		characterRepo.On("SetShared", mock.Anything, int64(10), false).Return(nil).Once()

		_, err := svc.ToggleShare(ctx, 10, 1)

		assert.NoError(t, err)
		assert.Equal(t, 1, *bumps)
	})

	t.Run("Rename Re-Review Bumps The Cache Version", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		catalogRepo := new(mocks.CatalogRepository)
		svc := NewCharacterService(characterRepo, catalogRepo, nil)
		bumps := galleryBumpCounter(svc)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Name: "Arthas", Status: domain.CharacterApproved, IsShared: true}, nil).Once()
		catalogRepo.On("GetClassByID", ctx, int64(1)).Return(activeClass(), nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "Arthas2", int64(10)).Return(false, nil).Once()
		characterRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		attrs := validAttributes()
		attrs.Name = "Arthas2"
		_, err := svc.Update(ctx, 10, 1, attrs)

		assert.NoError(t, err)
		assert.Equal(t, 1, *bumps)
	})

	t.Run("Reject Bumps The Cache Version", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)
		bumps := galleryBumpCounter(svc)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterPending, IsShared: true}, nil).Once()
		characterRepo.On("ReviewTransition", mock.Anything, int64(10), domain.CharacterRejected, int64(99), mock.AnythingOfType("*string")).Return(true, nil).Once()

		_, err := svc.Reject(ctx, 10, 99, "off theme")

		assert.NoError(t, err)
		assert.Equal(t, 1, *bumps)
	})

	t.Run("Deleting A Shared Character Bumps The Cache Version", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		svc := NewCharacterService(characterRepo, new(mocks.CatalogRepository), nil)
		bumps := galleryBumpCounter(svc)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Status: domain.CharacterApproved, IsShared: true}, nil).Once()
		characterRepo.On("Delete", mock.Anything, int64(10)).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, 10, 1))
		assert.Equal(t, 1, *bumps)
	})

	t.Run("Draft Edit Leaves The Cache Version Alone", func(t *testing.T) {
		characterRepo := new(mocks.CharacterRepository)
		catalogRepo := new(mocks.CatalogRepository)
		svc := NewCharacterService(characterRepo, catalogRepo, nil)
		bumps := galleryBumpCounter(svc)

		characterRepo.On("GetByID", ctx, int64(10)).Return(&domain.Character{ID: 10, OwnerID: 1, Name: "Arthas", Status: domain.CharacterDraft}, nil).Once()
		catalogRepo.On("GetClassByID", ctx, int64(1)).Return(activeClass(), nil).Once()
		characterRepo.On("ExistsByNameForOwner", ctx, int64(1), "Arthas", int64(10)).Return(false, nil).Once()
		characterRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.Update(ctx, 10, 1, validAttributes())

		assert.NoError(t, err)
		assert.Equal(t, 0, *bumps)
	})
}
