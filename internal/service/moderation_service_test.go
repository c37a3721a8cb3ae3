package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hero-forge/internal/domain"
	"hero-forge/internal/mocks"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type emailServiceMock struct {
	mock.Mock
}

func (m *emailServiceMock) SendWelcome(ctx context.Context, toEmail, displayName string) error {
	return m.Called(ctx, toEmail, displayName).Error(0)
}

func (m *emailServiceMock) SendCharacterApproved(ctx context.Context, toEmail, displayName, characterName string) error {
	return m.Called(ctx, toEmail, displayName, characterName).Error(0)
}

func (m *emailServiceMock) SendCharacterRejected(ctx context.Context, toEmail, displayName, characterName, reason string) error {
	return m.Called(ctx, toEmail, displayName, characterName, reason).Error(0)
}

func (m *emailServiceMock) SendCommentApproved(ctx context.Context, toEmail, displayName, characterName string) error {
	return m.Called(ctx, toEmail, displayName, characterName).Error(0)
}

func (m *emailServiceMock) SendCommentRejected(ctx context.Context, toEmail, displayName, characterName, reason string) error {
	return m.Called(ctx, toEmail, displayName, characterName, reason).Error(0)
}

func (m *emailServiceMock) SendAccountSuspended(ctx context.Context, toEmail, displayName string) error {
	return m.Called(ctx, toEmail, displayName).Error(0)
}

type auditServiceMock struct {
	mock.Mock
}

func (m *auditServiceMock) Record(ctx context.Context, actorID int64, action, targetType string, targetID int64, targetName string, details interface{}) error {
	return m.Called(ctx, actorID, action, targetType, targetID, targetName, details).Error(0)
}

func (m *auditServiceMock) RecentActivity(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.PaginatedResponse[domain.AuditLog]), args.Error(1)
}

func (m *auditServiceMock) ActivityForTarget(ctx context.Context, targetType string, targetID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	args := m.Called(ctx, targetType, targetID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.AuditLog]), args.Error(1)
}

type moderationFixture struct {
	svc           ModerationService
	characterRepo *mocks.CharacterRepository
	commentRepo   *mocks.CommentRepository
	userRepo      *mocks.UserRepository
	email         *emailServiceMock
	audit         *auditServiceMock
}

// newModerationFixture wires a moderation service whose side-effect dispatch
// runs inline, so tests observe email/audit calls deterministically.
func newModerationFixture(t *testing.T) *moderationFixture {
	t.Helper()

	f := &moderationFixture{
		characterRepo: new(mocks.CharacterRepository),
		commentRepo:   new(mocks.CommentRepository),
		userRepo:      new(mocks.UserRepository),
		email:         new(emailServiceMock),
		audit:         new(auditServiceMock),
	}

	characters := NewCharacterService(f.characterRepo, new(mocks.CatalogRepository), nil)
	comments := NewCommentService(f.commentRepo, f.characterRepo, nil)
	svc := NewModerationService(
		characters, comments,
		f.characterRepo, f.commentRepo, f.userRepo,
		f.email, f.audit,
		testLogger(), 0,
	)

	inner, ok := svc.(*moderationService)
	require.True(t, ok)
	inner.dispatch = func(ctx context.Context, fn func(context.Context)) {
		fn(ctx)
	}

	f.svc = svc
	return f
}

func TestModerationService_QueuePaging(t *testing.T) {
	ctx := context.Background()

	t.Run("Page Zero Rejected", func(t *testing.T) {
		f := newModerationFixture(t)

		_, err := f.svc.GetPendingCharacters(ctx, domain.PaginationParams{Page: 0, PageSize: 20})

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Page Above Cap Rejected", func(t *testing.T) {
		f := newModerationFixture(t)

		_, err := f.svc.GetPendingComments(ctx, domain.PaginationParams{Page: 1001, PageSize: 20})

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})

	t.Run("Page Size Clamped To Fifty", func(t *testing.T) {
		f := newModerationFixture(t)

		f.characterRepo.On("ListPending", ctx, mock.MatchedBy(func(p domain.PaginationParams) bool {
			return p.PageSize == 50
		})).Return([]domain.Character{}, int64(0), nil).Once()

		result, err := f.svc.GetPendingCharacters(ctx, domain.PaginationParams{Page: 1, PageSize: 500})

		assert.NoError(t, err)
		assert.Equal(t, 50, result.PageSize)
		f.characterRepo.AssertExpectations(t)
	})

	t.Run("Oldest First Queue Contents", func(t *testing.T) {
		f := newModerationFixture(t)

		pending := []domain.Character{{ID: 1, Status: domain.CharacterPending}, {ID: 2, Status: domain.CharacterPending}}
		f.characterRepo.On("ListPending", ctx, mock.Anything).Return(pending, int64(2), nil).Once()

		result, err := f.svc.GetPendingCharacters(ctx, domain.PaginationParams{Page: 1, PageSize: 20})

		assert.NoError(t, err)
		assert.Len(t, result.Data, 2)
		assert.Equal(t, int64(2), result.TotalItems)
	})
}

func TestModerationService_ApproveCharacter(t *testing.T) {
	ctx := context.Background()

	pendingCharacter := func() *domain.Character {
		return &domain.Character{ID: 10, OwnerID: 1, Name: "Arthas", Status: domain.CharacterPending}
	}
	owner := &domain.User{ID: 1, Email: "owner@example.com", DisplayName: "Owner"}

	t.Run("Notifies Owner And Records Audit", func(t *testing.T) {
		f := newModerationFixture(t)

		f.characterRepo.On("GetByID", ctx, int64(10)).Return(pendingCharacter(), nil).Once()
		f.characterRepo.On("ReviewTransition", mock.Anything, int64(10), domain.CharacterApproved, int64(99), (*string)(nil)).Return(true, nil).Once()
		f.userRepo.On("GetByID", mock.Anything, int64(1)).Return(owner, nil).Once()
		f.email.On("SendCharacterApproved", mock.Anything, "owner@example.com", "Owner", "Arthas").Return(nil).Once()
		f.audit.On("Record", mock.Anything, int64(99), domain.AuditApproveCharacter, domain.AuditTargetCharacter, int64(10), "Arthas", mock.Anything).Return(nil).Once()

		character, err := f.svc.ApproveCharacter(ctx, 10, 99)

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterApproved, character.Status)
		f.email.AssertExpectations(t)
		f.audit.AssertExpectations(t)
	})

	t.Run("Email Failure Does Not Fail The Transition", func(t *testing.T) {
		f := newModerationFixture(t)

		f.characterRepo.On("GetByID", ctx, int64(10)).Return(pendingCharacter(), nil).Once()
		f.characterRepo.On("ReviewTransition", mock.Anything, int64(10), domain.CharacterApproved, int64(99), (*string)(nil)).Return(true, nil).Once()
		f.userRepo.On("GetByID", mock.Anything, int64(1)).Return(owner, nil).Once()
		f.email.On("SendCharacterApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
		f.audit.On("Record", mock.Anything, int64(99), domain.AuditApproveCharacter, domain.AuditTargetCharacter, int64(10), "Arthas", mock.Anything).Return(nil).Once()

		character, err := f.svc.ApproveCharacter(ctx, 10, 99)

		assert.NoError(t, err)
		assert.Equal(t, domain.CharacterApproved, character.Status)
		f.audit.AssertExpectations(t)
	})

	t.Run("Audit Failure Does Not Fail The Transition", func(t *testing.T) {
		f := newModerationFixture(t)

		f.characterRepo.On("GetByID", ctx, int64(10)).Return(pendingCharacter(), nil).Once()
		f.characterRepo.On("ReviewTransition", mock.Anything, int64(10), domain.CharacterApproved, int64(99), (*string)(nil)).Return(true, nil).Once()
		f.userRepo.On("GetByID", mock.Anything, int64(1)).Return(owner, nil).Once()
		f.email.On("SendCharacterApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.audit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("store down")).Once()

		_, err := f.svc.ApproveCharacter(ctx, 10, 99)

		assert.NoError(t, err)
	})

	t.Run("Lost CAS Skips Side Effects", func(t *testing.T) {
		f := newModerationFixture(t)

		f.characterRepo.On("GetByID", ctx, int64(10)).Return(pendingCharacter(), nil).Once()
		f.characterRepo.On("ReviewTransition", mock.Anything, int64(10), domain.CharacterApproved, int64(99), (*string)(nil)).Return(false, nil).Once()

		_, err := f.svc.ApproveCharacter(ctx, 10, 99)

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
		f.email.AssertNotCalled(t, "SendCharacterApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestModerationService_RejectComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Passes Reason To Author Notification", func(t *testing.T) {
		f := newModerationFixture(t)

		pending := &domain.Comment{ID: 5, CharacterID: 10, AuthorID: 2, Status: domain.CommentPending}
		author := &domain.User{ID: 2, Email: "author@example.com", DisplayName: "Author"}

		f.commentRepo.On("GetByID", ctx, int64(5)).Return(pending, nil).Once()
		f.commentRepo.On("ReviewTransition", mock.Anything, int64(5), domain.CommentRejected, int64(99), mock.Anything).Return(true, nil).Once()
		f.characterRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.Character{ID: 10, Name: "Arthas"}, nil).Once()
		f.userRepo.On("GetByID", mock.Anything, int64(2)).Return(author, nil).Once()
		f.email.On("SendCommentRejected", mock.Anything, "author@example.com", "Author", "Arthas", "contains offensive language").Return(nil).Once()
		f.audit.On("Record", mock.Anything, int64(99), domain.AuditRejectComment, domain.AuditTargetComment, int64(5), "Arthas", mock.Anything).Return(nil).Once()

		comment, err := f.svc.RejectComment(ctx, 5, 99, "contains offensive language")

		assert.NoError(t, err)
		assert.Equal(t, domain.CommentRejected, comment.Status)
		f.email.AssertExpectations(t)
		f.audit.AssertExpectations(t)
	})
}
