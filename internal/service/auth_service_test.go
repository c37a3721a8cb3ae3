package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hero-forge/internal/config"
	"hero-forge/internal/domain"
	"hero-forge/internal/mocks"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTAccessExpiry:   15 * time.Minute,
		JWTRefreshExpiry:  time.Hour,
		SideEffectTimeout: time.Second,
	}
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		Email:       "arthas@example.com",
		DisplayName: "Arthas",
		Password:    "correct-horse",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Sends Welcome Email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		email := new(emailServiceMock)
		svc := NewAuthService(userRepo, sessionRepo, email, testAuthConfig(), testLogger())
		svc.(*authService).dispatch = func(ctx context.Context, fn func(context.Context)) { fn(ctx) }

		userRepo.On("ExistsByEmail", ctx, "arthas@example.com").Return(false, nil).Once()
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "arthas@example.com" && u.Role == domain.RoleMember && u.IsActive
		})).Return(nil).Once()
		email.On("SendWelcome", mock.Anything, "arthas@example.com", "Arthas").Return(nil).Once()
		sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.Register(ctx, registerInput())

		assert.NoError(t, err)
		assert.Equal(t, "Arthas", user.DisplayName)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		email.AssertExpectations(t)
	})

	t.Run("Welcome Email Failure Does Not Fail Registration", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		email := new(emailServiceMock)
		svc := NewAuthService(userRepo, sessionRepo, email, testAuthConfig(), testLogger())
		svc.(*authService).dispatch = func(ctx context.Context, fn func(context.Context)) { fn(ctx) }

		userRepo.On("ExistsByEmail", ctx, "arthas@example.com").Return(false, nil).Once()
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("SendWelcome", mock.Anything, "arthas@example.com", "Arthas").Return(errors.New("smtp down")).Once()
		sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, _, err := svc.Register(ctx, registerInput())

		assert.NoError(t, err)
	})

	t.Run("Welcome Email Dispatch Carries A Deadline", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		email := new(emailServiceMock)
		svc := NewAuthService(userRepo, sessionRepo, email, testAuthConfig(), testLogger())

		done := make(chan struct{})
		var hasDeadline bool
		userRepo.On("ExistsByEmail", ctx, "arthas@example.com").Return(false, nil).Once()
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("SendWelcome", mock.Anything, "arthas@example.com", "Arthas").Run(func(args mock.Arguments) {
			_, hasDeadline = args.Get(0).(context.Context).Deadline()
			close(done)
		}).Return(nil).Once()
		sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, _, err := svc.Register(ctx, registerInput())
		assert.NoError(t, err)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("welcome email was never dispatched")
		}
		assert.True(t, hasDeadline)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := NewAuthService(userRepo, new(mocks.SessionRepository), new(emailServiceMock), testAuthConfig(), testLogger())

		userRepo.On("ExistsByEmail", ctx, "arthas@example.com").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, registerInput())

		assert.Equal(t, domain.ErrConflict, domain.KindOf(err))
	})

	t.Run("Short Password", func(t *testing.T) {
		svc := NewAuthService(new(mocks.UserRepository), new(mocks.SessionRepository), new(emailServiceMock), testAuthConfig(), testLogger())

		input := registerInput()
		input.Password = "short"
		_, _, err := svc.Register(ctx, input)

		assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	})
}
