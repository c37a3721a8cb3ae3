// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hero-forge/internal/domain"
	"hero-forge/internal/repository"
)

type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) Create(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *CharacterRepository) GetByID(ctx context.Context, id int64) (*domain.Character, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Character), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CharacterRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Character, error) {
	args := m.Called(ctx, ownerID)
	if c := args.Get(0); c != nil {
		return c.([]domain.Character), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CharacterRepository) Update(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *CharacterRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CharacterRepository) ExistsByNameForOwner(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, ownerID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *CharacterRepository) SetShared(ctx context.Context, id int64, shared bool) error {
	args := m.Called(ctx, id, shared)
	return args.Error(0)
}

func (m *CharacterRepository) SetPortraitURL(ctx context.Context, id int64, url *string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *CharacterRepository) ReviewTransition(ctx context.Context, id int64, to domain.CharacterStatus, reviewerID int64, reason *string) (bool, error) {
	args := m.Called(ctx, id, to, reviewerID, reason)
	return args.Bool(0), args.Error(1)
}

func (m *CharacterRepository) ListPending(ctx context.Context, params domain.PaginationParams) ([]domain.Character, int64, error) {
	args := m.Called(ctx, params)
	if c := args.Get(0); c != nil {
		return c.([]domain.Character), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *CharacterRepository) ListShared(ctx context.Context, filter domain.GalleryFilter, params domain.PaginationParams) ([]domain.Character, int64, error) {
	args := m.Called(ctx, filter, params)
	if c := args.Get(0); c != nil {
		return c.([]domain.Character), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) GetByAuthorAndCharacter(ctx context.Context, characterID, authorID int64) (*domain.Comment, error) {
	args := m.Called(ctx, characterID, authorID)
	if c := args.Get(0); c != nil {
		return c.(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) ExistsByAuthorAndCharacter(ctx context.Context, characterID, authorID int64) (bool, error) {
	args := m.Called(ctx, characterID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentRepository) ListApprovedByCharacter(ctx context.Context, characterID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, characterID)
	if c := args.Get(0); c != nil {
		return c.([]domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) ReviewTransition(ctx context.Context, id int64, to domain.CommentStatus, reviewerID int64, reason *string) (bool, error) {
	args := m.Called(ctx, id, to, reviewerID, reason)
	return args.Bool(0), args.Error(1)
}

func (m *CommentRepository) ListPending(ctx context.Context, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, params)
	if c := args.Get(0); c != nil {
		return c.([]domain.Comment), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *CommentRepository) AverageRatingForCharacter(ctx context.Context, characterID int64) (float64, int64, error) {
	args := m.Called(ctx, characterID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error) {
	args := m.Called(ctx, params)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepository) Suspend(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) Reactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) GetClassByID(ctx context.Context, id int64) (*domain.CharacterClass, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.CharacterClass), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) ListClasses(ctx context.Context) ([]domain.CharacterClass, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]domain.CharacterClass), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) ListSlots(ctx context.Context) ([]domain.ItemSlot, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]domain.ItemSlot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) ListTypes(ctx context.Context) ([]domain.ItemType, error) {
	args := m.Called(ctx)
	if t := args.Get(0); t != nil {
		return t.([]domain.ItemType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) ListItems(ctx context.Context, filter domain.ItemFilter, params domain.PaginationParams) ([]domain.Item, int64, error) {
	args := m.Called(ctx, filter, params)
	if i := args.Get(0); i != nil {
		return i.([]domain.Item), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	args := m.Called(ctx, params)
	if l := args.Get(0); l != nil {
		return l.([]domain.AuditLog), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *AuditLogRepository) ListByTarget(ctx context.Context, targetType string, targetID int64, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	args := m.Called(ctx, targetType, targetID, params)
	if l := args.Get(0); l != nil {
		return l.([]domain.AuditLog), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, session *repository.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*repository.Session, error) {
	args := m.Called(ctx, tokenHash)
	if s := args.Get(0); s != nil {
		return s.(*repository.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *SessionRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
