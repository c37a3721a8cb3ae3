package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hero-forge/internal/domain"
	"hero-forge/internal/repository"
)

// CatalogService serves reference data (classes, item catalog) and the
// public shared-character gallery. Everything here is read-only and cached.
type CatalogService interface {
	ListClasses(ctx context.Context) ([]domain.CharacterClass, error)
	ListSlots(ctx context.Context) ([]domain.ItemSlot, error)
	ListTypes(ctx context.Context) ([]domain.ItemType, error)
	SearchItems(ctx context.Context, filter domain.ItemFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Item], error)
	Gallery(ctx context.Context, filter domain.GalleryFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Character], error)
	GalleryCharacter(ctx context.Context, id int64) (*GalleryCharacter, error)
}

// GalleryCharacter is the public detail view: the character plus its
// approved comments and rating summary.
type GalleryCharacter struct {
	Character     domain.Character `json:"character"`
	Comments      []domain.Comment `json:"comments"`
	AverageRating float64          `json:"average_rating"`
	RatingCount   int64            `json:"rating_count"`
}

type catalogService struct {
	catalogRepo   repository.CatalogRepository
	characterRepo repository.CharacterRepository
	commentRepo   repository.CommentRepository
	comments      CommentService
	redis         *redis.Client
}

func NewCatalogService(catalogRepo repository.CatalogRepository, characterRepo repository.CharacterRepository, commentRepo repository.CommentRepository, comments CommentService, redis *redis.Client) CatalogService {
	return &catalogService{
		catalogRepo:   catalogRepo,
		characterRepo: characterRepo,
		commentRepo:   commentRepo,
		comments:      comments,
		redis:         redis,
	}
}

func (s *catalogService) ListClasses(ctx context.Context) ([]domain.CharacterClass, error) {
	var classes []domain.CharacterClass
	if s.cacheGet(ctx, "catalog:classes", &classes) {
		return classes, nil
	}

	classes, err := s.catalogRepo.ListClasses(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, "catalog:classes", classes, time.Hour)
	return classes, nil
}

func (s *catalogService) ListSlots(ctx context.Context) ([]domain.ItemSlot, error) {
	var slots []domain.ItemSlot
	if s.cacheGet(ctx, "catalog:slots", &slots) {
		return slots, nil
	}

	slots, err := s.catalogRepo.ListSlots(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, "catalog:slots", slots, time.Hour)
	return slots, nil
}

func (s *catalogService) ListTypes(ctx context.Context) ([]domain.ItemType, error) {
	var types []domain.ItemType
	if s.cacheGet(ctx, "catalog:types", &types) {
		return types, nil
	}

	types, err := s.catalogRepo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, "catalog:types", types, time.Hour)
	return types, nil
}

func (s *catalogService) SearchItems(ctx context.Context, filter domain.ItemFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Item], error) {
	params.Normalize()
	if filter.Sort != "" && !filter.Sort.IsValid() {
		return domain.PaginatedResponse[domain.Item]{}, domain.ValidationError("invalid sort key")
	}

	items, total, err := s.catalogRepo.ListItems(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Item]{}, err
	}

	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *catalogService) Gallery(ctx context.Context, filter domain.GalleryFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Character], error) {
	params.Normalize()
	if filter.Sort != "" && !filter.Sort.IsValid() {
		return domain.PaginatedResponse[domain.Character]{}, domain.ValidationError("invalid sort key")
	}

	cacheKey := galleryCacheKey(galleryVersion(ctx, s.redis), filter, params)
	var cached domain.PaginatedResponse[domain.Character]
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	characters, total, err := s.characterRepo.ListShared(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Character]{}, err
	}

	result := domain.NewPaginatedResponse(characters, params.Page, params.PageSize, total)
	s.cacheSet(ctx, cacheKey, result, time.Minute)
	return result, nil
}

func (s *catalogService) GalleryCharacter(ctx context.Context, id int64) (*GalleryCharacter, error) {
	character, err := s.characterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Unshared characters are invisible to the public surface.
	if character == nil || character.Status != domain.CharacterApproved || !character.IsShared {
		return nil, domain.NotFound("character not found")
	}

	comments, err := s.comments.ListApprovedForCharacter(ctx, id)
	if err != nil {
		return nil, err
	}

	average, count, err := s.commentRepo.AverageRatingForCharacter(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GalleryCharacter{
		Character:     *character,
		Comments:      comments,
		AverageRating: average,
		RatingCount:   count,
	}, nil
}

func (s *catalogService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.redis == nil {
		return false
	}
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), out) == nil
}

func (s *catalogService) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if payload, err := json.Marshal(value); err == nil {
		_ = s.redis.Set(ctx, key, payload, ttl).Err()
	}
}

const galleryVersionKey = "gallery:version"

// Gallery pages are cached under a version-stamped prefix. Transitions that
// change public visibility bump the version, orphaning every cached page at
// once instead of tracking individual keys.
func galleryVersion(ctx context.Context, rdb *redis.Client) string {
	if rdb == nil {
		return "0"
	}
	version, err := rdb.Get(ctx, galleryVersionKey).Result()
	if err != nil {
		return "0"
	}
	return version
}

func bumpGalleryVersion(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	_ = rdb.Incr(ctx, galleryVersionKey).Err()
}

func galleryCacheKey(version string, filter domain.GalleryFilter, params domain.PaginationParams) string {
	classID := int64(0)
	if filter.ClassID != nil {
		classID = *filter.ClassID
	}
	return fmt.Sprintf("gallery:v%s:%s:%d:%s:%d:%d", version, filter.Search, classID, filter.Sort, params.Page, params.PageSize)
}
