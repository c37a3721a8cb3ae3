package service

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"hero-forge/internal/config"
	"hero-forge/internal/domain"
	"hero-forge/internal/repository"
)

const portraitMaxBytes = 5 << 20

// PortraitService stores one portrait image per character in object
// storage and keeps the public URL on the character row.
type PortraitService interface {
	Upload(ctx context.Context, characterID, requesterID int64, reader io.Reader, size int64, contentType string) (*domain.Character, error)
	Remove(ctx context.Context, characterID, requesterID int64) error
}

type portraitService struct {
	characterRepo repository.CharacterRepository
	client        *minio.Client
	cfg           *config.Config
}

func NewPortraitService(characterRepo repository.CharacterRepository, client *minio.Client, cfg *config.Config) PortraitService {
	return &portraitService{
		characterRepo: characterRepo,
		client:        client,
		cfg:           cfg,
	}
}

func (s *portraitService) Upload(ctx context.Context, characterID, requesterID int64, reader io.Reader, size int64, contentType string) (*domain.Character, error) {
	if s.client == nil {
		return nil, domain.Internal(fmt.Errorf("object storage not configured"))
	}

	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, domain.NotFound("character not found")
	}
	if character.OwnerID != requesterID {
		return nil, domain.Forbidden("you do not own this character")
	}

	if size <= 0 || size > portraitMaxBytes {
		return nil, domain.ValidationError("portrait must be between 1 byte and 5 MB")
	}
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
	default:
		return nil, domain.ValidationError("portrait must be a PNG, JPEG or WebP image")
	}

	objectName := fmt.Sprintf("characters/%d/portrait", characterID)
	_, err = s.client.PutObject(ctx, s.cfg.MinIOBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if s.cfg.MinIOUseSSL {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectName)

	if err := s.characterRepo.SetPortraitURL(context.WithoutCancel(ctx), characterID, &url); err != nil {
		return nil, err
	}

	character.PortraitURL = &url
	return character, nil
}

func (s *portraitService) Remove(ctx context.Context, characterID, requesterID int64) error {
	if s.client == nil {
		return domain.Internal(fmt.Errorf("object storage not configured"))
	}

	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return err
	}
	if character == nil {
		return domain.NotFound("character not found")
	}
	if character.OwnerID != requesterID {
		return domain.Forbidden("you do not own this character")
	}
	if character.PortraitURL == nil {
		return domain.NotFound("character has no portrait")
	}

	objectName := fmt.Sprintf("characters/%d/portrait", characterID)
	if err := s.client.RemoveObject(ctx, s.cfg.MinIOBucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return err
	}

	return s.characterRepo.SetPortraitURL(context.WithoutCancel(ctx), characterID, nil)
}
