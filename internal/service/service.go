package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"hero-forge/internal/config"
	"hero-forge/internal/repository"
)

type Services struct {
	Auth       AuthService
	User       UserService
	Character  CharacterService
	Comment    CommentService
	Moderation ModerationService
	Catalog    CatalogService
	Portrait   PortraitService
	Email      EmailService
	Audit      AuditService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, log zerolog.Logger) *Services {
	emailService := NewEmailService(cfg)
	auditService := NewAuditService(repos.AuditLog)
	authService := NewAuthService(repos.User, repos.Session, emailService, cfg, log)
	characterService := NewCharacterService(repos.Character, repos.Catalog, redis)
	commentService := NewCommentService(repos.Comment, repos.Character, redis)
	moderationService := NewModerationService(
		characterService,
		commentService,
		repos.Character,
		repos.Comment,
		repos.User,
		emailService,
		auditService,
		log,
		cfg.SideEffectTimeout,
	)
	userService := NewUserService(repos.User, repos.Session, emailService, auditService, log, cfg.SideEffectTimeout)
	catalogService := NewCatalogService(repos.Catalog, repos.Character, repos.Comment, commentService, redis)
	portraitService := NewPortraitService(repos.Character, minioClient, cfg)

	return &Services{
		Auth:       authService,
		User:       userService,
		Character:  characterService,
		Comment:    commentService,
		Moderation: moderationService,
		Catalog:    catalogService,
		Portrait:   portraitService,
		Email:      emailService,
		Audit:      auditService,
	}
}
