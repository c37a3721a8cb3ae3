package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"hero-forge/internal/domain"
	"hero-forge/internal/service"
)

type Handlers struct {
	Auth       *AuthHandler
	Character  *CharacterHandler
	Comment    *CommentHandler
	Moderation *ModerationHandler
	Admin      *AdminHandler
	Catalog    *CatalogHandler
	Public     *PublicHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(services.Auth),
		Character:  NewCharacterHandler(services.Character, services.Comment, services.Portrait),
		Comment:    NewCommentHandler(services.Comment),
		Moderation: NewModerationHandler(services.Moderation),
		Admin:      NewAdminHandler(services.User, services.Audit),
		Catalog:    NewCatalogHandler(services.Catalog),
		Public:     NewPublicHandler(services.Catalog),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	return domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("invalid " + name)
	}
	return id, nil
}
