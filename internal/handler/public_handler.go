package handler

import (
	"github.com/gofiber/fiber/v2"

	"hero-forge/internal/domain"
	"hero-forge/internal/service"
)

// PublicHandler serves the shared-character gallery. No authentication is
// required for these routes.
type PublicHandler struct {
	catalogService service.CatalogService
}

func NewPublicHandler(catalogService service.CatalogService) *PublicHandler {
	return &PublicHandler{catalogService: catalogService}
}

func (h *PublicHandler) Gallery(c *fiber.Ctx) error {
	var filter domain.GalleryFilter
	if err := c.QueryParser(&filter); err != nil {
		return domain.ValidationError("invalid query parameters")
	}

	result, err := h.catalogService.Gallery(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *PublicHandler) GalleryCharacter(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	character, err := h.catalogService.GalleryCharacter(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(character)
}
