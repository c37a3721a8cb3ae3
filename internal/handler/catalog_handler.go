package handler

import (
	"github.com/gofiber/fiber/v2"

	"hero-forge/internal/domain"
	"hero-forge/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListClasses(c *fiber.Ctx) error {
	classes, err := h.catalogService.ListClasses(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(classes)
}

func (h *CatalogHandler) ListSlots(c *fiber.Ctx) error {
	slots, err := h.catalogService.ListSlots(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(slots)
}

func (h *CatalogHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.catalogService.ListTypes(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(types)
}

func (h *CatalogHandler) SearchItems(c *fiber.Ctx) error {
	var filter domain.ItemFilter
	if err := c.QueryParser(&filter); err != nil {
		return domain.ValidationError("invalid query parameters")
	}

	result, err := h.catalogService.SearchItems(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}
