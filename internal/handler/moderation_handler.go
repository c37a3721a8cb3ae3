package handler

import (
	"github.com/gofiber/fiber/v2"

	"hero-forge/internal/domain"
	"hero-forge/internal/middleware"
	"hero-forge/internal/service"
)

type ModerationHandler struct {
	moderationService service.ModerationService
}

func NewModerationHandler(moderationService service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) PendingCharacters(c *fiber.Ctx) error {
	result, err := h.moderationService.GetPendingCharacters(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *ModerationHandler) PendingComments(c *fiber.Ctx) error {
	result, err := h.moderationService.GetPendingComments(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *ModerationHandler) ApproveCharacter(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	character, err := h.moderationService.ApproveCharacter(c.Context(), id, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(character)
}

func (h *ModerationHandler) RejectCharacter(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	var input domain.RejectInput
	if err := c.BodyParser(&input); err != nil {
		return domain.ValidationError("invalid request body")
	}

	character, err := h.moderationService.RejectCharacter(c.Context(), id, middleware.GetCurrentUserID(c), input.Reason)
	if err != nil {
		return err
	}

	return c.JSON(character)
}

func (h *ModerationHandler) ApproveComment(c *fiber.Ctx) error {
	id, err := paramID(c, "commentId")
	if err != nil {
		return err
	}

	comment, err := h.moderationService.ApproveComment(c.Context(), id, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

func (h *ModerationHandler) RejectComment(c *fiber.Ctx) error {
	id, err := paramID(c, "commentId")
	if err != nil {
		return err
	}

	var input domain.RejectInput
	if err := c.BodyParser(&input); err != nil {
		return domain.ValidationError("invalid request body")
	}

	comment, err := h.moderationService.RejectComment(c.Context(), id, middleware.GetCurrentUserID(c), input.Reason)
	if err != nil {
		return err
	}

	return c.JSON(comment)
}
