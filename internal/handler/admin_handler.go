package handler

import (
	"github.com/gofiber/fiber/v2"

	"hero-forge/internal/middleware"
	"hero-forge/internal/service"
)

type AdminHandler struct {
	userService  service.UserService
	auditService service.AuditService
}

func NewAdminHandler(userService service.UserService, auditService service.AuditService) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		auditService: auditService,
	}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	result, err := h.userService.List(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *AdminHandler) SuspendUser(c *fiber.Ctx) error {
	id, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.userService.Suspend(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "user suspended"})
}

func (h *AdminHandler) ReactivateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.userService.Reactivate(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "user reactivated"})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) RecentActivity(c *fiber.Ctx) error {
	result, err := h.auditService.RecentActivity(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *AdminHandler) TargetActivity(c *fiber.Ctx) error {
	id, err := paramID(c, "targetId")
	if err != nil {
		return err
	}

	result, err := h.auditService.ActivityForTarget(c.Context(), c.Params("targetType"), id, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}
