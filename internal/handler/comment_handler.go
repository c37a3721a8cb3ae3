package handler

import (
	"github.com/gofiber/fiber/v2"

	"hero-forge/internal/middleware"
	"hero-forge/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Delete removes the requester's own comment.
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "commentId")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
