package handler

import (
	"github.com/gofiber/fiber/v2"

	"hero-forge/internal/domain"
	"hero-forge/internal/middleware"
	"hero-forge/internal/service"
)

type CharacterHandler struct {
	characterService service.CharacterService
	commentService   service.CommentService
	portraitService  service.PortraitService
}

func NewCharacterHandler(characterService service.CharacterService, commentService service.CommentService, portraitService service.PortraitService) *CharacterHandler {
	return &CharacterHandler{
		characterService: characterService,
		commentService:   commentService,
		portraitService:  portraitService,
	}
}

func (h *CharacterHandler) Create(c *fiber.Ctx) error {
	var attrs domain.CharacterAttributes
	if err := c.BodyParser(&attrs); err != nil {
		return domain.ValidationError("invalid request body")
	}

	character, err := h.characterService.Create(c.Context(), middleware.GetCurrentUserID(c), attrs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(character)
}

func (h *CharacterHandler) List(c *fiber.Ctx) error {
	characters, err := h.characterService.ListOwn(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(characters)
}

func (h *CharacterHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	character, err := h.characterService.Get(c.Context(), id, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(character)
}

func (h *CharacterHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	var attrs domain.CharacterAttributes
	if err := c.BodyParser(&attrs); err != nil {
		return domain.ValidationError("invalid request body")
	}

	character, err := h.characterService.Update(c.Context(), id, middleware.GetCurrentUserID(c), attrs)
	if err != nil {
		return err
	}

	return c.JSON(character)
}

func (h *CharacterHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	if err := h.characterService.Delete(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CharacterHandler) Submit(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	character, err := h.characterService.Submit(c.Context(), id, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(character)
}

func (h *CharacterHandler) Duplicate(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	var input domain.DuplicateCharacterInput
	if err := c.BodyParser(&input); err != nil {
		return domain.ValidationError("invalid request body")
	}

	character, err := h.characterService.Duplicate(c.Context(), id, middleware.GetCurrentUserID(c), input.Name)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(character)
}

func (h *CharacterHandler) ToggleShare(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	character, err := h.characterService.ToggleShare(c.Context(), id, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(character)
}

func (h *CharacterHandler) UploadPortrait(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("portrait")
	if err != nil {
		return domain.ValidationError("portrait file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.ValidationError("portrait file could not be read")
	}
	defer file.Close()

	character, err := h.portraitService.Upload(
		c.Context(),
		id,
		middleware.GetCurrentUserID(c),
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		return err
	}

	return c.JSON(character)
}

func (h *CharacterHandler) CreateComment(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return domain.ValidationError("invalid request body")
	}

	comment, err := h.commentService.Create(c.Context(), id, middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CharacterHandler) ListComments(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListApprovedForCharacter(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(comments)
}

func (h *CharacterHandler) MyComment(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	comment, err := h.commentService.GetOwnComment(c.Context(), id, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.NotFound("you have not commented on this character")
	}

	return c.JSON(comment)
}

func (h *CharacterHandler) RemovePortrait(c *fiber.Ctx) error {
	id, err := paramID(c, "characterId")
	if err != nil {
		return err
	}

	if err := h.portraitService.Remove(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
