package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"fiberise-be/internal/dto"
	"fiberise-be/internal/pkg/apperror"
	"fiberise-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service  service.IChatService
	validate *validator.Validate
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		service:  chatService,
		validate: validator.New(),
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Post("/chat", c.SendChat)
	h.Delete("/chat/:sessionId", c.ClearSession)
}

// SendChat does not require a session token. Anonymous visitors can talk to
// the assistant before signing in.
func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Message is required and must be a non-empty string")
	}
	if err := c.validate.Struct(&req); err != nil {
		return apperror.Validation("Message is required and must be a non-empty string")
	}

	res, err := c.service.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) ClearSession(ctx *fiber.Ctx) error {
	if err := c.service.ClearSession(ctx.Context(), ctx.Params("sessionId")); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Conversation history cleared",
	})
}
