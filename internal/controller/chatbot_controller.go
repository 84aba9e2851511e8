package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pdf-chatbot-be/internal/dto"
	"pdf-chatbot-be/internal/pkg/serverutils"
	"pdf-chatbot-be/internal/service"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Post("/sessions", c.CreateSession)
	h.Post("/sessions/:id/upload", c.Upload)
	h.Post("/sessions/:id/chat", c.SendChat)
	h.Get("/sessions/:id/history", c.GetHistory)
	h.Delete("/sessions/:id", c.DeleteSession)
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatbotController) Upload(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return serverutils.NewBadRequest("expected multipart form with files")
	}

	headers := form.File["files"]
	files := make([]dto.UploadFile, 0, len(headers))
	for _, header := range headers {
		opened, err := header.Open()
		if err != nil {
			return serverutils.NewBadRequest("unreadable file in form: " + header.Filename)
		}
		data, err := io.ReadAll(opened)
		opened.Close()
		if err != nil {
			return serverutils.NewBadRequest("unreadable file in form: " + header.Filename)
		}
		files = append(files, dto.UploadFile{
			Filename: header.Filename,
			Data:     data,
		})
	}

	res, err := c.service.Upload(ctx.Context(), sessionId, files)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload files", res))
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid chat payload")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), sessionId, req.Chat)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetChatHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteSession(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

// sessionIdParam parses the :id path segment. A malformed id cannot name a
// live session, so it maps to the same not-found error as an unknown one.
func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewSessionNotFound()
	}
	return sessionId, nil
}
