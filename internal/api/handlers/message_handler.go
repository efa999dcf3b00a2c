package handlers

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/internal/api/presenters"
	"FoodShare-Backend/pkg/messaging"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MessageHandler interface {
		GetThreads(c *fiber.Ctx) error
		GetThreadMessages(c *fiber.Ctx) error
		SendMessage(c *fiber.Ctx) error
		MarkThreadRead(c *fiber.Ctx) error
	}

	messageHandler struct {
		messagingService messaging.MessagingService
		validator        *validator.Validate
	}
)

func NewMessageHandler(messagingService messaging.MessagingService, validator *validator.Validate) MessageHandler {
	return &messageHandler{
		messagingService: messagingService,
		validator:        validator,
	}
}

func (h *messageHandler) GetThreads(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	threads, err := h.messagingService.GetThreads(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetThreads, err)
	}

	return presenters.SuccessResponse(c, threads, fiber.StatusOK, domain.MessageSuccessGetThreads)
}

func (h *messageHandler) GetThreadMessages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reservationID := c.Params("id")
	page, limit := pagination(c)

	messages, count, err := h.messagingService.GetThreadMessages(c.Context(), reservationID, userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMessages, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"messages": messages,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetMessages)
}

func (h *messageHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SendMessageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}

	res, err := h.messagingService.SendMessage(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSendMessage)
}

func (h *messageHandler) MarkThreadRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reservationID := c.Params("id")

	if err := h.messagingService.MarkThreadRead(c.Context(), reservationID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkThreadRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkThreadRead)
}
