package handlers

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/internal/api/presenters"
	"FoodShare-Backend/pkg/reservation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReservationHandler interface {
		CreateReservation(c *fiber.Ctx) error
		GetMyReservations(c *fiber.Ctx) error
		GetIncomingReservations(c *fiber.Ctx) error
		ConfirmReservation(c *fiber.Ctx) error
		CompleteReservation(c *fiber.Ctx) error
		CancelReservation(c *fiber.Ctx) error
		GetReservationStats(c *fiber.Ctx) error
	}

	reservationHandler struct {
		reservationService reservation.ReservationService
		validator          *validator.Validate
	}
)

func NewReservationHandler(reservationService reservation.ReservationService, validator *validator.Validate) ReservationHandler {
	return &reservationHandler{
		reservationService: reservationService,
		validator:          validator,
	}
}

func (h *reservationHandler) CreateReservation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ReserveRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReservation, err)
	}

	res, err := h.reservationService.CreateReservation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReservation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateReservation)
}

func (h *reservationHandler) GetMyReservations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")
	page, limit := pagination(c)

	items, count, err := h.reservationService.GetMyReservations(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReservations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetReservations)
}

func (h *reservationHandler) GetIncomingReservations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")
	page, limit := pagination(c)

	items, count, err := h.reservationService.GetIncomingReservations(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReservations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetReservations)
}

func (h *reservationHandler) ConfirmReservation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reservationID := c.Params("id")

	if err := h.reservationService.ConfirmReservation(c.Context(), reservationID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmReservation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessConfirmReservation)
}

func (h *reservationHandler) CompleteReservation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reservationID := c.Params("id")

	if err := h.reservationService.CompleteReservation(c.Context(), reservationID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompleteReservation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCompleteReservation)
}

func (h *reservationHandler) CancelReservation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reservationID := c.Params("id")

	if err := h.reservationService.CancelReservation(c.Context(), reservationID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelReservation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelReservation)
}

func (h *reservationHandler) GetReservationStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.reservationService.GetStatistics(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReservationStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetReservationStats)
}
