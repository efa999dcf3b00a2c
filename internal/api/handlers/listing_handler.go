package handlers

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/internal/api/presenters"
	"FoodShare-Backend/pkg/listing"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ListingHandler interface {
		CreateListing(c *fiber.Ctx) error
		BrowseFeed(c *fiber.Ctx) error
		GetMyListings(c *fiber.Ctx) error
		GetListingDetails(c *fiber.Ctx) error
		UpdateListingStatus(c *fiber.Ctx) error
		DeleteListing(c *fiber.Ctx) error
		GetListingStats(c *fiber.Ctx) error
	}

	listingHandler struct {
		listingService listing.ListingService
		validator      *validator.Validate
	}
)

func NewListingHandler(listingService listing.ListingService, validator *validator.Validate) ListingHandler {
	return &listingHandler{
		listingService: listingService,
		validator:      validator,
	}
}

func (h *listingHandler) CreateListing(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateListingRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// Image upload is optional and only arrives as multipart.
	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, err)
	}

	res, err := h.listingService.CreateListing(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateListing)
}

// BrowseFeed lists what the current user can reserve: available listings from
// other users, optionally narrowed by category or free-text search.
func (h *listingHandler) BrowseFeed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c)

	filter := domain.ListingFilter{
		Status:         c.Query("status", domain.ListingStatusAvailable),
		Category:       c.Query("category", "all"),
		Search:         c.Query("search"),
		ExcludeOwnerID: userID,
	}

	items, count, err := h.listingService.BrowseFeed(c.Context(), filter, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetListings)
}

func (h *listingHandler) GetMyListings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")
	page, limit := pagination(c)

	items, count, err := h.listingService.GetUserListings(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetListings)
}

func (h *listingHandler) GetListingDetails(c *fiber.Ctx) error {
	listingID := c.Params("id")

	res, err := h.listingService.GetListingByID(c.Context(), listingID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListingDetails, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetListingDetails)
}

func (h *listingHandler) UpdateListingStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listingID := c.Params("id")
	req := new(domain.UpdateListingStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateListingStatus, err)
	}

	if err := h.listingService.UpdateListingStatus(c.Context(), listingID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateListingStatus, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateListingStatus)
}

func (h *listingHandler) DeleteListing(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listingID := c.Params("id")

	if err := h.listingService.DeleteListing(c.Context(), listingID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteListing, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteListing)
}

func (h *listingHandler) GetListingStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.listingService.GetStatistics(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListingStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetListingStats)
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	return page, limit
}
