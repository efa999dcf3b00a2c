package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateListing       = "listing created successfully"
	MessageSuccessGetListings         = "listings retrieved successfully"
	MessageSuccessGetListingDetails   = "listing details retrieved successfully"
	MessageSuccessUpdateListingStatus = "listing status updated successfully"
	MessageSuccessDeleteListing       = "listing deleted successfully"
	MessageSuccessGetListingStats     = "listing statistics retrieved successfully"

	MessageFailedCreateListing       = "failed to create listing"
	MessageFailedGetListings         = "failed to retrieve listings"
	MessageFailedGetListingDetails   = "failed to retrieve listing details"
	MessageFailedUpdateListingStatus = "failed to update listing status"
	MessageFailedDeleteListing       = "failed to delete listing"
	MessageFailedGetListingStats     = "failed to retrieve listing statistics"

	ErrListingNotFound           = errors.New("listing not found")
	ErrUnauthorizedListingAccess = errors.New("unauthorized access to listing")
	ErrInvalidListingStatus      = errors.New("invalid listing status")
	ErrInvalidDietaryTag         = errors.New("dietary tags cannot contain commas")
)

const (
	ListingStatusAvailable = "available"
	ListingStatusReserved  = "reserved"
	ListingStatusCompleted = "completed"

	// Derived from the expiration date when presenting a listing,
	// never persisted.
	ListingStatusExpired = "expired"
)

type (
	CreateListingRequest struct {
		Title          string                `json:"title" form:"title" validate:"required"`
		Description    string                `json:"description" form:"description" validate:"required"`
		Category       string                `json:"category" form:"category" validate:"required"`
		Quantity       string                `json:"quantity" form:"quantity" validate:"required"`
		TotalPortions  *int                  `json:"total_portions" form:"total_portions" validate:"omitempty,min=1"`
		ExpirationDate string                `json:"expiration_date" form:"expiration_date" validate:"required"`
		Address        string                `json:"address" form:"address" validate:"required"`
		Latitude       *float64              `json:"latitude" form:"latitude"`
		Longitude      *float64              `json:"longitude" form:"longitude"`
		DietaryTags    []string              `json:"dietary_tags" form:"dietary_tags" validate:"omitempty,dive,excludesall=0x2C"`
		Image          *multipart.FileHeader `json:"image" form:"image"`
	}

	UpdateListingStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=available reserved completed"`
	}

	ListingFilter struct {
		Status         string
		Category       string
		OwnerID        string
		ExcludeOwnerID string
		Search         string
	}

	FoodListing struct {
		ID                string    `json:"id"`
		UserID            string    `json:"user_id"`
		UserName          string    `json:"user_name"`
		Title             string    `json:"title"`
		Description       string    `json:"description"`
		Category          string    `json:"category"`
		Quantity          string    `json:"quantity"`
		TotalPortions     *int      `json:"total_portions,omitempty"`
		AvailablePortions *int      `json:"available_portions,omitempty"`
		ExpirationDate    time.Time `json:"expiration_date"`
		Address           string    `json:"address"`
		Latitude          *float64  `json:"latitude,omitempty"`
		Longitude         *float64  `json:"longitude,omitempty"`
		ImageURL          string    `json:"image_url,omitempty"`
		DietaryTags       []string  `json:"dietary_tags,omitempty"`
		Status            string    `json:"status"`
		CreatedAt         time.Time `json:"created_at"`
	}

	ListingStatistics struct {
		AvailableListings int `json:"available_listings"`
		ReservedListings  int `json:"reserved_listings"`
		CompletedListings int `json:"completed_listings"`
		TotalListings     int `json:"total_listings"`
	}
)
