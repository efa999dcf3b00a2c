package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateReservation   = "reservation created successfully"
	MessageSuccessGetReservations     = "reservations retrieved successfully"
	MessageSuccessConfirmReservation  = "reservation confirmed successfully"
	MessageSuccessCompleteReservation = "reservation marked as completed"
	MessageSuccessCancelReservation   = "reservation cancelled successfully"
	MessageSuccessGetReservationStats = "reservation statistics retrieved successfully"

	MessageFailedCreateReservation   = "failed to create reservation"
	MessageFailedGetReservations     = "failed to retrieve reservations"
	MessageFailedConfirmReservation  = "failed to confirm reservation"
	MessageFailedCompleteReservation = "failed to mark reservation as completed"
	MessageFailedCancelReservation   = "failed to cancel reservation"
	MessageFailedGetReservationStats = "failed to retrieve reservation statistics"

	ErrReservationNotFound           = errors.New("reservation not found")
	ErrUnauthorizedReservationAccess = errors.New("unauthorized access to reservation")
	ErrNotEnoughPortions             = errors.New("not enough portions available")
	ErrReserveOwnListing             = errors.New("cannot reserve your own listing")
	ErrInvalidReservationTransition  = errors.New("invalid reservation status transition")
)

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

type (
	ReserveRequest struct {
		ListingID string `json:"listing_id" validate:"required,uuid"`
		Portions  int    `json:"portions" validate:"omitempty,min=1"`
		Message   string `json:"message" validate:"required"`
	}

	Reservation struct {
		ID               string    `json:"id"`
		ListingID        string    `json:"listing_id"`
		ListingTitle     string    `json:"listing_title"`
		ListingImage     string    `json:"listing_image,omitempty"`
		ListingAddress   string    `json:"listing_address"`
		ReservedBy       string    `json:"reserved_by"`
		ReservedByName   string    `json:"reserved_by_name"`
		ProviderID       string    `json:"provider_id"`
		ProviderName     string    `json:"provider_name"`
		PortionsReserved int       `json:"portions_reserved"`
		ReservationDate  time.Time `json:"reservation_date"`
		PickupAddress    string    `json:"pickup_address"`
		ExpirationDate   time.Time `json:"expiration_date"`
		Category         string    `json:"category"`
		Status           string    `json:"status"`
		CreatedAt        time.Time `json:"created_at"`
	}

	ReservationStatistics struct {
		PendingReservations   int `json:"pending_reservations"`
		ConfirmedReservations int `json:"confirmed_reservations"`
		CompletedReservations int `json:"completed_reservations"`
		TotalReservations     int `json:"total_reservations"`
		IncomingPending       int `json:"incoming_pending"`
	}
)
