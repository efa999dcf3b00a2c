package reservation

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/entities"
	"FoodShare-Backend/internal/utils/mailing"
	"FoodShare-Backend/pkg/listing"
	"FoodShare-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReservationService interface {
		CreateReservation(ctx context.Context, req domain.ReserveRequest, userID string) (*domain.Reservation, error)
		GetMyReservations(ctx context.Context, userID string, status string, page, limit int) ([]*domain.Reservation, int64, error)
		GetIncomingReservations(ctx context.Context, userID string, status string, page, limit int) ([]*domain.Reservation, int64, error)
		ConfirmReservation(ctx context.Context, id string, userID string) error
		CompleteReservation(ctx context.Context, id string, userID string) error
		CancelReservation(ctx context.Context, id string, userID string) error
		GetStatistics(ctx context.Context, userID string) (*domain.ReservationStatistics, error)
	}

	reservationService struct {
		reservationRepository ReservationRepository
		listingRepository     listing.ListingRepository
		userRepository        user.UserRepository
		mailer                mailing.Mailer
	}
)

func NewReservationService(reservationRepository ReservationRepository, listingRepository listing.ListingRepository, userRepository user.UserRepository, mailer mailing.Mailer) ReservationService {
	return &reservationService{
		reservationRepository: reservationRepository,
		listingRepository:     listingRepository,
		userRepository:        userRepository,
		mailer:                mailer,
	}
}

// availablePortions is how many portions a listing can still hand out. A
// listing without a portion counter counts as exactly one.
func availablePortions(l *entities.FoodListing) int {
	if l.AvailablePortions != nil {
		return *l.AvailablePortions
	}
	if l.TotalPortions != nil {
		return *l.TotalPortions
	}
	return 1
}

func (s *reservationService) CreateReservation(ctx context.Context, req domain.ReserveRequest, userID string) (*domain.Reservation, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	portions := req.Portions
	if portions < 1 {
		portions = 1
	}

	foodListing, err := s.listingRepository.GetListingByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	if foodListing.UserID.String() == userID {
		return nil, domain.ErrReserveOwnListing
	}

	if foodListing.Status != domain.ListingStatusAvailable {
		return nil, domain.ErrNotEnoughPortions
	}

	if available := availablePortions(foodListing); portions > available {
		return nil, fmt.Errorf("%w: only %d portion(s) left", domain.ErrNotEnoughPortions, available)
	}

	reserver, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	reserverUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := time.Now()
	reservation := &entities.Reservation{
		ID:               uuid.New(),
		ListingID:        foodListing.ID,
		ListingTitle:     foodListing.Title,
		ListingImage:     foodListing.ImageURL,
		ListingAddress:   foodListing.Address,
		ReservedBy:       reserverUUID,
		ReservedByName:   reserver.Name,
		ProviderID:       foodListing.UserID,
		ProviderName:     foodListing.UserName,
		PortionsReserved: portions,
		ReservationDate:  now,
		PickupAddress:    foodListing.Address,
		ExpirationDate:   foodListing.ExpirationDate,
		Category:         foodListing.Category,
		Status:           domain.ReservationStatusPending,
	}

	opening := &entities.Message{
		ID:           uuid.New(),
		SenderID:     reserverUUID,
		SenderName:   reserver.Name,
		ReceiverID:   foodListing.UserID,
		ReceiverName: foodListing.UserName,
		Content:      req.Message,
		IsRead:       false,
	}

	if err := s.reservationRepository.CreateReservation(ctx, reservation, opening); err != nil {
		return nil, err
	}

	s.notifyProvider(ctx, reservation)

	return mapReservation(reservation), nil
}

func (s *reservationService) GetMyReservations(ctx context.Context, userID string, status string, page, limit int) ([]*domain.Reservation, int64, error) {
	return s.getReservations(ctx, userID, false, status, page, limit)
}

func (s *reservationService) GetIncomingReservations(ctx context.Context, userID string, status string, page, limit int) ([]*domain.Reservation, int64, error) {
	return s.getReservations(ctx, userID, true, status, page, limit)
}

func (s *reservationService) getReservations(ctx context.Context, userID string, asProvider bool, status string, page, limit int) ([]*domain.Reservation, int64, error) {
	reservations, count, err := s.reservationRepository.GetUserReservations(ctx, userID, asProvider, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		result = append(result, mapReservation(reservation))
	}

	return result, count, nil
}

// ConfirmReservation moves pending to confirmed. Only the provider may confirm.
func (s *reservationService) ConfirmReservation(ctx context.Context, id string, userID string) error {
	reservation, err := s.getReservationForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if reservation.ProviderID.String() != userID {
		return domain.ErrUnauthorizedReservationAccess
	}
	if reservation.Status != domain.ReservationStatusPending {
		return domain.ErrInvalidReservationTransition
	}

	if err := s.reservationRepository.UpdateReservationStatus(ctx, id, domain.ReservationStatusConfirmed); err != nil {
		return err
	}

	s.notifyReserver(ctx, reservation)
	return nil
}

// CompleteReservation moves confirmed to completed. Only the reserver may mark
// the pickup as done.
func (s *reservationService) CompleteReservation(ctx context.Context, id string, userID string) error {
	reservation, err := s.getReservationForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if reservation.ReservedBy.String() != userID {
		return domain.ErrUnauthorizedReservationAccess
	}
	if reservation.Status != domain.ReservationStatusConfirmed {
		return domain.ErrInvalidReservationTransition
	}

	return s.reservationRepository.UpdateReservationStatus(ctx, id, domain.ReservationStatusCompleted)
}

// CancelReservation is open to either party while the reservation is pending or
// confirmed. The reserved portions go back to the listing.
func (s *reservationService) CancelReservation(ctx context.Context, id string, userID string) error {
	reservation, err := s.getReservationForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if reservation.ReservedBy.String() != userID && reservation.ProviderID.String() != userID {
		return domain.ErrUnauthorizedReservationAccess
	}
	if reservation.Status != domain.ReservationStatusPending && reservation.Status != domain.ReservationStatusConfirmed {
		return domain.ErrInvalidReservationTransition
	}

	return s.reservationRepository.CancelReservation(ctx, reservation)
}

// GetStatistics feeds the dashboard counters: the user's own reservations by
// status, plus pending requests on their listings.
func (s *reservationService) GetStatistics(ctx context.Context, userID string) (*domain.ReservationStatistics, error) {
	stats, err := s.reservationRepository.GetReservationStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.ReservationStatistics{
		PendingReservations:   int(stats["pending_reservations"].(int64)),
		ConfirmedReservations: int(stats["confirmed_reservations"].(int64)),
		CompletedReservations: int(stats["completed_reservations"].(int64)),
		TotalReservations:     int(stats["total_reservations"].(int64)),
		IncomingPending:       int(stats["incoming_pending"].(int64)),
	}, nil
}

func (s *reservationService) getReservationForUpdate(ctx context.Context, id string) (*entities.Reservation, error) {
	reservation, err := s.reservationRepository.GetReservationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

// Notifications are best effort: a mail failure never fails the reservation.

func (s *reservationService) notifyProvider(ctx context.Context, reservation *entities.Reservation) {
	provider, err := s.userRepository.GetUserByID(ctx, reservation.ProviderID.String())
	if err != nil {
		return
	}
	subject := fmt.Sprintf("New reservation for %q", reservation.ListingTitle)
	body := fmt.Sprintf(
		"<p>%s reserved %d portion(s) of <b>%s</b>.</p><p>Check your conversations to coordinate the pickup.</p>",
		reservation.ReservedByName, reservation.PortionsReserved, reservation.ListingTitle,
	)
	_ = s.mailer.Send(provider.Email, subject, body)
}

func (s *reservationService) notifyReserver(ctx context.Context, reservation *entities.Reservation) {
	reserver, err := s.userRepository.GetUserByID(ctx, reservation.ReservedBy.String())
	if err != nil {
		return
	}
	subject := fmt.Sprintf("Reservation confirmed for %q", reservation.ListingTitle)
	body := fmt.Sprintf(
		"<p>%s confirmed your reservation of <b>%s</b>.</p><p>Pickup address: %s</p>",
		reservation.ProviderName, reservation.ListingTitle, reservation.PickupAddress,
	)
	_ = s.mailer.Send(reserver.Email, subject, body)
}

func mapReservation(reservation *entities.Reservation) *domain.Reservation {
	return &domain.Reservation{
		ID:               reservation.ID.String(),
		ListingID:        reservation.ListingID.String(),
		ListingTitle:     reservation.ListingTitle,
		ListingImage:     reservation.ListingImage,
		ListingAddress:   reservation.ListingAddress,
		ReservedBy:       reservation.ReservedBy.String(),
		ReservedByName:   reservation.ReservedByName,
		ProviderID:       reservation.ProviderID.String(),
		ProviderName:     reservation.ProviderName,
		PortionsReserved: reservation.PortionsReserved,
		ReservationDate:  reservation.ReservationDate,
		PickupAddress:    reservation.PickupAddress,
		ExpirationDate:   reservation.ExpirationDate,
		Category:         reservation.Category,
		Status:           reservation.Status,
		CreatedAt:        reservation.CreatedAt,
	}
}
