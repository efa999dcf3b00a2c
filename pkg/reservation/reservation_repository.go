package reservation

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ReservationRepository interface {
		// CreateReservation persists the reservation, its opening message and
		// the listing portion decrement in a single transaction. The decrement
		// is guarded so a race past the service-level availability check fails
		// here instead of driving the counter negative.
		CreateReservation(ctx context.Context, reservation *entities.Reservation, opening *entities.Message) error
		GetReservationByID(ctx context.Context, id string) (*entities.Reservation, error)
		GetUserReservations(ctx context.Context, userID string, asProvider bool, status string, page, limit int) ([]*entities.Reservation, int64, error)
		UpdateReservationStatus(ctx context.Context, id string, status string) error
		// CancelReservation flips the reservation to cancelled and hands the
		// reserved portions back to the listing.
		CancelReservation(ctx context.Context, reservation *entities.Reservation) error
		GetReservationStatistics(ctx context.Context, userID string) (map[string]interface{}, error)
	}

	reservationRepository struct {
		db *gorm.DB
	}
)

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) CreateReservation(ctx context.Context, reservation *entities.Reservation, opening *entities.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.FoodListing{}).
			Where("id = ? AND available_portions IS NOT NULL AND available_portions >= ?",
				reservation.ListingID, reservation.PortionsReserved).
			UpdateColumn("available_portions", gorm.Expr("available_portions - ?", reservation.PortionsReserved))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// Listings without a portion counter carry exactly one reservable
			// portion: claiming it flips the status directly.
			res = tx.Model(&entities.FoodListing{}).
				Where("id = ? AND available_portions IS NULL AND status = ?",
					reservation.ListingID, domain.ListingStatusAvailable).
				Update("status", domain.ListingStatusReserved)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrNotEnoughPortions
			}
		} else {
			if err := tx.Model(&entities.FoodListing{}).
				Where("id = ? AND available_portions <= 0", reservation.ListingID).
				Update("status", domain.ListingStatusReserved).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(reservation).Error; err != nil {
			return err
		}

		opening.ReservationID = reservation.ID
		return tx.Create(opening).Error
	})
}

func (r *reservationRepository) GetReservationByID(ctx context.Context, id string) (*entities.Reservation, error) {
	var reservation entities.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Listing").
		Where("id = ?", id).
		First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) GetUserReservations(ctx context.Context, userID string, asProvider bool, status string, page, limit int) ([]*entities.Reservation, int64, error) {
	var reservations []*entities.Reservation
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx)
	if asProvider {
		query = query.Where("provider_id = ?", userID)
	} else {
		query = query.Where("reserved_by = ?", userID)
	}

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.Reservation{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, count, nil
}

func (r *reservationRepository) UpdateReservationStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *reservationRepository) CancelReservation(ctx context.Context, reservation *entities.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The flip is guarded the same way the reserve decrement is: a second
		// cancel racing past the service-level status check must not restore
		// the portions twice.
		res := tx.Model(&entities.Reservation{}).
			Where("id = ? AND status IN ?", reservation.ID,
				[]string{domain.ReservationStatusPending, domain.ReservationStatusConfirmed}).
			Update("status", domain.ReservationStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidReservationTransition
		}

		if err := tx.Model(&entities.FoodListing{}).
			Where("id = ? AND available_portions IS NOT NULL", reservation.ListingID).
			UpdateColumn("available_portions", gorm.Expr("available_portions + ?", reservation.PortionsReserved)).Error; err != nil {
			return err
		}

		// Reopen the listing unless the owner already closed it out.
		return tx.Model(&entities.FoodListing{}).
			Where("id = ? AND status = ?", reservation.ListingID, domain.ListingStatusReserved).
			Update("status", domain.ListingStatusAvailable).Error
	})
}

func (r *reservationRepository) GetReservationStatistics(ctx context.Context, userID string) (map[string]interface{}, error) {
	countMine := func(status string) (int64, error) {
		var count int64
		query := r.db.WithContext(ctx).
			Model(&entities.Reservation{}).
			Where("reserved_by = ?", userID)
		if status != "" {
			query = query.Where("status = ?", status)
		}
		err := query.Count(&count).Error
		return count, err
	}

	pending, err := countMine(domain.ReservationStatusPending)
	if err != nil {
		return nil, err
	}
	confirmed, err := countMine(domain.ReservationStatusConfirmed)
	if err != nil {
		return nil, err
	}
	completed, err := countMine(domain.ReservationStatusCompleted)
	if err != nil {
		return nil, err
	}
	total, err := countMine("")
	if err != nil {
		return nil, err
	}

	// Pending requests on the user's own listings.
	var incomingPending int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Reservation{}).
		Where("provider_id = ? AND status = ?", userID, domain.ReservationStatusPending).
		Count(&incomingPending).Error; err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"pending_reservations":   pending,
		"confirmed_reservations": confirmed,
		"completed_reservations": completed,
		"total_reservations":     total,
		"incoming_pending":       incomingPending,
	}, nil
}
