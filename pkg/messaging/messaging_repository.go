package messaging

import (
	"FoodShare-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	MessagingRepository interface {
		AddMessage(ctx context.Context, message *entities.Message) error
		GetMessages(ctx context.Context, reservationID string, page, limit int) ([]*entities.Message, int64, error)
		GetLastMessage(ctx context.Context, reservationID string) (*entities.Message, error)
		GetUnreadCount(ctx context.Context, reservationID string, userID string) (int, error)
		MarkMessagesAsRead(ctx context.Context, reservationID string, userID string) error
		GetUserThreadReservations(ctx context.Context, userID string) ([]*entities.Reservation, error)
	}

	messagingRepository struct {
		db *gorm.DB
	}
)

func NewMessagingRepository(db *gorm.DB) MessagingRepository {
	return &messagingRepository{db: db}
}

func (r *messagingRepository) AddMessage(ctx context.Context, message *entities.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messagingRepository) GetMessages(ctx context.Context, reservationID string, page, limit int) ([]*entities.Message, int64, error) {
	var messages []*entities.Message
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("reservation_id = ?", reservationID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	// The id tiebreak keeps equal-timestamp messages in a stable order
	// across reads.
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, count, nil
}

func (r *messagingRepository) GetLastMessage(ctx context.Context, reservationID string) (*entities.Message, error) {
	var message entities.Message
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC, id DESC").
		First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messagingRepository) GetUnreadCount(ctx context.Context, reservationID string, userID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("reservation_id = ? AND sender_id != ? AND is_read = ?", reservationID, userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *messagingRepository) MarkMessagesAsRead(ctx context.Context, reservationID string, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("reservation_id = ? AND sender_id != ? AND is_read = ?", reservationID, userID, false).
		Update("is_read", true).Error
}

// GetUserThreadReservations lists the reservations the user takes part in,
// either side of the table. Each one is a conversation.
func (r *messagingRepository) GetUserThreadReservations(ctx context.Context, userID string) ([]*entities.Reservation, error) {
	var reservations []*entities.Reservation
	if err := r.db.WithContext(ctx).
		Where("reserved_by = ? OR provider_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
