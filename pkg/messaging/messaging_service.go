package messaging

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/entities"
	"FoodShare-Backend/pkg/reservation"
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MessagingService interface {
		GetThreads(ctx context.Context, userID string) ([]*domain.Thread, error)
		GetThreadMessages(ctx context.Context, reservationID string, userID string, page, limit int) ([]*domain.Message, int64, error)
		SendMessage(ctx context.Context, req domain.SendMessageRequest, userID string) (*domain.Message, error)
		MarkThreadRead(ctx context.Context, reservationID string, userID string) error
	}

	messagingService struct {
		messagingRepository   MessagingRepository
		reservationRepository reservation.ReservationRepository
	}
)

func NewMessagingService(messagingRepository MessagingRepository, reservationRepository reservation.ReservationRepository) MessagingService {
	return &messagingService{
		messagingRepository:   messagingRepository,
		reservationRepository: reservationRepository,
	}
}

func (s *messagingService) GetThreads(ctx context.Context, userID string) ([]*domain.Thread, error) {
	reservations, err := s.messagingRepository.GetUserThreadReservations(ctx, userID)
	if err != nil {
		return nil, err
	}

	threads := make([]*domain.Thread, 0, len(reservations))
	for _, res := range reservations {
		thread := &domain.Thread{
			ReservationID: res.ID.String(),
			ListingTitle:  res.ListingTitle,
			ListingImage:  res.ListingImage,
			Status:        res.Status,
		}

		if res.ReservedBy.String() == userID {
			thread.OtherPartyID = res.ProviderID.String()
			thread.OtherPartyName = res.ProviderName
		} else {
			thread.OtherPartyID = res.ReservedBy.String()
			thread.OtherPartyName = res.ReservedByName
		}

		last, err := s.messagingRepository.GetLastMessage(ctx, res.ID.String())
		if err != nil {
			return nil, err
		}
		if last != nil {
			thread.LastMessage = mapMessage(last)
			lastActivity := last.CreatedAt
			thread.LastActivity = &lastActivity
		}

		unread, err := s.messagingRepository.GetUnreadCount(ctx, res.ID.String(), userID)
		if err != nil {
			return nil, err
		}
		thread.UnreadCount = unread

		threads = append(threads, thread)
	}

	// Most recently active conversations first; threads with no messages yet
	// keep their reservation order at the end.
	sort.SliceStable(threads, func(i, j int) bool {
		if threads[i].LastActivity == nil {
			return false
		}
		if threads[j].LastActivity == nil {
			return true
		}
		return threads[i].LastActivity.After(*threads[j].LastActivity)
	})

	return threads, nil
}

func (s *messagingService) GetThreadMessages(ctx context.Context, reservationID string, userID string, page, limit int) ([]*domain.Message, int64, error) {
	if _, err := s.participantReservation(ctx, reservationID, userID); err != nil {
		return nil, 0, err
	}

	messages, count, err := s.messagingRepository.GetMessages(ctx, reservationID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Message, 0, len(messages))
	for _, message := range messages {
		result = append(result, mapMessage(message))
	}

	return result, count, nil
}

func (s *messagingService) SendMessage(ctx context.Context, req domain.SendMessageRequest, userID string) (*domain.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, domain.ErrEmptyMessage
	}

	res, err := s.participantReservation(ctx, req.ReservationID, userID)
	if err != nil {
		return nil, err
	}

	senderUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	// The receiver is always the other party of the reservation.
	message := &entities.Message{
		ID:            uuid.New(),
		ReservationID: res.ID,
		SenderID:      senderUUID,
		Content:       req.Content,
		IsRead:        false,
	}
	if res.ReservedBy.String() == userID {
		message.SenderName = res.ReservedByName
		message.ReceiverID = res.ProviderID
		message.ReceiverName = res.ProviderName
	} else {
		message.SenderName = res.ProviderName
		message.ReceiverID = res.ReservedBy
		message.ReceiverName = res.ReservedByName
	}

	if err := s.messagingRepository.AddMessage(ctx, message); err != nil {
		return nil, err
	}

	return mapMessage(message), nil
}

func (s *messagingService) MarkThreadRead(ctx context.Context, reservationID string, userID string) error {
	if _, err := s.participantReservation(ctx, reservationID, userID); err != nil {
		return err
	}
	return s.messagingRepository.MarkMessagesAsRead(ctx, reservationID, userID)
}

func (s *messagingService) participantReservation(ctx context.Context, reservationID string, userID string) (*entities.Reservation, error) {
	res, err := s.reservationRepository.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	if res.ReservedBy.String() != userID && res.ProviderID.String() != userID {
		return nil, domain.ErrNotThreadParticipant
	}

	return res, nil
}

func mapMessage(message *entities.Message) *domain.Message {
	return &domain.Message{
		ID:            message.ID.String(),
		ReservationID: message.ReservationID.String(),
		SenderID:      message.SenderID.String(),
		SenderName:    message.SenderName,
		ReceiverID:    message.ReceiverID.String(),
		ReceiverName:  message.ReceiverName,
		Content:       message.Content,
		IsRead:        message.IsRead,
		Timestamp:     message.CreatedAt,
	}
}
