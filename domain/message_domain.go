package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetThreads     = "conversations retrieved successfully"
	MessageSuccessGetMessages    = "messages retrieved successfully"
	MessageSuccessSendMessage    = "message sent successfully"
	MessageSuccessMarkThreadRead = "messages marked as read"

	MessageFailedGetThreads     = "failed to retrieve conversations"
	MessageFailedGetMessages    = "failed to retrieve messages"
	MessageFailedSendMessage    = "failed to send message"
	MessageFailedMarkThreadRead = "failed to mark messages as read"

	ErrEmptyMessage         = errors.New("message content cannot be empty")
	ErrNotThreadParticipant = errors.New("user is not a participant of this conversation")
)

type (
	SendMessageRequest struct {
		ReservationID string `json:"reservation_id" validate:"required,uuid"`
		Content       string `json:"content" validate:"required"`
	}

	Message struct {
		ID            string    `json:"id"`
		ReservationID string    `json:"reservation_id"`
		SenderID      string    `json:"sender_id"`
		SenderName    string    `json:"sender_name"`
		ReceiverID    string    `json:"receiver_id"`
		ReceiverName  string    `json:"receiver_name"`
		Content       string    `json:"content"`
		IsRead        bool      `json:"is_read"`
		Timestamp     time.Time `json:"timestamp"`
	}

	// Thread is one conversation, derived from a reservation. Two users share
	// at most one thread per reservation, but may have several threads when
	// they transact on multiple listings.
	Thread struct {
		ReservationID  string     `json:"reservation_id"`
		ListingTitle   string     `json:"listing_title"`
		ListingImage   string     `json:"listing_image,omitempty"`
		Status         string     `json:"status"`
		OtherPartyID   string     `json:"other_party_id"`
		OtherPartyName string     `json:"other_party_name"`
		LastMessage    *Message   `json:"last_message,omitempty"`
		UnreadCount    int        `json:"unread_count"`
		LastActivity   *time.Time `json:"last_activity,omitempty"`
	}
)
