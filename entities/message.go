package entities

import (
	"github.com/google/uuid"
)

type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	SenderID      uuid.UUID `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	ReceiverID    uuid.UUID `json:"receiver_id"`
	ReceiverName  string    `json:"receiver_name"`
	Content       string    `gorm:"type:text" json:"content"`
	IsRead        bool      `json:"is_read"`

	Reservation *Reservation `gorm:"foreignKey:ReservationID"`
	Sender      *User        `gorm:"foreignKey:SenderID"`
	Timestamp
}
