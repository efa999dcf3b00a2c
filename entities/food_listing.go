package entities

import (
	"github.com/google/uuid"
	"time"
)

type FoodListing struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	UserName          string    `json:"user_name"`
	Title             string    `json:"title"`
	Description       string    `gorm:"type:text" json:"description"`
	Category          string    `json:"category"`
	Quantity          string    `json:"quantity"` // display string, e.g. "3 kg aprox"
	TotalPortions     *int      `json:"total_portions,omitempty"`
	AvailablePortions *int      `json:"available_portions,omitempty"`
	ExpirationDate    time.Time `json:"expiration_date"`
	Address           string    `json:"address"`
	Latitude          *float64  `json:"latitude,omitempty"`
	Longitude         *float64  `json:"longitude,omitempty"`
	ImageURL          string    `json:"image_url,omitempty"`
	DietaryTags       string    `gorm:"type:text" json:"dietary_tags,omitempty"` // comma separated
	Status            string    `json:"status"`                                  // available, reserved, completed

	User         *User          `gorm:"foreignKey:UserID"`
	Reservations []*Reservation `gorm:"foreignKey:ListingID"`
	Timestamp
}
