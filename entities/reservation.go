package entities

import (
	"github.com/google/uuid"
	"time"
)

type Reservation struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ListingID        uuid.UUID `json:"listing_id"`
	ListingTitle     string    `json:"listing_title"`
	ListingImage     string    `json:"listing_image,omitempty"`
	ListingAddress   string    `json:"listing_address"`
	ReservedBy       uuid.UUID `json:"reserved_by"`
	ReservedByName   string    `json:"reserved_by_name"`
	ProviderID       uuid.UUID `json:"provider_id"`
	ProviderName     string    `json:"provider_name"`
	PortionsReserved int       `json:"portions_reserved"`
	ReservationDate  time.Time `json:"reservation_date"`
	PickupAddress    string    `json:"pickup_address"`
	ExpirationDate   time.Time `json:"expiration_date"`
	Category         string    `json:"category"`
	Status           string    `json:"status"` // pending, confirmed, completed, cancelled

	Listing  *FoodListing `gorm:"foreignKey:ListingID"`
	Reserver *User        `gorm:"foreignKey:ReservedBy"`
	Provider *User        `gorm:"foreignKey:ProviderID"`
	Messages []*Message   `gorm:"foreignKey:ReservationID"`
	Timestamp
}
