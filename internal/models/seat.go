package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusReserved  SeatStatus = "RESERVED"
	SeatStatusSold      SeatStatus = "SOLD"
	SeatStatusBlocked   SeatStatus = "BLOCKED"
	SeatStatusCheckedIn SeatStatus = "CHECKED_IN"
)

const SeatTypeRegular = "REGULAR"

type Seat struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EventID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"eventId"`
	ZoneID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"zoneId"`
	RowLabel   string     `gorm:"not null" json:"rowLabel"`
	ColLabel   string     `gorm:"not null" json:"colLabel"`
	Status     SeatStatus `gorm:"not null;default:'AVAILABLE'" json:"status"`
	Type       string     `gorm:"not null;default:'REGULAR'" json:"type"`
	Price      *float64   `json:"price"`
	X          *int       `json:"x"`
	Y          *int       `json:"y"`
	HolderName *string    `json:"holderName"`
	TicketCode *string    `json:"ticketCode"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (seat *Seat) BeforeCreate(tx *gorm.DB) (err error) {
	if seat.ID == uuid.Nil {
		seat.ID = uuid.New()
	}
	return
}

// Label is the human-facing seat name, e.g. "A1".
func (seat *Seat) Label() string {
	return seat.RowLabel + seat.ColLabel
}

func ValidSeatStatus(status SeatStatus) bool {
	switch status {
	case SeatStatusAvailable, SeatStatusReserved, SeatStatusSold, SeatStatusBlocked, SeatStatusCheckedIn:
		return true
	}
	return false
}
