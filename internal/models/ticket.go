package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusValid     TicketStatus = "VALID"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// Ticket references its zone and seat by id only. Zone name and seat label
// are copied at purchase time so the ticket stays readable after a layout
// replacement.
type Ticket struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	EventID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"eventId"`
	ZoneID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"zoneId"`
	SeatID        *uuid.UUID   `gorm:"type:uuid;index" json:"seatId"`
	ZoneName      string       `json:"zoneName"`
	SeatLabel     string       `json:"seatLabel,omitempty"`
	CustomerName  string       `json:"customerName"`
	CustomerEmail string       `json:"customerEmail"`
	Price         float64      `gorm:"not null" json:"price"`
	Status        TicketStatus `gorm:"not null;default:'VALID';index" json:"status"`
	QRCode        string       `gorm:"not null;uniqueIndex" json:"qrCode"`
	PurchaseDate  time.Time    `gorm:"not null;index" json:"purchaseDate"`
	CancelledAt   *time.Time   `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}

// Admission records a ticket being scanned at the door.
type Admission struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TicketID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"ticketId"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"eventId"`
	ScannedAt time.Time `gorm:"not null" json:"scannedAt"`
}

func (admission *Admission) BeforeCreate(tx *gorm.DB) (err error) {
	if admission.ID == uuid.Nil {
		admission.ID = uuid.New()
	}
	return
}
