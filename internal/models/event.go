package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusEnded     EventStatus = "ENDED"
)

type Event struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OrganizerID uuid.UUID   `gorm:"type:uuid;not null;index" json:"organizerId"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	StartDate   time.Time   `gorm:"not null" json:"startDate"`
	EndDate     time.Time   `gorm:"not null" json:"endDate"`
	Status      EventStatus `gorm:"not null;default:'DRAFT'" json:"status"`
	Categories  []Category  `gorm:"many2many:event_categories;" json:"categories"`
	Zones       []Zone      `json:"zones,omitempty"`
	Seats       []Seat      `json:"seats,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Status == "" {
		event.Status = EventStatusDraft
	}
	return
}

// AcceptsSales reports whether tickets may still be allocated for the event.
func (event *Event) AcceptsSales() bool {
	return event.Status != EventStatusCancelled && event.Status != EventStatusEnded
}

func ValidEventStatus(status EventStatus) bool {
	switch status {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusEnded:
		return true
	}
	return false
}
