package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ZoneType string

const (
	ZoneTypeSale             ZoneType = "SALE"
	ZoneTypeGeneralAdmission ZoneType = "GENERAL_ADMISSION"
	ZoneTypeInfo             ZoneType = "INFO"
	ZoneTypeStage            ZoneType = "STAGE"
)

const (
	NumberingLTR = "LTR"
	NumberingRTL = "RTL"
)

// ZonePosition is display metadata for the seat-map renderer.
type ZonePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Zone struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	EventID            uuid.UUID    `gorm:"type:uuid;not null;index" json:"eventId"`
	Name               string       `gorm:"not null" json:"name"`
	Color              string       `json:"color"`
	Price              float64      `gorm:"not null" json:"price"`
	Type               ZoneType     `gorm:"not null;default:'SALE'" json:"type"`
	Capacity           int          `gorm:"not null" json:"capacity"`
	Rows               int          `gorm:"not null" json:"rows"`
	Cols               int          `gorm:"not null" json:"cols"`
	Layout             ZonePosition `gorm:"embedded;embeddedPrefix:layout_" json:"layout"`
	SeatGap            int          `gorm:"not null" json:"seatGap"`
	StartNumber        int          `gorm:"not null" json:"startNumber"`
	NumberingDirection string       `gorm:"not null;default:'LTR'" json:"numberingDirection"`
	SortOrder          int          `gorm:"not null" json:"-"`
	Seats              []Seat       `json:"seats,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func (zone *Zone) BeforeCreate(tx *gorm.DB) (err error) {
	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}
	return
}

// HasCapacityLimit reports whether the zone carries an explicit capacity.
// A zero capacity means unset.
func (zone *Zone) HasCapacityLimit() bool {
	return zone.Capacity > 0
}

// EffectiveCapacity is the explicit capacity, falling back to the seat grid
// size for seated zones.
func (zone *Zone) EffectiveCapacity() int {
	if zone.Capacity > 0 {
		return zone.Capacity
	}
	if zone.Rows > 0 && zone.Cols > 0 {
		return zone.Rows * zone.Cols
	}
	return 0
}
