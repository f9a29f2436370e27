package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/boxoffice/boxoffice/internal/log"
	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultSeatGap     = 4
	defaultStartNumber = 1
	seatBatchSize      = 500
)

// LayoutNumber accepts a JSON number, a numeric string, or null. Empty and
// null values decode to zero.
type LayoutNumber float64

func (n *LayoutNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*n = LayoutNumber(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = LayoutNumber(f)
	return nil
}

func (n LayoutNumber) Float() float64 {
	return float64(n)
}

// Int truncates toward zero.
func (n LayoutNumber) Int() int {
	return int(math.Trunc(float64(n)))
}

// ZoneInput is a zone as sent by the seat designer. ID is the designer's own
// reference, used only to attach seats; the stored zone gets a fresh id.
type ZoneInput struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Color              string               `json:"color"`
	Price              LayoutNumber         `json:"price"`
	Rows               LayoutNumber         `json:"rows"`
	Cols               LayoutNumber         `json:"cols"`
	Capacity           LayoutNumber         `json:"capacity"`
	Type               models.ZoneType      `json:"type"`
	Layout             *models.ZonePosition `json:"layout"`
	SeatGap            *LayoutNumber        `json:"seatGap"`
	StartNumber        *LayoutNumber        `json:"startNumber"`
	NumberingDirection string               `json:"numberingDirection"`
}

type SeatInput struct {
	ZoneID   string            `json:"zoneId"`
	RowLabel string            `json:"rowLabel"`
	ColLabel string            `json:"colLabel"`
	Status   models.SeatStatus `json:"status"`
	Type     string            `json:"type"`
	Price    *LayoutNumber     `json:"price"`
	X        *LayoutNumber     `json:"x"`
	Y        *LayoutNumber     `json:"y"`
}

func (in ZoneInput) toModel(eventID uuid.UUID, order int) models.Zone {
	zone := models.Zone{
		EventID:            eventID,
		Name:               in.Name,
		Color:              in.Color,
		Price:              in.Price.Float(),
		Type:               in.Type,
		Capacity:           in.Capacity.Int(),
		Rows:               in.Rows.Int(),
		Cols:               in.Cols.Int(),
		SeatGap:            defaultSeatGap,
		StartNumber:        defaultStartNumber,
		NumberingDirection: in.NumberingDirection,
		SortOrder:          order,
	}
	if zone.Type == "" {
		zone.Type = models.ZoneTypeSale
	}
	if zone.NumberingDirection == "" {
		zone.NumberingDirection = models.NumberingLTR
	}
	if in.Layout != nil {
		zone.Layout = *in.Layout
	}
	if in.SeatGap != nil {
		zone.SeatGap = in.SeatGap.Int()
	}
	if in.StartNumber != nil {
		zone.StartNumber = in.StartNumber.Int()
	}
	return zone
}

func (in SeatInput) toModel(eventID, zoneID uuid.UUID) models.Seat {
	seat := models.Seat{
		EventID:  eventID,
		ZoneID:   zoneID,
		RowLabel: in.RowLabel,
		ColLabel: in.ColLabel,
		Status:   in.Status,
		Type:     in.Type,
	}
	if seat.Status == "" {
		seat.Status = models.SeatStatusAvailable
	}
	if seat.Type == "" {
		seat.Type = models.SeatTypeRegular
	}
	// A zero seat price means "inherit the zone price".
	if in.Price != nil && in.Price.Float() != 0 {
		price := in.Price.Float()
		seat.Price = &price
	}
	if in.X != nil {
		x := in.X.Int()
		seat.X = &x
	}
	if in.Y != nil {
		y := in.Y.Int()
		seat.Y = &y
	}
	return seat
}

func validateLayout(zones []ZoneInput, seats []SeatInput) error {
	for _, z := range zones {
		if z.NumberingDirection != "" && z.NumberingDirection != models.NumberingLTR && z.NumberingDirection != models.NumberingRTL {
			return validationErrorf("Zone %s: unknown numbering direction %q", z.Name, z.NumberingDirection)
		}
	}
	for idx, s := range seats {
		if s.Status != "" && !models.ValidSeatStatus(s.Status) {
			return validationErrorf("Seat %d: unknown status %q", idx+1, s.Status)
		}
	}
	return nil
}

// SetLayout replaces the event's zones and seats in one transaction. Seats are
// attached to the freshly created zone their ZoneID refers to; seats whose
// zone reference does not resolve are dropped. The event row is locked
// exclusively so a replacement never interleaves with a purchase.
func (e *Engine) SetLayout(ctx context.Context, eventID uuid.UUID, zones []ZoneInput, seats []SeatInput) (*models.Event, error) {
	if err := validateLayout(zones, seats); err != nil {
		return nil, err
	}

	var (
		event   *models.Event
		created int
		dropped int
	)
	err := e.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := loadEvent(forUpdate(tx), eventID); err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", eventID).Delete(&models.Seat{}).Error; err != nil {
			return fmt.Errorf("delete seats: %w", err)
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Zone{}).Error; err != nil {
			return fmt.Errorf("delete zones: %w", err)
		}

		zoneIDs := make(map[string]uuid.UUID, len(zones))
		for idx, in := range zones {
			zone := in.toModel(eventID, idx)
			if err := tx.Create(&zone).Error; err != nil {
				return fmt.Errorf("create zone %q: %w", in.Name, err)
			}
			if in.ID != "" {
				zoneIDs[in.ID] = zone.ID
			}
		}

		newSeats := make([]models.Seat, 0, len(seats))
		for _, in := range seats {
			zoneID, ok := zoneIDs[in.ZoneID]
			if !ok {
				dropped++
				continue
			}
			newSeats = append(newSeats, in.toModel(eventID, zoneID))
		}
		if len(newSeats) > 0 {
			if err := tx.CreateInBatches(&newSeats, seatBatchSize).Error; err != nil {
				return fmt.Errorf("create seats: %w", err)
			}
		}
		created = len(newSeats)

		var err error
		event, err = loadLayout(tx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"event_id":      eventID,
		"zones":         len(zones),
		"seats":         created,
		"dropped_seats": dropped,
	}).Info("Layout replaced")

	return event, nil
}

// Layout returns the event with its zones and seats.
func (e *Engine) Layout(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	return loadLayout(e.db.WithContext(ctx), eventID)
}

func loadLayout(tx *gorm.DB, eventID uuid.UUID) (*models.Event, error) {
	event, err := loadEvent(tx.Preload("Zones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Preload("Zones.Seats").Preload("Seats").Preload("Categories"), eventID)
	if err != nil {
		return nil, err
	}
	return event, nil
}
