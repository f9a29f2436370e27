package inventory

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemType string

const (
	ItemTypeSeat    ItemType = "seat"
	ItemTypeGeneral ItemType = "general"
)

// CartItem is one requested ticket. ID is the seat id for seat items and an
// opaque cart line id for general admission.
type CartItem struct {
	ID     string   `json:"id"`
	Type   ItemType `json:"type"`
	ZoneID string   `json:"zoneId"`
	Price  float64  `json:"price"`
}

type Customer struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type cartLine struct {
	kind   ItemType
	seatID uuid.UUID
	zoneID uuid.UUID
	price  float64
}

func parseCart(items []CartItem) ([]cartLine, error) {
	if len(items) == 0 {
		return nil, validationErrorf("No items in cart")
	}

	lines := make([]cartLine, 0, len(items))
	for idx, item := range items {
		if item.Price < 0 {
			return nil, validationErrorf("Item %d: price must not be negative", idx+1)
		}
		line := cartLine{kind: item.Type, price: item.Price}

		switch item.Type {
		case ItemTypeSeat:
			seatID, err := uuid.Parse(item.ID)
			if err != nil {
				return nil, validationErrorf("Item %d: invalid seat id %q", idx+1, item.ID)
			}
			line.seatID = seatID
		case ItemTypeGeneral:
			zoneID, err := uuid.Parse(item.ZoneID)
			if err != nil {
				return nil, validationErrorf("Item %d: invalid zone id %q", idx+1, item.ZoneID)
			}
			line.zoneID = zoneID
		default:
			return nil, validationErrorf("Item %d: unknown item type %q", idx+1, item.Type)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

type zoneDemand struct {
	zoneID    uuid.UUID
	requested int
}

// generalDemand sums general-admission requests per zone, ordered by zone id
// so locks are taken and errors reported in a stable order.
func generalDemand(lines []cartLine) []zoneDemand {
	counts := make(map[uuid.UUID]int)
	for _, line := range lines {
		if line.kind == ItemTypeGeneral {
			counts[line.zoneID]++
		}
	}

	demand := make([]zoneDemand, 0, len(counts))
	for zoneID, n := range counts {
		demand = append(demand, zoneDemand{zoneID: zoneID, requested: n})
	}
	sort.Slice(demand, func(i, j int) bool {
		return bytes.Compare(demand[i].zoneID[:], demand[j].zoneID[:]) < 0
	})
	return demand
}

// Validate checks the cart's general-admission demand against remaining zone
// capacity without mutating anything. Seat items are only checked during
// allocation.
func (e *Engine) Validate(ctx context.Context, eventID uuid.UUID, items []CartItem) error {
	lines, err := parseCart(items)
	if err != nil {
		return err
	}
	tx := e.db.WithContext(ctx)
	if _, err := loadEvent(tx, eventID); err != nil {
		return err
	}
	_, err = checkCapacity(tx, eventID, generalDemand(lines), false)
	return err
}

// checkCapacity loads each demanded zone and compares its current sold count
// plus demand with its capacity. With lock set, every zone row is locked
// before its tickets are counted so the count cannot go stale before commit.
func checkCapacity(tx *gorm.DB, eventID uuid.UUID, demand []zoneDemand, lock bool) (map[uuid.UUID]*models.Zone, error) {
	zones := make(map[uuid.UUID]*models.Zone, len(demand))

	for _, d := range demand {
		query := tx
		if lock {
			query = forUpdate(tx)
		}

		var zone models.Zone
		err := query.Where("id = ? AND event_id = ?", d.zoneID, eventID).Limit(1).Find(&zone).Error
		if err != nil {
			return nil, fmt.Errorf("load zone: %w", err)
		}
		if zone.ID == uuid.Nil {
			return nil, &NotFoundError{Kind: "Zone", ID: d.zoneID.String()}
		}
		zones[zone.ID] = &zone

		if !zone.HasCapacityLimit() {
			continue
		}

		sold, err := countActiveTickets(tx, zone.ID)
		if err != nil {
			return nil, err
		}
		if sold+d.requested > zone.Capacity {
			return nil, &CapacityError{
				ZoneID:    zone.ID.String(),
				ZoneName:  zone.Name,
				Remaining: max(zone.Capacity-sold, 0),
				Requested: d.requested,
			}
		}
	}
	return zones, nil
}

func countActiveTickets(tx *gorm.DB, zoneID uuid.UUID) (int, error) {
	var n int64
	err := tx.Model(&models.Ticket{}).
		Where("zone_id = ? AND status <> ?", zoneID, models.TicketStatusCancelled).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return int(n), nil
}
