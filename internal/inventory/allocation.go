package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boxoffice/boxoffice/internal/log"
	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Purchase converts the cart into tickets in a single transaction. Either
// every item becomes a ticket, with seat items moving their seat to SOLD, or
// nothing is persisted. Items are allocated in submission order and the first
// failing item determines the returned error.
func (e *Engine) Purchase(ctx context.Context, eventID uuid.UUID, items []CartItem, customer Customer) ([]models.Ticket, error) {
	lines, err := parseCart(items)
	if err != nil {
		return nil, err
	}

	if e.purchaseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.purchaseTimeout)
		defer cancel()
	}

	var tickets []models.Ticket
	err = e.transaction(ctx, func(tx *gorm.DB) error {
		event, err := loadEvent(forShare(tx), eventID)
		if err != nil {
			return err
		}
		if !event.AcceptsSales() {
			return ErrEventClosed
		}

		zones, err := checkCapacity(tx, eventID, generalDemand(lines), true)
		if err != nil {
			return err
		}

		a := allocator{
			tx:          tx,
			issuer:      e.issuer,
			event:       event,
			customer:    customer,
			zones:       zones,
			purchasedAt: e.clock.Now(),
		}
		tickets = make([]models.Ticket, 0, len(lines))
		for _, line := range lines {
			ticket, err := a.allocate(line)
			if err != nil {
				return err
			}
			tickets = append(tickets, *ticket)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ticketIDs := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		ticketIDs = append(ticketIDs, ticket.ID.String())
	}
	log.FromContext(ctx).WithFields(logrus.Fields{
		"event_id":   eventID,
		"ticket_ids": ticketIDs,
	}).Info("Tickets allocated")

	return tickets, nil
}

// allocator carries the per-purchase state shared by every cart line.
type allocator struct {
	tx          *gorm.DB
	issuer      *Issuer
	event       *models.Event
	customer    Customer
	zones       map[uuid.UUID]*models.Zone
	purchasedAt time.Time
}

func (a *allocator) allocate(line cartLine) (*models.Ticket, error) {
	switch line.kind {
	case ItemTypeSeat:
		return a.allocateSeat(line)
	case ItemTypeGeneral:
		return a.allocateGeneral(line)
	}
	return nil, validationErrorf("unknown item type %q", line.kind)
}

func (a *allocator) allocateGeneral(line cartLine) (*models.Ticket, error) {
	zone, ok := a.zones[line.zoneID]
	if !ok {
		return nil, &NotFoundError{Kind: "Zone", ID: line.zoneID.String()}
	}

	ticket := a.newTicket(zone, line.price)
	if err := a.issuer.Issue(a.tx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (a *allocator) allocateSeat(line cartLine) (*models.Ticket, error) {
	var seat models.Seat
	err := forUpdate(a.tx).
		Where("id = ? AND event_id = ?", line.seatID, a.event.ID).
		First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, seatNotFound(line.seatID.String())
		}
		return nil, fmt.Errorf("load seat: %w", err)
	}
	if seat.Status != models.SeatStatusAvailable {
		return nil, seatUnavailable(seat.Label())
	}

	zone, err := a.zone(seat.ZoneID)
	if err != nil {
		return nil, err
	}

	ticket := a.newTicket(zone, line.price)
	ticket.SeatID = &seat.ID
	ticket.SeatLabel = seat.Label()
	if err := a.issuer.Issue(a.tx, ticket); err != nil {
		return nil, err
	}

	res := a.tx.Model(&models.Seat{}).
		Where("id = ? AND status = ?", seat.ID, models.SeatStatusAvailable).
		Updates(map[string]any{
			"status":      models.SeatStatusSold,
			"holder_name": a.customer.FullName,
			"ticket_code": ticket.QRCode,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("mark seat sold: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, seatUnavailable(seat.Label())
	}
	return ticket, nil
}

// zone resolves a seat's zone, caching it for later lines of the same cart.
func (a *allocator) zone(id uuid.UUID) (*models.Zone, error) {
	if zone, ok := a.zones[id]; ok {
		return zone, nil
	}
	var zone models.Zone
	if err := a.tx.Where("id = ?", id).First(&zone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: "Zone", ID: id.String()}
		}
		return nil, fmt.Errorf("load zone: %w", err)
	}
	a.zones[id] = &zone
	return &zone, nil
}

func (a *allocator) newTicket(zone *models.Zone, price float64) *models.Ticket {
	return &models.Ticket{
		EventID:       a.event.ID,
		ZoneID:        zone.ID,
		ZoneName:      zone.Name,
		CustomerName:  a.customer.FullName,
		CustomerEmail: a.customer.Email,
		Price:         price,
		Status:        models.TicketStatusValid,
		PurchaseDate:  a.purchasedAt,
	}
}
