package inventory

import (
	"context"
	"fmt"

	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/google/uuid"
)

const recentSalesLimit = 10

type ZoneStats struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	Revenue  float64   `json:"revenue"`
	Capacity int       `json:"capacity"`
}

type Stats struct {
	TotalRevenue  float64         `json:"totalRevenue"`
	TicketsSold   int             `json:"ticketsSold"`
	RevenueByZone []ZoneStats     `json:"revenueByZone"`
	RecentSales   []models.Ticket `json:"recentSales"`
}

// Stats derives sales figures from the event's non-cancelled tickets. Nothing
// is cached; every call reads current state.
func (e *Engine) Stats(ctx context.Context, eventID uuid.UUID) (*Stats, error) {
	db := e.db.WithContext(ctx)
	if _, err := loadEvent(db, eventID); err != nil {
		return nil, err
	}

	var tickets []models.Ticket
	err := db.Where("event_id = ? AND status <> ?", eventID, models.TicketStatusCancelled).
		Order("purchase_date DESC").
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	var zones []models.Zone
	if err := db.Where("event_id = ?", eventID).Order("sort_order").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	return aggregate(tickets, zones), nil
}

// aggregate expects tickets ordered most recent first.
func aggregate(tickets []models.Ticket, zones []models.Zone) *Stats {
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	stats := &Stats{
		TicketsSold:   len(tickets),
		RevenueByZone: make([]ZoneStats, 0, len(zones)),
		RecentSales:   tickets[:min(len(tickets), recentSalesLimit)],
	}

	byZone := make(map[uuid.UUID]*ZoneStats, len(zones))
	for _, zone := range zones {
		stats.RevenueByZone = append(stats.RevenueByZone, ZoneStats{
			ID:       zone.ID,
			Name:     zone.Name,
			Capacity: zone.EffectiveCapacity(),
		})
	}
	for i := range stats.RevenueByZone {
		byZone[stats.RevenueByZone[i].ID] = &stats.RevenueByZone[i]
	}

	for _, ticket := range tickets {
		stats.TotalRevenue += ticket.Price
		if zs, ok := byZone[ticket.ZoneID]; ok {
			zs.Count++
			zs.Revenue += ticket.Price
		}
	}
	return stats
}
