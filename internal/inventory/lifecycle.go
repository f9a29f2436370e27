package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/boxoffice/boxoffice/internal/log"
	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TicketByCode looks up a ticket by its admission code.
func (e *Engine) TicketByCode(ctx context.Context, code string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := e.db.WithContext(ctx).Where("qr_code = ?", code).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("load ticket: %w", err)
	}
	return &ticket, nil
}

// CancelTicket invalidates a ticket. A SOLD seat still stamped with the
// ticket's code goes back on sale; a CHECKED_IN seat stays occupied.
func (e *Engine) CancelTicket(ctx context.Context, eventID, ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := e.transaction(ctx, func(tx *gorm.DB) error {
		err := forUpdate(tx).Where("id = ? AND event_id = ?", ticketID, eventID).First(&ticket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("load ticket: %w", err)
		}
		if ticket.Status == models.TicketStatusCancelled {
			return ErrTicketCancelled
		}

		now := e.clock.Now()
		res := tx.Model(&models.Ticket{}).
			Where("id = ? AND status = ?", ticket.ID, models.TicketStatusValid).
			Updates(map[string]any{"status": models.TicketStatusCancelled, "cancelled_at": now})
		if res.Error != nil {
			return fmt.Errorf("cancel ticket: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTicketCancelled
		}
		ticket.Status = models.TicketStatusCancelled
		ticket.CancelledAt = &now

		if ticket.SeatID == nil {
			return nil
		}
		err = tx.Model(&models.Seat{}).
			Where("id = ? AND ticket_code = ? AND status = ?", *ticket.SeatID, ticket.QRCode, models.SeatStatusSold).
			Updates(map[string]any{
				"status":      models.SeatStatusAvailable,
				"holder_name": nil,
				"ticket_code": nil,
			}).Error
		if err != nil {
			return fmt.Errorf("release seat: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"event_id":  eventID,
		"ticket_id": ticketID,
	}).Info("Ticket cancelled")

	return &ticket, nil
}

// CheckIn admits the holder of a valid ticket. Each ticket is admitted once;
// a seated ticket moves its seat to CHECKED_IN.
func (e *Engine) CheckIn(ctx context.Context, eventID uuid.UUID, code string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := e.transaction(ctx, func(tx *gorm.DB) error {
		err := forShare(tx).Where("qr_code = ? AND event_id = ?", code, eventID).First(&ticket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("load ticket: %w", err)
		}
		if ticket.Status != models.TicketStatusValid {
			return ErrTicketCancelled
		}

		admission := models.Admission{
			TicketID:  ticket.ID,
			EventID:   eventID,
			ScannedAt: e.clock.Now(),
		}
		if err := tx.Create(&admission).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyCheckedIn
			}
			return fmt.Errorf("record admission: %w", err)
		}

		if ticket.SeatID == nil {
			return nil
		}
		err = tx.Model(&models.Seat{}).
			Where("id = ? AND status = ?", *ticket.SeatID, models.SeatStatusSold).
			Update("status", models.SeatStatusCheckedIn).Error
		if err != nil {
			return fmt.Errorf("check in seat: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"event_id":  eventID,
		"ticket_id": ticket.ID,
	}).Info("Ticket checked in")

	return &ticket, nil
}
