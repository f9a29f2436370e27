package inventory

import (
	"fmt"

	"github.com/boxoffice/boxoffice/internal/clock"
	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"gorm.io/gorm"
)

const (
	maxCodeAttempts = 5
	issueSavepoint  = "issue_ticket"
)

// Issuer stamps tickets with admission codes. Codes are built from the event,
// zone, issuance time and a random suffix; the unique index on
// tickets.qr_code is what actually guarantees uniqueness.
type Issuer struct {
	clock  clock.Clock
	random func() string
}

func NewIssuer(c clock.Clock) *Issuer {
	return &Issuer{clock: c, random: shortuuid.New}
}

// NewIssuerWithSource is NewIssuer with a custom random component.
func NewIssuerWithSource(c clock.Clock, random func() string) *Issuer {
	return &Issuer{clock: c, random: random}
}

func (i *Issuer) IssueCode(eventID, zoneID uuid.UUID) string {
	return fmt.Sprintf("%s-%s-%d-%s", eventID, zoneID, i.clock.Now().UnixMilli(), i.random())
}

// Issue inserts ticket with a fresh code, regenerating the code when it
// collides with an existing one. Each attempt runs under a savepoint so a
// collision does not poison the surrounding transaction.
func (i *Issuer) Issue(tx *gorm.DB, ticket *models.Ticket) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		ticket.QRCode = i.IssueCode(ticket.EventID, ticket.ZoneID)

		if err := tx.SavePoint(issueSavepoint).Error; err != nil {
			return fmt.Errorf("savepoint: %w", err)
		}

		err := tx.Create(ticket).Error
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return fmt.Errorf("create ticket: %w", err)
		}

		if err := tx.RollbackTo(issueSavepoint).Error; err != nil {
			return fmt.Errorf("rollback to savepoint: %w", err)
		}
	}
	return ErrCodeExhausted
}
