// Package inventory owns event seating inventory: layout replacement,
// capacity validation, atomic ticket allocation, code issuance, ticket
// lifecycle and sales statistics.
package inventory

import (
	"time"

	"github.com/boxoffice/boxoffice/internal/clock"
	"gorm.io/gorm"
)

type Engine struct {
	db              *gorm.DB
	clock           clock.Clock
	issuer          *Issuer
	purchaseTimeout time.Duration
}

type Option func(*Engine)

func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithIssuer replaces the default ticket code issuer.
func WithIssuer(issuer *Issuer) Option {
	return func(e *Engine) {
		e.issuer = issuer
	}
}

// WithPurchaseTimeout bounds how long a purchase transaction may run before
// it is rolled back. Zero disables the bound.
func WithPurchaseTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.purchaseTimeout = d
		}
	}
}

func New(db *gorm.DB, opts ...Option) *Engine {
	e := &Engine{
		db:    db,
		clock: clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.issuer == nil {
		e.issuer = NewIssuer(e.clock)
	}
	return e
}
