package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound    = errors.New("Event not found")
	ErrEventClosed      = errors.New("Event is not accepting sales")
	ErrTicketNotFound   = errors.New("Ticket not found")
	ErrTicketCancelled  = errors.New("Ticket has been cancelled")
	ErrAlreadyCheckedIn = errors.New("Ticket already checked in")
	ErrCodeExhausted    = errors.New("could not issue a unique ticket code")
)

// ValidationError rejects a malformed request before any storage access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names a zone referenced by the cart that does not belong to
// the event.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

type AllocationCode string

const (
	CodeSeatNotFound    AllocationCode = "SEAT_NOT_FOUND"
	CodeSeatUnavailable AllocationCode = "SEAT_UNAVAILABLE"
)

// AllocationError reports the first cart item that could not be allocated.
type AllocationError struct {
	Code    AllocationCode
	Message string
}

func (e *AllocationError) Error() string {
	return e.Message
}

func seatNotFound(id string) error {
	return &AllocationError{Code: CodeSeatNotFound, Message: fmt.Sprintf("Seat %s not found", id)}
}

func seatUnavailable(label string) error {
	return &AllocationError{Code: CodeSeatUnavailable, Message: fmt.Sprintf("Seat %s is no longer available", label)}
}

// CapacityError reports a general-admission zone oversubscribed by a cart.
type CapacityError struct {
	ZoneID    string
	ZoneName  string
	Remaining int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Zone %s: only %d tickets remain (requested: %d)", e.ZoneName, e.Remaining, e.Requested)
}
