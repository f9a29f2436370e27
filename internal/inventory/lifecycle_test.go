package inventory_test

import (
	"context"
	"testing"

	"github.com/boxoffice/boxoffice/internal/inventory"
	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/boxoffice/boxoffice/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelTicket_ReleasesSeat(t *testing.T) {
	engine, db := newEngine(t)
	ctx := context.Background()

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "Orchestra", 0, 80)
	seat := testutil.InsertSeats(t, db, zone, []string{"A"}, 1)[0]

	tickets, err := engine.Purchase(ctx, event.ID, []inventory.CartItem{seatItem(seat, 80)}, buyer)
	require.NoError(t, err)

	cancelled, err := engine.CancelTicket(ctx, event.ID, tickets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.True(t, purchaseTime.Equal(*cancelled.CancelledAt))

	released := reloadSeat(t, db, seat.ID)
	assert.Equal(t, models.SeatStatusAvailable, released.Status)
	assert.Nil(t, released.HolderName)
	assert.Nil(t, released.TicketCode)

	resold, err := engine.Purchase(ctx, event.ID, []inventory.CartItem{seatItem(seat, 80)}, buyer)
	require.NoError(t, err)
	assert.NotEqual(t, tickets[0].QRCode, resold[0].QRCode)

	_, err = engine.CancelTicket(ctx, event.ID, tickets[0].ID)
	assert.ErrorIs(t, err, inventory.ErrTicketCancelled)
	assert.Equal(t, models.SeatStatusSold, reloadSeat(t, db, seat.ID).Status)
}

func TestCancelTicket_AfterCheckInKeepsSeatOccupied(t *testing.T) {
	engine, db := newEngine(t)
	ctx := context.Background()

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "Orchestra", 0, 80)
	seat := testutil.InsertSeats(t, db, zone, []string{"A"}, 1)[0]

	tickets, err := engine.Purchase(ctx, event.ID, []inventory.CartItem{seatItem(seat, 80)}, buyer)
	require.NoError(t, err)
	_, err = engine.CheckIn(ctx, event.ID, tickets[0].QRCode)
	require.NoError(t, err)

	_, err = engine.CancelTicket(ctx, event.ID, tickets[0].ID)
	require.NoError(t, err)

	occupied := reloadSeat(t, db, seat.ID)
	assert.Equal(t, models.SeatStatusCheckedIn, occupied.Status)
	require.NotNil(t, occupied.TicketCode)
	assert.Equal(t, tickets[0].QRCode, *occupied.TicketCode)

	_, err = engine.Purchase(ctx, event.ID, []inventory.CartItem{seatItem(seat, 80)}, buyer)
	assert.EqualError(t, err, "Seat A1 is no longer available")
	assert.EqualValues(t, 1, testutil.CountTickets(t, db, event.ID))
}

func TestCancelTicket_FreesCapacity(t *testing.T) {
	engine, db := newEngine(t)
	ctx := context.Background()

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "GA", 1, 20)

	tickets, err := engine.Purchase(ctx, event.ID, []inventory.CartItem{generalItem(zone)}, buyer)
	require.NoError(t, err)
	require.Error(t, engine.Validate(ctx, event.ID, []inventory.CartItem{generalItem(zone)}))

	_, err = engine.CancelTicket(ctx, event.ID, tickets[0].ID)
	require.NoError(t, err)
	assert.NoError(t, engine.Validate(ctx, event.ID, []inventory.CartItem{generalItem(zone)}))
}

func TestCancelTicket_WrongEvent(t *testing.T) {
	engine, db := newEngine(t)

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "GA", 0, 20)
	ticket := testutil.InsertTicket(t, db, zone, models.TicketStatusValid)

	_, err := engine.CancelTicket(context.Background(), uuid.New(), ticket.ID)
	assert.ErrorIs(t, err, inventory.ErrTicketNotFound)
}

func TestCheckIn(t *testing.T) {
	engine, db := newEngine(t)
	ctx := context.Background()

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "Orchestra", 0, 80)
	seat := testutil.InsertSeats(t, db, zone, []string{"D"}, 1)[0]

	tickets, err := engine.Purchase(ctx, event.ID, []inventory.CartItem{seatItem(seat, 80)}, buyer)
	require.NoError(t, err)
	code := tickets[0].QRCode

	admitted, err := engine.CheckIn(ctx, event.ID, code)
	require.NoError(t, err)
	assert.Equal(t, tickets[0].ID, admitted.ID)
	assert.Equal(t, models.SeatStatusCheckedIn, reloadSeat(t, db, seat.ID).Status)

	var admission models.Admission
	require.NoError(t, db.Where("ticket_id = ?", admitted.ID).First(&admission).Error)
	assert.True(t, purchaseTime.Equal(admission.ScannedAt))

	_, err = engine.CheckIn(ctx, event.ID, code)
	assert.ErrorIs(t, err, inventory.ErrAlreadyCheckedIn)
}

func TestCheckIn_Rejections(t *testing.T) {
	engine, db := newEngine(t)
	ctx := context.Background()

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "GA", 0, 20)
	cancelled := testutil.InsertTicket(t, db, zone, models.TicketStatusCancelled)
	valid := testutil.InsertTicket(t, db, zone, models.TicketStatusValid)

	_, err := engine.CheckIn(ctx, event.ID, cancelled.QRCode)
	assert.ErrorIs(t, err, inventory.ErrTicketCancelled)

	_, err = engine.CheckIn(ctx, event.ID, "no-such-code")
	assert.ErrorIs(t, err, inventory.ErrTicketNotFound)

	_, err = engine.CheckIn(ctx, uuid.New(), valid.QRCode)
	assert.ErrorIs(t, err, inventory.ErrTicketNotFound)
}
