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

func TestValidate_IsIdempotent(t *testing.T) {
	engine, db := newEngine(t)
	ctx := context.Background()

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "GA-100", 2, 30)
	testutil.InsertTicket(t, db, zone, models.TicketStatusValid)

	items := []inventory.CartItem{generalItem(zone), generalItem(zone)}
	first := engine.Validate(ctx, event.ID, items)
	second := engine.Validate(ctx, event.ID, items)

	require.Error(t, first)
	assert.EqualError(t, first, "Zone GA-100: only 1 tickets remain (requested: 2)")
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, testutil.CountTickets(t, db, event.ID))

	assert.NoError(t, engine.Validate(ctx, event.ID, items[:1]))
	assert.NoError(t, engine.Validate(ctx, event.ID, items[:1]))
}

func TestValidate_GroupsDemandPerZone(t *testing.T) {
	engine, db := newEngine(t)

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	front := testutil.InsertZone(t, db, event.ID, "Front", 3, 50)
	back := testutil.InsertZone(t, db, event.ID, "Back", 1, 20)

	items := []inventory.CartItem{generalItem(front), generalItem(back), generalItem(front), generalItem(back)}
	err := engine.Validate(context.Background(), event.ID, items)

	var capErr *inventory.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "Back", capErr.ZoneName)
	assert.Equal(t, 1, capErr.Remaining)
	assert.Equal(t, 2, capErr.Requested)
}

func TestValidate_IgnoresSeatItems(t *testing.T) {
	engine, db := newEngine(t)

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "Orchestra", 1, 100)
	seats := testutil.InsertSeats(t, db, zone, []string{"A"}, 3)

	items := []inventory.CartItem{seatItem(seats[0], 100), seatItem(seats[1], 100), seatItem(seats[2], 100)}
	assert.NoError(t, engine.Validate(context.Background(), event.ID, items))
}

func TestValidate_UnlimitedZoneNeverFails(t *testing.T) {
	engine, db := newEngine(t)

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, event.ID, "Lawn", 0, 10)
	for i := 0; i < 3; i++ {
		testutil.InsertTicket(t, db, zone, models.TicketStatusValid)
	}

	assert.NoError(t, engine.Validate(context.Background(), event.ID, []inventory.CartItem{generalItem(zone)}))
}

func TestValidate_ZoneFromAnotherEvent(t *testing.T) {
	engine, db := newEngine(t)

	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	other := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)
	zone := testutil.InsertZone(t, db, other.ID, "GA", 10, 10)

	err := engine.Validate(context.Background(), event.ID, []inventory.CartItem{generalItem(zone)})

	var nfErr *inventory.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.EqualError(t, err, "Zone "+zone.ID.String()+" not found")
}

func TestValidate_UnknownEvent(t *testing.T) {
	engine, _ := newEngine(t)

	err := engine.Validate(context.Background(), uuid.New(), []inventory.CartItem{generalItem(&models.Zone{ID: uuid.New()})})
	assert.ErrorIs(t, err, inventory.ErrEventNotFound)
}

func TestValidate_EmptyCart(t *testing.T) {
	engine, db := newEngine(t)
	event := testutil.InsertEvent(t, db, uuid.New(), models.EventStatusPublished)

	err := engine.Validate(context.Background(), event.ID, nil)
	assert.EqualError(t, err, "No items in cart")
}
