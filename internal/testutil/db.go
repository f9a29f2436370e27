package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/boxoffice/boxoffice/config"
	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated database. It is a throwaway SQLite file by
// default; TEST_DB_DRIVER=postgres runs against the DB_* settings instead and
// empties the tables first, skipping the test if Postgres is unreachable.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("TEST_DB_DRIVER") == config.DriverPostgres {
		return newPostgresDB(t)
	}

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := config.InitDatabase(cfg)
	require.NoError(t, err)
	closeOnCleanup(t, db)
	return db
}

func newPostgresDB(t *testing.T) *gorm.DB {
	cfg := &config.Config{
		DBDriver:   config.DriverPostgres,
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}
	db, err := config.InitDatabase(cfg)
	if err != nil {
		t.Skipf("skipping Postgres tests: %v", err)
	}
	closeOnCleanup(t, db)

	err = db.Exec("TRUNCATE admissions, tickets, seats, zones, event_categories, categories, events CASCADE").Error
	require.NoError(t, err)
	return db
}

func closeOnCleanup(t *testing.T, db *gorm.DB) {
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
}

func InsertEvent(t *testing.T, db *gorm.DB, organizerID uuid.UUID, status models.EventStatus) *models.Event {
	t.Helper()
	start := time.Date(2030, time.June, 1, 20, 0, 0, 0, time.UTC)
	event := &models.Event{
		OrganizerID: organizerID,
		Title:       "Test Event",
		Location:    "Main Hall",
		StartDate:   start,
		EndDate:     start.Add(3 * time.Hour),
		Status:      status,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

// InsertZone appends a zone to the event's layout. A zero capacity leaves
// the zone unlimited.
func InsertZone(t *testing.T, db *gorm.DB, eventID uuid.UUID, name string, capacity int, price float64) *models.Zone {
	t.Helper()
	var existing int64
	require.NoError(t, db.Model(&models.Zone{}).Where("event_id = ?", eventID).Count(&existing).Error)

	zone := &models.Zone{
		EventID:            eventID,
		Name:               name,
		Price:              price,
		Type:               models.ZoneTypeSale,
		Capacity:           capacity,
		SeatGap:            4,
		StartNumber:        1,
		NumberingDirection: models.NumberingLTR,
		SortOrder:          int(existing),
	}
	require.NoError(t, db.Create(zone).Error)
	return zone
}

// InsertSeats creates an available seat for every row label and column
// 1..cols, in row-major order.
func InsertSeats(t *testing.T, db *gorm.DB, zone *models.Zone, rows []string, cols int) []models.Seat {
	t.Helper()
	seats := make([]models.Seat, 0, len(rows)*cols)
	for _, row := range rows {
		for col := 1; col <= cols; col++ {
			seats = append(seats, models.Seat{
				EventID:  zone.EventID,
				ZoneID:   zone.ID,
				RowLabel: row,
				ColLabel: fmt.Sprint(col),
				Status:   models.SeatStatusAvailable,
				Type:     models.SeatTypeRegular,
			})
		}
	}
	require.NoError(t, db.Create(&seats).Error)
	return seats
}

// InsertTicket stores a ticket directly, bypassing allocation.
func InsertTicket(t *testing.T, db *gorm.DB, zone *models.Zone, status models.TicketStatus) *models.Ticket {
	t.Helper()
	ticket := &models.Ticket{
		EventID:       zone.EventID,
		ZoneID:        zone.ID,
		ZoneName:      zone.Name,
		CustomerName:  "Existing Buyer",
		CustomerEmail: "existing@example.com",
		Price:         zone.Price,
		Status:        status,
		QRCode:        "seeded-" + uuid.NewString(),
		PurchaseDate:  time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func CountTickets(t *testing.T, db *gorm.DB, eventID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Ticket{}).Where("event_id = ?", eventID).Count(&n).Error)
	return n
}
