package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lodgera/internal/clock"
	"github.com/smallbiznis/lodgera/internal/ledger/domain"
	"github.com/smallbiznis/lodgera/internal/ledger/repository"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	reservationrepo "github.com/smallbiznis/lodgera/internal/reservation/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newLedgerTestEnv(t *testing.T) (*gorm.DB, *snowflake.Node, domain.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&reservationdomain.Reservation{},
		&reservationdomain.ReservationItem{},
		&domain.Entry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:              db,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           clock.NewFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)),
		Repo:            repository.Provide(),
		ReservationRepo: reservationrepo.Provide(),
	})
	return db, node, svc
}

func seedReservation(t *testing.T, db *gorm.DB, node *snowflake.Node, status reservationdomain.Status) reservationdomain.Reservation {
	t.Helper()
	reservation := reservationdomain.Reservation{
		ID:           node.Generate(),
		Code:         "a2f1c9d4",
		CustomerID:   node.Generate(),
		ResourceID:   node.Generate(),
		GuestName:    "Alex Morgan",
		ResourceName: "Seaview Cabin",
		CheckIn:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Nights:       2,
		Guests:       2,
		TotalAmount:  20000,
		Currency:     "USD",
		Status:       status,
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&reservation).Error)
	return reservation
}

func TestEnsurePostsEntryOnce(t *testing.T) {
	db, node, svc := newLedgerTestEnv(t)
	reservation := seedReservation(t, db, node, reservationdomain.StatusConfirmed)

	first, err := svc.Ensure(context.Background(), reservation.ID, "ops@example.com")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, int64(20000), first.Amount)
	assert.Equal(t, "USD", first.Currency)
	assert.Equal(t, domain.StatusPosted, first.Status)
	assert.Equal(t, "ops@example.com", first.CreatedBy)
	assert.Equal(t, "reservation a2f1c9d4: Alex Morgan at Seaview Cabin, 2026-09-10 to 2026-09-12", first.Description)

	for i := 0; i < 3; i++ {
		again, err := svc.Ensure(context.Background(), reservation.ID, "someone-else")
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "ops@example.com", again.CreatedBy)
	}

	var count int64
	require.NoError(t, db.Model(&domain.Entry{}).Where("reservation_id = ?", reservation.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSkipsNonQualifyingStatus(t *testing.T) {
	db, node, svc := newLedgerTestEnv(t)

	pending := seedReservation(t, db, node, reservationdomain.StatusPending)
	entry, err := svc.Ensure(context.Background(), pending.ID, "system")
	require.NoError(t, err)
	assert.Nil(t, entry)

	var count int64
	require.NoError(t, db.Model(&domain.Entry{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestEnsureDefaultsActor(t *testing.T) {
	db, node, svc := newLedgerTestEnv(t)
	reservation := seedReservation(t, db, node, reservationdomain.StatusCompleted)

	entry, err := svc.Ensure(context.Background(), reservation.ID, "  ")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "system", entry.CreatedBy)
}

func TestEnsureUnknownReservation(t *testing.T) {
	_, node, svc := newLedgerTestEnv(t)

	_, err := svc.Ensure(context.Background(), node.Generate(), "system")
	assert.ErrorIs(t, err, reservationdomain.ErrNotFound)
}

// The posted description comes from the reservation's snapshot columns, so
// later catalog edits never rewrite history.
func TestEntryDescriptionStableAfterRename(t *testing.T) {
	db, node, svc := newLedgerTestEnv(t)
	reservation := seedReservation(t, db, node, reservationdomain.StatusConfirmed)

	first, err := svc.Ensure(context.Background(), reservation.ID, "system")
	require.NoError(t, err)

	require.NoError(t, db.Model(&reservationdomain.Reservation{}).
		Where("id = ?", reservation.ID).
		Update("resource_name", "Renamed Cabin").Error)

	var stored domain.Entry
	require.NoError(t, db.Where("reservation_id = ?", reservation.ID).Take(&stored).Error)
	assert.Equal(t, first.Description, stored.Description)
	assert.Contains(t, stored.Description, "Seaview Cabin")
}
