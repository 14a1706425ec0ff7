package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/lodgera/internal/availability/domain"
	obsmetrics "github.com/smallbiznis/lodgera/internal/observability/metrics"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	reservationrepo "github.com/smallbiznis/lodgera/internal/reservation/repository"
	resourcedomain "github.com/smallbiznis/lodgera/internal/resource/domain"
	resourcerepo "github.com/smallbiznis/lodgera/internal/resource/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type availabilityEnv struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  domain.Service
}

func newAvailabilityTestEnv(t *testing.T) *availabilityEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&resourcedomain.Resource{},
		&reservationdomain.Reservation{},
		&reservationdomain.ReservationItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:              db,
		Log:             zap.NewNop(),
		Metrics:         obsmetrics.NewWith(prometheus.NewRegistry()),
		ReservationRepo: reservationrepo.Provide(),
		ResourceRepo:    resourcerepo.Provide(),
	})
	return &availabilityEnv{db: db, node: node, svc: svc}
}

func (e *availabilityEnv) seedResource(t *testing.T, slug string) resourcedomain.Resource {
	t.Helper()
	resource := resourcedomain.Resource{
		ID:            e.node.Generate(),
		Slug:          slug,
		Name:          slug,
		NightlyAmount: 10000,
		Currency:      "USD",
		MaxGuests:     4,
		Active:        true,
	}
	require.NoError(t, e.db.Create(&resource).Error)
	return resource
}

func (e *availabilityEnv) seedReservation(t *testing.T, resourceID snowflake.ID, status reservationdomain.Status, checkIn, checkOut string) reservationdomain.Reservation {
	t.Helper()
	in, err := reservationdomain.ParseDate(checkIn)
	require.NoError(t, err)
	out, err := reservationdomain.ParseDate(checkOut)
	require.NoError(t, err)

	reservation := reservationdomain.Reservation{
		ID:           e.node.Generate(),
		Code:         e.node.Generate().String(),
		CustomerID:   e.node.Generate(),
		ResourceID:   resourceID,
		GuestName:    "Alex Morgan",
		ResourceName: "unit",
		CheckIn:      in,
		CheckOut:     out,
		Nights:       reservationdomain.Nights(in, out),
		Guests:       2,
		TotalAmount:  10000,
		Currency:     "USD",
		Status:       status,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, e.db.Create(&reservation).Error)
	require.NoError(t, e.db.Create(&reservationdomain.ReservationItem{
		ID:            e.node.Generate(),
		ReservationID: reservation.ID,
		ResourceID:    resourceID,
		ResourceName:  "unit",
		NightlyAmount: 10000,
		Amount:        10000,
		Currency:      "USD",
		CreatedAt:     time.Now().UTC(),
	}).Error)
	return reservation
}

func TestCheckAvailable(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	resource := env.seedResource(t, "seaview-cabin")

	resp, err := env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs: []string{resource.ID.String()},
		CheckIn:     "2026-09-10",
		CheckOut:    "2026-09-12",
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
}

func TestCheckReportsConflicts(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	resource := env.seedResource(t, "seaview-cabin")
	blocking := env.seedReservation(t, resource.ID, reservationdomain.StatusConfirmed, "2026-09-10", "2026-09-12")

	resp, err := env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs: []string{resource.ID.String()},
		CheckIn:     "2026-09-11",
		CheckOut:    "2026-09-13",
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, blocking.ID, resp.Conflicts[0].ReservationID)
	assert.Contains(t, resp.Conflicts[0].ResourceIDs, resource.ID)
}

func TestCheckStatusFilter(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	resource := env.seedResource(t, "seaview-cabin")

	// Cancelled and completed stays do not block the range.
	env.seedReservation(t, resource.ID, reservationdomain.StatusCancelled, "2026-09-10", "2026-09-12")
	env.seedReservation(t, resource.ID, reservationdomain.StatusCompleted, "2026-09-10", "2026-09-12")

	resp, err := env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs: []string{resource.ID.String()},
		CheckIn:     "2026-09-10",
		CheckOut:    "2026-09-12",
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)

	// A pending hold does.
	env.seedReservation(t, resource.ID, reservationdomain.StatusPending, "2026-09-10", "2026-09-12")
	resp, err = env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs: []string{resource.ID.String()},
		CheckIn:     "2026-09-10",
		CheckOut:    "2026-09-12",
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestCheckExcludesOwnReservation(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	resource := env.seedResource(t, "seaview-cabin")
	own := env.seedReservation(t, resource.ID, reservationdomain.StatusConfirmed, "2026-09-10", "2026-09-12")

	resp, err := env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs:          []string{resource.ID.String()},
		CheckIn:              "2026-09-10",
		CheckOut:             "2026-09-14",
		ExcludeReservationID: own.ID.String(),
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestCheckValidation(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	resource := env.seedResource(t, "seaview-cabin")

	_, err := env.svc.Check(context.Background(), domain.CheckRequest{
		CheckIn:  "2026-09-10",
		CheckOut: "2026-09-12",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidResourceIDs)

	_, err = env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs: []string{"nope"},
		CheckIn:     "2026-09-10",
		CheckOut:    "2026-09-12",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidResourceIDs)

	_, err = env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs: []string{env.node.Generate().String()},
		CheckIn:     "2026-09-10",
		CheckOut:    "2026-09-12",
	})
	assert.ErrorIs(t, err, resourcedomain.ErrNotFound)

	_, err = env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs: []string{resource.ID.String()},
		CheckIn:     "2026-09-12",
		CheckOut:    "2026-09-10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDates)

	_, err = env.svc.Check(context.Background(), domain.CheckRequest{
		ResourceIDs:          []string{resource.ID.String()},
		CheckIn:              "2026-09-10",
		CheckOut:             "2026-09-12",
		ExcludeReservationID: "nope",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidExcludeID)
}
