package reconciler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	agentdomain "github.com/smallbiznis/lodgera/internal/agent/domain"
	"github.com/smallbiznis/lodgera/internal/clock"
	commissiondomain "github.com/smallbiznis/lodgera/internal/commission/domain"
	commissionrepo "github.com/smallbiznis/lodgera/internal/commission/repository"
	commissionservice "github.com/smallbiznis/lodgera/internal/commission/service"
	"github.com/smallbiznis/lodgera/internal/config"
	ledgerdomain "github.com/smallbiznis/lodgera/internal/ledger/domain"
	ledgerrepo "github.com/smallbiznis/lodgera/internal/ledger/repository"
	ledgerservice "github.com/smallbiznis/lodgera/internal/ledger/service"
	obsmetrics "github.com/smallbiznis/lodgera/internal/observability/metrics"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	reservationrepo "github.com/smallbiznis/lodgera/internal/reservation/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type reconcilerEnv struct {
	db   *gorm.DB
	node *snowflake.Node
	rec  *Reconciler
}

func newReconcilerTestEnv(t *testing.T) *reconcilerEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&agentdomain.Agent{},
		&reservationdomain.Reservation{},
		&reservationdomain.ReservationItem{},
		&commissiondomain.Commission{},
		&ledgerdomain.Entry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	fakeClock := clock.NewFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	resRepo := reservationrepo.Provide()

	commissionSvc := commissionservice.New(commissionservice.Params{
		DB:              db,
		Log:             log,
		GenID:           node,
		Clock:           fakeClock,
		Booking:         config.DefaultBookingConfig(),
		Repo:            commissionrepo.Provide(),
		ReservationRepo: resRepo,
	})
	ledgerSvc := ledgerservice.New(ledgerservice.Params{
		DB:              db,
		Log:             log,
		GenID:           node,
		Clock:           fakeClock,
		Repo:            ledgerrepo.Provide(),
		ReservationRepo: resRepo,
	})

	rec, err := New(Params{
		DB:            db,
		Log:           log,
		Clock:         fakeClock,
		Metrics:       obsmetrics.NewWith(prometheus.NewRegistry()),
		CommissionSvc: commissionSvc,
		LedgerSvc:     ledgerSvc,
	})
	require.NoError(t, err)

	return &reconcilerEnv{db: db, node: node, rec: rec}
}

func (e *reconcilerEnv) seedReservation(t *testing.T, agentID *snowflake.ID, status reservationdomain.Status) reservationdomain.Reservation {
	t.Helper()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	reservation := reservationdomain.Reservation{
		ID:           e.node.Generate(),
		Code:         e.node.Generate().String(),
		CustomerID:   e.node.Generate(),
		AgentID:      agentID,
		ResourceID:   e.node.Generate(),
		GuestName:    "Alex Morgan",
		ResourceName: "seaview-cabin",
		CheckIn:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Nights:       2,
		Guests:       2,
		TotalAmount:  20000,
		Currency:     "USD",
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.db.Create(&reservation).Error)
	return reservation
}

// A confirmed reservation whose side effects were swallowed gets exactly one
// commission and one ledger entry from the sweep, and a second sweep changes
// nothing.
func TestRunOnceBackfillsMissingSideEffects(t *testing.T) {
	env := newReconcilerTestEnv(t)
	agentID := env.node.Generate()
	withAgent := env.seedReservation(t, &agentID, reservationdomain.StatusConfirmed)
	withoutAgent := env.seedReservation(t, nil, reservationdomain.StatusCompleted)
	env.seedReservation(t, &agentID, reservationdomain.StatusPending)
	env.seedReservation(t, nil, reservationdomain.StatusCancelled)

	require.NoError(t, env.rec.RunOnce(context.Background()))

	var commissions []commissiondomain.Commission
	require.NoError(t, env.db.Find(&commissions).Error)
	require.Len(t, commissions, 1)
	assert.Equal(t, withAgent.ID, commissions[0].ReservationID)
	assert.Equal(t, int64(4000), commissions[0].Amount)

	var entries []ledgerdomain.Entry
	require.NoError(t, env.db.Order("reservation_id").Find(&entries).Error)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "reconciler", entry.CreatedBy)
		assert.Contains(t, []snowflake.ID{withAgent.ID, withoutAgent.ID}, entry.ReservationID)
	}

	// Idempotent on re-run.
	require.NoError(t, env.rec.RunOnce(context.Background()))

	var commissionCount, entryCount int64
	require.NoError(t, env.db.Model(&commissiondomain.Commission{}).Count(&commissionCount).Error)
	require.NoError(t, env.db.Model(&ledgerdomain.Entry{}).Count(&entryCount).Error)
	assert.Equal(t, int64(1), commissionCount)
	assert.Equal(t, int64(2), entryCount)
}

func TestRunOnceLeavesExistingRowsAlone(t *testing.T) {
	env := newReconcilerTestEnv(t)
	agentID := env.node.Generate()
	reservation := env.seedReservation(t, &agentID, reservationdomain.StatusConfirmed)

	existing := commissiondomain.Commission{
		ID:            env.node.Generate(),
		ReservationID: reservation.ID,
		AgentID:       agentID,
		Amount:        1234,
		Currency:      "USD",
		Status:        commissiondomain.StatusPaid,
	}
	require.NoError(t, env.db.Create(&existing).Error)

	require.NoError(t, env.rec.RunOnce(context.Background()))

	var stored commissiondomain.Commission
	require.NoError(t, env.db.Where("reservation_id = ?", reservation.ID).Take(&stored).Error)
	assert.Equal(t, existing.ID, stored.ID)
	assert.Equal(t, int64(1234), stored.Amount)
	assert.Equal(t, commissiondomain.StatusPaid, stored.Status)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Params{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, time.Minute, cfg.RunInterval)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.JobTimeout)

	custom := Config{RunInterval: 5 * time.Second, BatchSize: 7, JobTimeout: time.Second}.withDefaults()
	assert.Equal(t, 5*time.Second, custom.RunInterval)
	assert.Equal(t, 7, custom.BatchSize)
	assert.Equal(t, time.Second, custom.JobTimeout)
}
