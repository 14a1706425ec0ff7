package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/lodgera/internal/clock"
	commissiondomain "github.com/smallbiznis/lodgera/internal/commission/domain"
	ledgerdomain "github.com/smallbiznis/lodgera/internal/ledger/domain"
	"github.com/smallbiznis/lodgera/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("reconciler: missing dependency")

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics

	CommissionSvc commissiondomain.Service
	LedgerSvc     ledgerdomain.Service

	Config Config `optional:"true"`
}

// Reconciler sweeps qualifying reservations whose post-transition side
// effects were swallowed, and replays them through the same idempotent
// Ensure paths the transition uses.
type Reconciler struct {
	db      *gorm.DB
	log     *zap.Logger
	cfg     Config
	clock   clock.Clock
	metrics *metrics.Metrics

	commissionSvc commissiondomain.Service
	ledgerSvc     ledgerdomain.Service
}

func New(p Params) (*Reconciler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.Metrics == nil || p.CommissionSvc == nil || p.LedgerSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Reconciler{
		db:            p.DB,
		log:           p.Log.Named("reconciler").With(zap.String("component", "reconciler")),
		cfg:           p.Config.withDefaults(),
		clock:         p.Clock,
		metrics:       p.Metrics,
		commissionSvc: p.CommissionSvc,
		ledgerSvc:     p.LedgerSvc,
	}, nil
}

func (r *Reconciler) runJob(parent context.Context, name string, fn func(ctx context.Context, log *zap.Logger) (int, error)) error {
	ctx, cancel := context.WithTimeout(parent, r.cfg.JobTimeout)
	defer cancel()

	log := r.log.With(
		zap.String("job", name),
		zap.String("run_id", ulid.Make().String()),
	)
	start := r.clock.Now()

	backfilled, err := fn(ctx, log)
	if backfilled > 0 {
		r.metrics.ReconcilerBackfills.WithLabelValues(name).Add(float64(backfilled))
	}
	if err == nil {
		if backfilled > 0 {
			log.Info("job finished",
				zap.Int("backfilled", backfilled),
				zap.Duration("elapsed", time.Since(start)),
			)
		}
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out",
			zap.Duration("timeout", r.cfg.JobTimeout),
			zap.Error(err),
		)
		return nil
	}

	log.Warn("job failed", zap.Error(err))
	return fmt.Errorf("%s: %w", name, err)
}

// RunOnce executes a single sweep over both backfill jobs. Job failures are
// joined, never fatal to the caller.
func (r *Reconciler) RunOnce(parent context.Context) error {
	var err error

	jobs := []struct {
		Name string
		Run  func(context.Context, *zap.Logger) (int, error)
	}{
		{"backfill_commissions", r.backfillCommissions},
		{"backfill_ledger", r.backfillLedger},
	}
	for _, job := range jobs {
		err = errors.Join(err, r.runJob(parent, job.Name, job.Run))
	}

	return err
}

func (r *Reconciler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := r.RunOnce(ctx); err != nil {
			r.log.Warn("reconciler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// backfillCommissions finds qualifying agent-attributed reservations with no
// commission row and replays commission creation for each.
func (r *Reconciler) backfillCommissions(ctx context.Context, log *zap.Logger) (int, error) {
	ids, err := r.fetchMissing(ctx,
		`SELECT r.id
		 FROM reservations r
		 LEFT JOIN commissions c ON c.reservation_id = r.id
		 WHERE r.status IN ('CONFIRMED', 'COMPLETED')
		   AND r.agent_id IS NOT NULL
		   AND c.id IS NULL
		 ORDER BY r.id
		 LIMIT ?`,
	)
	if err != nil {
		return 0, err
	}

	var jobErr error
	backfilled := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return backfilled, errors.Join(jobErr, ctx.Err())
		}
		if _, err := r.commissionSvc.Ensure(ctx, id); err != nil {
			jobErr = errors.Join(jobErr, err)
			log.Warn("commission backfill failed",
				zap.String("reservation_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		backfilled++
	}
	return backfilled, jobErr
}

// backfillLedger finds qualifying reservations with no revenue entry and
// replays ledger posting for each.
func (r *Reconciler) backfillLedger(ctx context.Context, log *zap.Logger) (int, error) {
	ids, err := r.fetchMissing(ctx,
		`SELECT r.id
		 FROM reservations r
		 LEFT JOIN ledger_entries le ON le.reservation_id = r.id
		 WHERE r.status IN ('CONFIRMED', 'COMPLETED')
		   AND le.id IS NULL
		 ORDER BY r.id
		 LIMIT ?`,
	)
	if err != nil {
		return 0, err
	}

	var jobErr error
	backfilled := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return backfilled, errors.Join(jobErr, ctx.Err())
		}
		if _, err := r.ledgerSvc.Ensure(ctx, id, "reconciler"); err != nil {
			jobErr = errors.Join(jobErr, err)
			log.Warn("ledger backfill failed",
				zap.String("reservation_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		backfilled++
	}
	return backfilled, jobErr
}

func (r *Reconciler) fetchMissing(ctx context.Context, query string) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := r.db.WithContext(ctx).Raw(query, r.cfg.BatchSize).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
