package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

// runSideEffects issues the idempotent ensure calls that follow a qualifying
// status transition. Each runs in its own error boundary: a failure or panic
// is logged with the reservation ID and counted, never propagated, so the
// committed transition stands. The reconciliation sweep retries out of band.
func (s *Service) runSideEffects(ctx context.Context, reservationID snowflake.ID, actor string) {
	// The request context may be cancelled as soon as the response is
	// written; the ensure calls should still finish.
	ctx = context.WithoutCancel(ctx)

	effects := []struct {
		name string
		run  func(context.Context) error
	}{
		{"commission", func(ctx context.Context) error {
			_, err := s.commissionSvc.Ensure(ctx, reservationID)
			return err
		}},
		{"ledger", func(ctx context.Context) error {
			_, err := s.ledgerSvc.Ensure(ctx, reservationID, actor)
			return err
		}},
	}

	for _, effect := range effects {
		if err := s.runIsolated(ctx, effect.name, effect.run); err != nil {
			s.metrics.SideEffectFailures.WithLabelValues(effect.name).Inc()
			s.log.Error("side effect failed, leaving for reconciliation",
				zap.String("effect", effect.name),
				zap.String("reservation_id", reservationID.String()),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) runIsolated(ctx context.Context, name string, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s side effect panicked: %v", name, r)
		}
	}()
	return fn(ctx)
}
