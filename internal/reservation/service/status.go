package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/reservation/domain"
	"go.uber.org/zap"
)

// UpdateStatus applies one transition from the state machine. The financial
// side effects run after the status write commits; their failures are logged
// and swallowed so the transition itself never rolls back. The reconciler
// closes any gap they leave.
func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateStatusRequest) (domain.Reservation, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ReservationID))
	if err != nil || id == 0 {
		return domain.Reservation{}, domain.ErrInvalidID
	}

	target, err := domain.ParseStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return domain.Reservation{}, err
	}

	reservation, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	if reservation == nil {
		return domain.Reservation{}, domain.ErrNotFound
	}

	if !domain.CanTransition(reservation.Status, target) {
		return domain.Reservation{}, &domain.TransitionError{From: reservation.Status, To: target}
	}

	now := s.clock.Now()
	if err := s.repo.UpdateStatus(ctx, s.db, id, target, now); err != nil {
		return domain.Reservation{}, err
	}

	s.metrics.StatusTransitions.WithLabelValues(string(reservation.Status), string(target)).Inc()
	s.log.Info("reservation status updated",
		zap.String("reservation_id", id.String()),
		zap.String("from", string(reservation.Status)),
		zap.String("to", string(target)),
	)

	if target.Qualifies() {
		actor := strings.TrimSpace(req.Actor)
		if actor == "" {
			actor = "system"
		}
		s.runSideEffects(ctx, id, actor)
	}

	reservation.Status = target
	reservation.UpdatedAt = now
	return *reservation, nil
}
