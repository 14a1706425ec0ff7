package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/clock"
	"github.com/smallbiznis/lodgera/internal/commission/domain"
	"github.com/smallbiznis/lodgera/internal/config"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Booking config.BookingConfig

	Repo            domain.Repository
	ReservationRepo reservationdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	booking config.BookingConfig

	repo            domain.Repository
	reservationRepo reservationdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("commission.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		booking:         p.Booking,
		repo:            p.Repo,
		reservationRepo: p.ReservationRepo,
	}
}

// Ensure creates the commission for a reservation's agent exactly once. The
// lookup plus the unique reservation_id index makes it safe under concurrent
// callers: the insert loser re-reads the winner's row.
func (s *Service) Ensure(ctx context.Context, reservationID snowflake.ID) (*domain.Commission, error) {
	existing, err := s.repo.FindByReservation(ctx, s.db, reservationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	reservation, err := s.reservationRepo.FindByID(ctx, s.db, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, reservationdomain.ErrNotFound
	}
	if reservation.AgentID == nil {
		return nil, nil
	}
	if !reservation.Status.Qualifies() {
		return nil, nil
	}

	now := s.clock.Now()
	commission := domain.Commission{
		ID:            s.genID.Generate(),
		ReservationID: reservation.ID,
		AgentID:       *reservation.AgentID,
		Amount:        commissionAmount(reservation.TotalAmount, s.booking.CommissionRateBps),
		Currency:      reservation.Currency,
		Status:        domain.StatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.InsertIgnoreDuplicate(ctx, s.db, &commission)
	if err != nil {
		return nil, err
	}
	if !created {
		return s.repo.FindByReservation(ctx, s.db, reservationID)
	}

	s.log.Info("commission created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("agent_id", commission.AgentID.String()),
		zap.Int64("amount", commission.Amount),
	)
	return &commission, nil
}

func (s *Service) MarkPaid(ctx context.Context, id string) (domain.Commission, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Commission{}, domain.ErrInvalidID
	}

	var commission domain.Commission
	err = s.db.WithContext(ctx).
		Where("id = ?", parsed).
		Take(&commission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Commission{}, domain.ErrNotFound
		}
		return domain.Commission{}, err
	}

	if commission.Status == domain.StatusPaid {
		return commission, nil
	}
	if err := s.repo.SetStatus(ctx, s.db, parsed, domain.StatusPaid); err != nil {
		return domain.Commission{}, err
	}
	commission.Status = domain.StatusPaid
	return commission, nil
}

// commissionAmount rounds half-up in integer minor units.
func commissionAmount(total, rateBps int64) int64 {
	return (total*rateBps + 5000) / 10000
}
