package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/clock"
	"github.com/smallbiznis/lodgera/internal/ledger/domain"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	Repo            domain.Repository
	ReservationRepo reservationdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo            domain.Repository
	reservationRepo reservationdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("ledger.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		reservationRepo: p.ReservationRepo,
	}
}

// Ensure posts the revenue entry for a reservation exactly once. No-op until
// the reservation reaches CONFIRMED or COMPLETED.
func (s *Service) Ensure(ctx context.Context, reservationID snowflake.ID, actor string) (*domain.Entry, error) {
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
	if !reservation.Status.Qualifies() {
		return nil, nil
	}

	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = "system"
	}

	entry := domain.Entry{
		ID:            s.genID.Generate(),
		ReservationID: reservation.ID,
		Amount:        reservation.TotalAmount,
		Currency:      reservation.Currency,
		EntryDate:     reservation.UpdatedAt,
		Description:   describe(reservation),
		Status:        domain.StatusPosted,
		CreatedBy:     actor,
		CreatedAt:     s.clock.Now(),
	}

	created, err := s.repo.InsertIgnoreDuplicate(ctx, s.db, &entry)
	if err != nil {
		return nil, err
	}
	if !created {
		return s.repo.FindByReservation(ctx, s.db, reservationID)
	}

	s.log.Info("revenue entry posted",
		zap.String("reservation_id", reservation.ID.String()),
		zap.Int64("amount", entry.Amount),
		zap.String("created_by", actor),
	)
	return &entry, nil
}

// describe renders the human-readable line from the reservation snapshot
// only, never from live catalog or customer records.
func describe(r *reservationdomain.Reservation) string {
	return fmt.Sprintf("reservation %s: %s at %s, %s to %s",
		r.Code,
		r.GuestName,
		r.ResourceName,
		r.CheckIn.Format(reservationdomain.DateLayout),
		r.CheckOut.Format(reservationdomain.DateLayout),
	)
}
