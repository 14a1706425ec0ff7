package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// InsertIgnoreDuplicate inserts the commission unless one already exists
	// for the reservation. Returns created=false when the row was already
	// there.
	InsertIgnoreDuplicate(ctx context.Context, db *gorm.DB, commission *Commission) (created bool, err error)
	FindByReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (*Commission, error)
	SetStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
}

// Service creates at most one commission per qualifying reservation.
type Service interface {
	// Ensure returns the reservation's commission, creating it on first call.
	// Returns nil when the reservation has no assigned agent. Safe to call
	// repeatedly and concurrently.
	Ensure(ctx context.Context, reservationID snowflake.ID) (*Commission, error)
	MarkPaid(ctx context.Context, id string) (Commission, error)
}

var (
	ErrInvalidID = errors.New("invalid_commission_id")
	ErrNotFound  = errors.New("commission_not_found")
)
