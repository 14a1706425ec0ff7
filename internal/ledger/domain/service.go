package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// InsertIgnoreDuplicate inserts the entry unless one already exists for
	// the reservation. Returns created=false when the row was already there.
	InsertIgnoreDuplicate(ctx context.Context, db *gorm.DB, entry *Entry) (created bool, err error)
	FindByReservation(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (*Entry, error)
}

// Service posts at most one revenue entry per qualifying reservation.
type Service interface {
	// Ensure returns the reservation's revenue entry, creating it on first
	// call. Returns nil while the reservation has not reached a qualifying
	// status. Safe to call repeatedly and concurrently.
	Ensure(ctx context.Context, reservationID snowflake.ID, actor string) (*Entry, error)
}

var ErrNotFound = errors.New("ledger_entry_not_found")
