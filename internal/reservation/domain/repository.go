package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reservation *Reservation) error
	InsertItems(ctx context.Context, db *gorm.DB, items []ReservationItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Reservation, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status, updatedAt time.Time) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Reservation, error)
	// FindConflicts runs the half-open overlap query over PENDING/CONFIRMED
	// reservations touching any of resourceIDs. excludeID ignores the
	// reservation being modified; pass 0 for creation.
	FindConflicts(ctx context.Context, db *gorm.DB, resourceIDs []snowflake.ID, checkIn, checkOut time.Time, excludeID snowflake.ID) ([]ConflictSummary, error)
}
