package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/reservation/domain"
	"github.com/smallbiznis/lodgera/pkg/db/option"
	"github.com/smallbiznis/lodgera/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reservation *domain.Reservation) error {
	return db.WithContext(ctx).Omit("Items").Create(reservation).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.ReservationItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		Take(&reservation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status, updatedAt time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": updatedAt}).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Reservation, error) {
	stmt := db.WithContext(ctx).Model(&domain.Reservation{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)

	var reservations []*domain.Reservation
	err := stmt.
		Order("created_at desc, id desc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

type conflictRow struct {
	ID         snowflake.ID
	Code       string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     domain.Status
	ResourceID snowflake.ID
}

func (r *repo) FindConflicts(ctx context.Context, db *gorm.DB, resourceIDs []snowflake.ID, checkIn, checkOut time.Time, excludeID snowflake.ID) ([]domain.ConflictSummary, error) {
	// Every resource a reservation claims has a reservation_items row, so a
	// join over items covers primary and secondary resources alike. The
	// half-open rule: existing.check_in < requested.check_out AND
	// existing.check_out > requested.check_in.
	query := `SELECT r.id, r.code, r.check_in, r.check_out, r.status, ri.resource_id
		 FROM reservations r
		 JOIN reservation_items ri ON ri.reservation_id = r.id
		 WHERE ri.resource_id IN ?
		   AND r.status IN ?
		   AND r.check_in < ?
		   AND r.check_out > ?`
	args := []any{
		resourceIDs,
		[]domain.Status{domain.StatusPending, domain.StatusConfirmed},
		checkOut,
		checkIn,
	}
	if excludeID != 0 {
		query += ` AND r.id <> ?`
		args = append(args, excludeID)
	}
	query += ` ORDER BY r.check_in, r.id`

	var rows []conflictRow
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[snowflake.ID]*domain.ConflictSummary)
	order := make([]snowflake.ID, 0, len(rows))
	for _, row := range rows {
		summary, ok := byID[row.ID]
		if !ok {
			summary = &domain.ConflictSummary{
				ReservationID: row.ID,
				Code:          row.Code,
				CheckIn:       row.CheckIn,
				CheckOut:      row.CheckOut,
				Status:        row.Status,
			}
			byID[row.ID] = summary
			order = append(order, row.ID)
		}
		summary.ResourceIDs = append(summary.ResourceIDs, row.ResourceID)
	}

	conflicts := make([]domain.ConflictSummary, 0, len(order))
	for _, id := range order {
		conflicts = append(conflicts, *byID[id])
	}
	return conflicts, nil
}
