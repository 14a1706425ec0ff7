package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/commission/domain"
	"github.com/smallbiznis/lodgera/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertIgnoreDuplicate(ctx context.Context, conn *gorm.DB, commission *domain.Commission) (bool, error) {
	result := conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reservation_id"}},
			DoNothing: true,
		}).
		Create(commission)
	if result.Error != nil {
		// Some drivers surface the race as a duplicate key error instead of
		// swallowing it; both mean the row already exists.
		if db.IsDuplicateKeyErr(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) FindByReservation(ctx context.Context, conn *gorm.DB, reservationID snowflake.ID) (*domain.Commission, error) {
	var commission domain.Commission
	err := conn.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Take(&commission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &commission, nil
}

func (r *repo) SetStatus(ctx context.Context, conn *gorm.DB, id snowflake.ID, status domain.Status) error {
	return conn.WithContext(ctx).
		Model(&domain.Commission{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": gorm.Expr("CURRENT_TIMESTAMP")}).Error
}
