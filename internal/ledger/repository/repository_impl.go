package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/ledger/domain"
	"github.com/smallbiznis/lodgera/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertIgnoreDuplicate(ctx context.Context, conn *gorm.DB, entry *domain.Entry) (bool, error) {
	result := conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reservation_id"}},
			DoNothing: true,
		}).
		Create(entry)
	if result.Error != nil {
		if db.IsDuplicateKeyErr(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) FindByReservation(ctx context.Context, conn *gorm.DB, reservationID snowflake.ID) (*domain.Entry, error) {
	var entry domain.Entry
	err := conn.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Take(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
