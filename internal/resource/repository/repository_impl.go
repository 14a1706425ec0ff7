package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/resource/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, resource *domain.Resource) error {
	return db.WithContext(ctx).Create(resource).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Resource, error) {
	var resource domain.Resource
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&resource).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &resource, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]*domain.Resource, error) {
	var resources []*domain.Resource
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*domain.Resource, error) {
	stmt := db.WithContext(ctx).Model(&domain.Resource{})
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}
	var resources []*domain.Resource
	if err := stmt.Order("created_at desc, id desc").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *repo) SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) error {
	return db.WithContext(ctx).
		Model(&domain.Resource{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": active, "updated_at": gorm.Expr("CURRENT_TIMESTAMP")}).Error
}
