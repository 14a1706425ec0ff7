package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, resource *Resource) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Resource, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]*Resource, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*Resource, error)
	SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) error
}
