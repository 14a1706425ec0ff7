package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Resource is a rentable unit with a nightly price and guest capacity.
type Resource struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	Slug          string            `gorm:"not null;uniqueIndex:ux_resources_slug" json:"slug"`
	Name          string            `gorm:"not null" json:"name"`
	NightlyAmount int64             `gorm:"not null" json:"nightly_amount"`
	Currency      string            `gorm:"not null;default:USD" json:"currency"`
	MaxGuests     int               `gorm:"not null" json:"max_guests"`
	Active        bool              `gorm:"not null;default:true" json:"active"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Resource) TableName() string { return "resources" }
