package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleSales   Role = "sales"
	RoleManager Role = "manager"
)

// Agent is a sales agent eligible for referral commissions.
type Agent struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"not null;uniqueIndex:ux_agents_email" json:"email"`
	Role      Role         `gorm:"not null;default:sales" json:"role"`
	Active    bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Agent) TableName() string { return "agents" }
