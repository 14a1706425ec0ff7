package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind separates guest records from other identities sharing the table.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindStaff    Kind = "staff"
)

type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Kind      Kind         `gorm:"not null;default:customer" json:"kind"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"not null;uniqueIndex:ux_customers_email" json:"email"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
