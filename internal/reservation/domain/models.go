package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Reservation is a customer's claim on one or more resources for a date
// range. GuestName and ResourceName are snapshots taken at booking time so
// historical display stays stable when catalog or customer records change;
// the foreign keys remain the live view.
type Reservation struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	Code         string        `gorm:"not null;uniqueIndex:ux_reservations_code" json:"code"`
	CustomerID   snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	AgentID      *snowflake.ID `gorm:"index" json:"agent_id,omitempty"`
	ResourceID   snowflake.ID  `gorm:"not null;index:ix_reservations_resource_status,priority:1" json:"resource_id"`
	GuestName    string        `gorm:"not null" json:"guest_name"`
	ResourceName string        `gorm:"not null" json:"resource_name"`
	CheckIn      time.Time     `gorm:"not null" json:"check_in"`
	CheckOut     time.Time     `gorm:"not null" json:"check_out"`
	Nights       int           `gorm:"not null" json:"nights"`
	Guests       int           `gorm:"not null" json:"guests"`
	TotalAmount  int64         `gorm:"not null" json:"total_amount"`
	Currency     string        `gorm:"not null;default:USD" json:"currency"`
	Status       Status        `gorm:"not null;default:PENDING;index:ix_reservations_resource_status,priority:2" json:"status"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []ReservationItem `gorm:"foreignKey:ReservationID" json:"items,omitempty"`
}

func (Reservation) TableName() string { return "reservations" }

// ReservationItem binds one resource at its price-at-booking-time.
type ReservationItem struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ReservationID snowflake.ID `gorm:"not null;index" json:"reservation_id"`
	ResourceID    snowflake.ID `gorm:"not null;index" json:"resource_id"`
	ResourceName  string       `gorm:"not null" json:"resource_name"`
	NightlyAmount int64        `gorm:"not null" json:"nightly_amount"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Currency      string       `gorm:"not null;default:USD" json:"currency"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ReservationItem) TableName() string { return "reservation_items" }

// ConflictSummary describes an existing reservation that blocks a requested
// date range.
type ConflictSummary struct {
	ReservationID snowflake.ID   `json:"reservation_id"`
	Code          string         `json:"code"`
	CheckIn       time.Time      `json:"check_in"`
	CheckOut      time.Time      `json:"check_out"`
	Status        Status         `json:"status"`
	ResourceIDs   []snowflake.ID `json:"resource_ids"`
}
