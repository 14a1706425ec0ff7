package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPosted Status = "POSTED"
)

// Entry is the revenue posting for one reservation. Description is built
// only from the reservation's snapshot fields so the historical record stays
// stable when catalog or customer data changes. The unique index on
// reservation_id is the idempotency backstop.
type Entry struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ReservationID snowflake.ID `gorm:"not null;uniqueIndex:ux_ledger_entries_reservation" json:"reservation_id"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Currency      string       `gorm:"not null;default:USD" json:"currency"`
	EntryDate     time.Time    `gorm:"not null" json:"entry_date"`
	Description   string       `gorm:"not null" json:"description"`
	Status        Status       `gorm:"not null;default:POSTED" json:"status"`
	CreatedBy     string       `gorm:"not null;default:system" json:"created_by"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Entry) TableName() string { return "ledger_entries" }
