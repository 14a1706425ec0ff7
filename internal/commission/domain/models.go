package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

// Commission is the referral fee owed to an agent for one reservation. The
// unique index on reservation_id is the idempotency backstop: a duplicate
// insert losing a race fails the constraint and is treated as "already
// exists".
type Commission struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ReservationID snowflake.ID `gorm:"not null;uniqueIndex:ux_commissions_reservation" json:"reservation_id"`
	AgentID       snowflake.ID `gorm:"not null;index" json:"agent_id"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Currency      string       `gorm:"not null;default:USD" json:"currency"`
	Status        Status       `gorm:"not null;default:UNPAID" json:"status"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Commission) TableName() string { return "commissions" }
