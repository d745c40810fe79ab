package payment

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Payment tracks a booking's transaction through the external
// gateway. One row per booking; status only ever moves out of
// pending, never out of a terminal state.
type Payment struct {
	ID             int64     `gorm:"primaryKey"`
	BookingID      int64     `gorm:"column:booking_id;not null;uniqueIndex"`
	TransactionID  *string   `gorm:"column:transaction_id"`
	Amount         float64   `gorm:"column:amount;not null"`
	Status         string    `gorm:"column:status;default:pending"`
	ChapaReference *string   `gorm:"column:chapa_reference"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Payment) TableName() string {
	return "payments"
}

// IsTerminal reports whether the payment has reached a final state.
func (p *Payment) IsTerminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusFailed
}
