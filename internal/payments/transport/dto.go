package transport

import (
	"time"

	"github.com/google/uuid"
)

// RecordPaymentRequest persists one client payment.
type RecordPaymentRequest struct {
	ClientID  uuid.UUID  `json:"clientId" binding:"required"`
	Amount    float64    `json:"amount" binding:"required"`
	Method    string     `json:"method" validate:"max=64"`
	Reference string     `json:"reference" validate:"max=120"`
	Notes     string     `json:"notes" validate:"max=2000"`
	PaidAt    *time.Time `json:"paidAt"`
}
