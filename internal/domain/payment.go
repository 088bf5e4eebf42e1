package domain

import "time"

type PaymentIntentStatus string

const (
	PaymentIntentCreated   PaymentIntentStatus = "created"
	PaymentIntentSucceeded PaymentIntentStatus = "succeeded"
	PaymentIntentFailed    PaymentIntentStatus = "failed"

	// PaymentIntentNeedsRefund is a captured payment with lines that could not
	// be booked. FailureReason lists them.
	PaymentIntentNeedsRefund PaymentIntentStatus = "needs_refund"
)

// Settled reports whether the success event was already applied.
func (s PaymentIntentStatus) Settled() bool {
	return s == PaymentIntentSucceeded || s == PaymentIntentNeedsRefund
}

type Payment struct {
	ID            int64               `json:"id" gorm:"primaryKey"`
	IntentID      string              `json:"intent_id" gorm:"type:varchar(128);uniqueIndex;not null"`
	CartSession   string              `json:"cart_session" gorm:"type:varchar(64);index"`
	UserID        int64               `json:"user_id" gorm:"index"`
	Kind          string              `json:"kind" gorm:"type:varchar(32);not null"`
	AmountCents   int64               `json:"amount_cents" gorm:"not null"`
	Currency      string              `json:"currency" gorm:"type:varchar(8);not null"`
	Status        PaymentIntentStatus `json:"status" gorm:"type:varchar(16);not null;default:'created';index"`
	FailureReason string              `json:"failure_reason,omitempty" gorm:"type:text"`
	// Lines is the JSON copy of the cart lines the amount was computed from.
	Lines         string              `json:"-" gorm:"type:text"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
