package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Booking struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	Reference     string        `json:"reference" gorm:"type:varchar(36);uniqueIndex;not null"`
	MentorID      int64         `json:"mentor_id" gorm:"not null;index;uniqueIndex:idx_no_overbooking,priority:1,where:status <> 'cancelled'"`
	MenteeID      *int64        `json:"mentee_id,omitempty" gorm:"index"`
	MenteeEmail   string        `json:"mentee_email" gorm:"type:varchar(255)"`
	Date          string        `json:"date" gorm:"type:varchar(10);not null"`
	StartLocal    string        `json:"start_local" gorm:"type:varchar(19);not null;uniqueIndex:idx_no_overbooking,priority:2,where:status <> 'cancelled'"`
	EndLocal      string        `json:"end_local" gorm:"type:varchar(19);not null"`
	Timezone      string        `json:"timezone" gorm:"type:varchar(64);not null"`
	SessionKind   string        `json:"session_kind,omitempty" gorm:"type:varchar(32)"`
	PriceCents    int64         `json:"price_cents"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null;default:'unpaid'"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }
