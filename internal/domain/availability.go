package domain

import "time"

// AvailabilitySlot is one stored bookable interval. StartLocal/EndLocal are
// wall-clock timestamps (2006-01-02T15:04:05) interpreted in Timezone.
type AvailabilitySlot struct {
	ID         int64     `gorm:"primaryKey"`
	MentorID   int64     `gorm:"not null;uniqueIndex:idx_slot_key,priority:1;index:idx_slot_day,priority:1"`
	Date       string    `gorm:"type:varchar(10);not null;index:idx_slot_day,priority:2"`
	StartLocal string    `gorm:"type:varchar(19);not null;uniqueIndex:idx_slot_key,priority:2"`
	EndLocal   string    `gorm:"type:varchar(19);not null;uniqueIndex:idx_slot_key,priority:3"`
	Timezone   string    `gorm:"type:varchar(64);not null"`
	Booked     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (AvailabilitySlot) TableName() string { return "availability_slots" }
