package domain

import "time"

// OnboardingState tracks a user's progress through the role-specific wizard.
// Payload holds the validated step data as a JSON object keyed by step name.
type OnboardingState struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex;not null"`
	Role      UserRole  `json:"role" gorm:"type:varchar(16);not null"`
	NextStep  string    `json:"next_step" gorm:"type:varchar(32)"`
	Payload   string    `json:"-" gorm:"type:text"`
	Completed bool      `json:"completed" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OnboardingState) TableName() string { return "onboarding_states" }
