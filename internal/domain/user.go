package domain

import "time"

type UserRole string

const (
	RoleMentor UserRole = "mentor"
	RoleMentee UserRole = "mentee"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleMentor, RoleMentee, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                  int64     `json:"id" gorm:"primaryKey"`
	Email               string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null" validate:"required,email"`
	PasswordHash        string    `json:"-" gorm:"not null"`
	Name                string    `json:"name" gorm:"type:varchar(255)"`
	Role                UserRole  `json:"role" gorm:"type:varchar(16);not null;index"`
	OnboardingCompleted bool      `json:"onboarding_completed" gorm:"not null;default:false"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
