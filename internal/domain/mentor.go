package domain

import "time"

// MentorProfile is the directory entry of a mentor. List fields hold JSON arrays.
type MentorProfile struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	UserID          int64     `json:"user_id" gorm:"uniqueIndex;not null"`
	Headline        string    `json:"headline" gorm:"type:varchar(255)"`
	Bio             string    `json:"bio" gorm:"type:text"`
	Country         string    `json:"country" gorm:"type:varchar(64)"`
	Timezone        string    `json:"timezone" gorm:"type:varchar(64)"`
	Specialties     string    `json:"-" gorm:"type:text"`
	Languages       string    `json:"-" gorm:"type:text"`
	SessionKinds    string    `json:"-" gorm:"type:text"`
	YearsExperience int       `json:"years_experience"`
	Published       bool      `json:"published" gorm:"not null;default:false;index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (MentorProfile) TableName() string { return "mentor_profiles" }
