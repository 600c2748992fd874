package models

import (
	"time"

	"gorm.io/datatypes"
)

type Doctor struct {
	ID                uint                        `gorm:"primaryKey" json:"id"`
	UserID            uint                        `gorm:"uniqueIndex;not null" json:"user_id"`
	User              *User                       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Name              string                      `gorm:"size:100;not null" json:"name"`
	Specialization    string                      `gorm:"size:100;not null;index" json:"specialization"`
	YearsOfExperience int                         `gorm:"not null" json:"years_of_experience"`
	Email             string                      `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone             string                      `gorm:"size:15;not null" json:"phone"`
	Bio               string                      `gorm:"type:text" json:"bio,omitempty"`
	ProfilePic        string                      `gorm:"size:500" json:"profile_pic,omitempty"`
	ConsultationFee   *float64                    `json:"consultation_fee,omitempty"`
	ClinicAddress     string                      `gorm:"type:text" json:"clinic_address,omitempty"`
	Qualifications    datatypes.JSONSlice[string] `json:"qualifications,omitempty"`
	Languages         datatypes.JSONSlice[string] `json:"languages,omitempty"`
	IsAvailable       bool                        `gorm:"default:true" json:"is_available"`
	IsActive          bool                        `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}
