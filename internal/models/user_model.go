package models

import (
	"time"
)

const (
	UserTypePatient = "patient"
	UserTypeDoctor  = "doctor"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Gender    string    `gorm:"size:10;not null" json:"gender"`
	DOB       time.Time `gorm:"type:date;not null" json:"dob"`
	Phone     string    `gorm:"size:15;not null" json:"phone"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	UserType  string    `gorm:"size:10;not null;index" json:"user_type"` // patient or doctor
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
