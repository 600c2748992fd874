package models

import (
	"time"

	"gorm.io/datatypes"
)

// The eight ABO/Rh blood types. Stored as-is ("A+", "O-", ...).
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func IsValidBloodType(bt string) bool {
	for _, v := range BloodTypes {
		if v == bt {
			return true
		}
	}
	return false
}

type Patient struct {
	ID                       uint                        `gorm:"primaryKey" json:"id"`
	UserID                   uint                        `gorm:"uniqueIndex;not null" json:"user_id"`
	User                     *User                       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	MedicalHistory           string                      `gorm:"type:text" json:"medical_history,omitempty"`
	Allergies                string                      `gorm:"type:text" json:"allergies,omitempty"`
	CurrentMedications       string                      `gorm:"type:text" json:"current_medications,omitempty"`
	Notes                    string                      `gorm:"type:text" json:"notes,omitempty"`
	BloodType                string                      `gorm:"size:3;index" json:"blood_type,omitempty"`
	EmergencyContactName     string                      `gorm:"size:255" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone    string                      `gorm:"size:15" json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelation string                      `gorm:"size:255" json:"emergency_contact_relation,omitempty"`
	InsuranceProvider        string                      `gorm:"size:255" json:"insurance_provider,omitempty"`
	InsurancePolicyNumber    string                      `gorm:"size:100" json:"insurance_policy_number,omitempty"`
	Height                   *float64                    `gorm:"type:decimal(5,2)" json:"height,omitempty"` // cm
	Weight                   *float64                    `gorm:"type:decimal(5,2)" json:"weight,omitempty"` // kg
	ChronicConditions        datatypes.JSONSlice[string] `json:"chronic_conditions,omitempty"`
	PreviousSurgeries        datatypes.JSONSlice[string] `json:"previous_surgeries,omitempty"`
	IsSmoker                 bool                        `gorm:"default:false" json:"is_smoker"`
	IsAlcoholic              bool                        `gorm:"default:false" json:"is_alcoholic"`
	IsActive                 bool                        `gorm:"default:true" json:"is_active"`
	CreatedAt                time.Time                   `json:"created_at"`
	UpdatedAt                time.Time                   `json:"updated_at"`
}
