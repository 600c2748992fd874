package doctor

import (
	"errors"
	"strings"

	"clinic-backend/internal/database"
	"clinic-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("doctor not found")
	ErrConflict = errors.New("doctor with this email or user_id already exists")
)

type CreateDoctorInput struct {
	UserID            uint
	Name              string
	Specialization    string
	YearsOfExperience int
	Email             string
	Phone             string
	Bio               string
	ProfilePic        string
	ConsultationFee   *float64
	ClinicAddress     string
	Qualifications    []string
	Languages         []string
}

type UpdateDoctorInput struct {
	Name              string
	Specialization    string
	YearsOfExperience *int
	Phone             string
	Bio               *string
	ProfilePic        string
	ConsultationFee   *float64
	ClinicAddress     *string
	Qualifications    []string
	Languages         []string
	IsAvailable       *bool
}

// Create rejects a duplicate email or user_id with a single combined
// pre-check; either condition trips the Conflict. The unique indexes
// settle races between concurrent creates.
func Create(in CreateDoctorInput) (*models.Doctor, error) {
	var existing models.Doctor
	if err := database.DB.Where("email = ? OR user_id = ?", in.Email, in.UserID).
		First(&existing).Error; err == nil {
		return nil, ErrConflict
	}

	d := models.Doctor{
		UserID:            in.UserID,
		Name:              in.Name,
		Specialization:    in.Specialization,
		YearsOfExperience: in.YearsOfExperience,
		Email:             in.Email,
		Phone:             in.Phone,
		Bio:               in.Bio,
		ProfilePic:        in.ProfilePic,
		ConsultationFee:   in.ConsultationFee,
		ClinicAddress:     in.ClinicAddress,
		Qualifications:    datatypes.NewJSONSlice(in.Qualifications),
		Languages:         datatypes.NewJSONSlice(in.Languages),
		IsAvailable:       true,
		IsActive:          true,
	}

	if err := database.DB.Create(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return &d, nil
}

func List() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := database.DB.Where("is_active = ?", true).
		Preload("User").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	stripUserPasswords(doctors)
	return doctors, nil
}

// Get finds a doctor by id regardless of is_active state.
func Get(id uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := database.DB.Preload("User").First(&d, id).Error; err != nil {
		return nil, ErrNotFound
	}
	stripUserPassword(&d)
	return &d, nil
}

func GetByUserID(userID uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := database.DB.Where("user_id = ?", userID).
		Preload("User").First(&d).Error; err != nil {
		return nil, ErrNotFound
	}
	stripUserPassword(&d)
	return &d, nil
}

func ListBySpecialization(specialization string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := database.DB.
		Where("specialization = ? AND is_active = ? AND is_available = ?", specialization, true, true).
		Preload("User").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	stripUserPasswords(doctors)
	return doctors, nil
}

func ListAvailable() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := database.DB.
		Where("is_active = ? AND is_available = ?", true, true).
		Preload("User").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	stripUserPasswords(doctors)
	return doctors, nil
}

// Search matches the query as a case-insensitive substring of the name,
// specialization or bio of active, available doctors. An empty query
// matches everything.
func Search(query string) ([]models.Doctor, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var doctors []models.Doctor
	err := database.DB.
		Where("is_active = ? AND is_available = ?", true, true).
		Where("LOWER(name) LIKE ? OR LOWER(specialization) LIKE ? OR LOWER(bio) LIKE ?",
			pattern, pattern, pattern).
		Preload("User").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	stripUserPasswords(doctors)
	return doctors, nil
}

// Update mutates any field except id, user_id and email.
func Update(id uint, in UpdateDoctorInput) (*models.Doctor, error) {
	var d models.Doctor
	if err := database.DB.First(&d, id).Error; err != nil {
		return nil, ErrNotFound
	}

	if in.Name != "" {
		d.Name = in.Name
	}
	if in.Specialization != "" {
		d.Specialization = in.Specialization
	}
	if in.YearsOfExperience != nil {
		d.YearsOfExperience = *in.YearsOfExperience
	}
	if in.Phone != "" {
		d.Phone = in.Phone
	}
	if in.Bio != nil {
		d.Bio = *in.Bio
	}
	if in.ProfilePic != "" {
		d.ProfilePic = in.ProfilePic
	}
	if in.ConsultationFee != nil {
		d.ConsultationFee = in.ConsultationFee
	}
	if in.ClinicAddress != nil {
		d.ClinicAddress = *in.ClinicAddress
	}
	if in.Qualifications != nil {
		d.Qualifications = datatypes.NewJSONSlice(in.Qualifications)
	}
	if in.Languages != nil {
		d.Languages = datatypes.NewJSONSlice(in.Languages)
	}
	if in.IsAvailable != nil {
		d.IsAvailable = *in.IsAvailable
	}

	if err := database.DB.Save(&d).Error; err != nil {
		return nil, err
	}

	return Get(id)
}

func Deactivate(id uint) error {
	return setActive(id, false)
}

func Activate(id uint) error {
	return setActive(id, true)
}

func setActive(id uint, active bool) error {
	var d models.Doctor
	if err := database.DB.First(&d, id).Error; err != nil {
		return ErrNotFound
	}
	return database.DB.Model(&d).Update("is_active", active).Error
}

// ToggleAvailability flips is_available independently of is_active and
// returns the refreshed record.
func ToggleAvailability(id uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := database.DB.First(&d, id).Error; err != nil {
		return nil, ErrNotFound
	}

	if err := database.DB.Model(&d).Update("is_available", !d.IsAvailable).Error; err != nil {
		return nil, err
	}

	return Get(id)
}

func stripUserPassword(d *models.Doctor) {
	if d.User != nil {
		d.User.Password = ""
	}
}

func stripUserPasswords(doctors []models.Doctor) {
	for i := range doctors {
		stripUserPassword(&doctors[i])
	}
}
