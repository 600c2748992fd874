package patient

import (
	"errors"
	"math"
	"strings"

	"clinic-backend/internal/database"
	"clinic-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("patient not found")
	ErrConflict = errors.New("patient profile already exists for this user")
)

type CreatePatientInput struct {
	UserID                   uint
	MedicalHistory           string
	Allergies                string
	CurrentMedications       string
	Notes                    string
	BloodType                string
	EmergencyContactName     string
	EmergencyContactPhone    string
	EmergencyContactRelation string
	InsuranceProvider        string
	InsurancePolicyNumber    string
	Height                   *float64
	Weight                   *float64
	ChronicConditions        []string
	PreviousSurgeries        []string
	IsSmoker                 bool
	IsAlcoholic              bool
}

type UpdatePatientInput struct {
	MedicalHistory           *string
	Allergies                *string
	CurrentMedications       *string
	Notes                    *string
	BloodType                string
	EmergencyContactName     string
	EmergencyContactPhone    string
	EmergencyContactRelation string
	InsuranceProvider        string
	InsurancePolicyNumber    string
	Height                   *float64
	Weight                   *float64
	ChronicConditions        []string
	PreviousSurgeries        []string
	IsSmoker                 *bool
	IsAlcoholic              *bool
}

// Stats aggregates over active patients only.
type Stats struct {
	TotalPatients int64            `json:"total_patients"`
	ByBloodType   map[string]int64 `json:"by_blood_type"`
	Smokers       int64            `json:"smokers"`
	Alcoholics    int64            `json:"alcoholics"`
}

// Create enforces one patient profile per user. The unique index on
// patients.user_id settles races between concurrent creates.
func Create(in CreatePatientInput) (*models.Patient, error) {
	var existing models.Patient
	if err := database.DB.Where("user_id = ?", in.UserID).First(&existing).Error; err == nil {
		return nil, ErrConflict
	}

	p := models.Patient{
		UserID:                   in.UserID,
		MedicalHistory:           in.MedicalHistory,
		Allergies:                in.Allergies,
		CurrentMedications:       in.CurrentMedications,
		Notes:                    in.Notes,
		BloodType:                in.BloodType,
		EmergencyContactName:     in.EmergencyContactName,
		EmergencyContactPhone:    in.EmergencyContactPhone,
		EmergencyContactRelation: in.EmergencyContactRelation,
		InsuranceProvider:        in.InsuranceProvider,
		InsurancePolicyNumber:    in.InsurancePolicyNumber,
		Height:                   in.Height,
		Weight:                   in.Weight,
		ChronicConditions:        datatypes.NewJSONSlice(in.ChronicConditions),
		PreviousSurgeries:        datatypes.NewJSONSlice(in.PreviousSurgeries),
		IsSmoker:                 in.IsSmoker,
		IsAlcoholic:              in.IsAlcoholic,
		IsActive:                 true,
	}

	if err := database.DB.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return &p, nil
}

func List() ([]models.Patient, error) {
	var patients []models.Patient
	err := database.DB.Where("is_active = ?", true).
		Preload("User").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	stripUserPasswords(patients)
	return patients, nil
}

// Get finds a patient by id regardless of is_active state.
func Get(id uint) (*models.Patient, error) {
	var p models.Patient
	if err := database.DB.Preload("User").First(&p, id).Error; err != nil {
		return nil, ErrNotFound
	}
	stripUserPassword(&p)
	return &p, nil
}

func GetByUserID(userID uint) (*models.Patient, error) {
	var p models.Patient
	if err := database.DB.Where("user_id = ?", userID).
		Preload("User").First(&p).Error; err != nil {
		return nil, ErrNotFound
	}
	stripUserPassword(&p)
	return &p, nil
}

// ListByBloodType deliberately applies no is_active filter, unlike the
// other read paths. Known inconsistency, kept for compatibility.
func ListByBloodType(bloodType string) ([]models.Patient, error) {
	var patients []models.Patient
	err := database.DB.Where("blood_type = ?", bloodType).
		Preload("User").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	stripUserPasswords(patients)
	return patients, nil
}

// ListByChronicCondition matches the condition as an exact element of
// the chronic_conditions list. The filter runs in Go over the decoded
// JSON so postgres and sqlite behave identically.
func ListByChronicCondition(condition string) ([]models.Patient, error) {
	active, err := List()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Patient, 0)
	for _, p := range active {
		for _, c := range p.ChronicConditions {
			if c == condition {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched, nil
}

// Search matches the query as a case-insensitive substring of the
// medical history, allergies or notes of active patients. An empty
// query matches everything.
func Search(query string) ([]models.Patient, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var patients []models.Patient
	err := database.DB.Where("is_active = ?", true).
		Where("LOWER(medical_history) LIKE ? OR LOWER(allergies) LIKE ? OR LOWER(notes) LIKE ?",
			pattern, pattern, pattern).
		Preload("User").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	stripUserPasswords(patients)
	return patients, nil
}

// ComputeBMI returns nil (not an error) when height or weight is
// missing or non-positive. BMI = kg / m², rounded to two decimals.
func ComputeBMI(id uint) (*float64, error) {
	var p models.Patient
	if err := database.DB.First(&p, id).Error; err != nil {
		return nil, ErrNotFound
	}

	if p.Height == nil || p.Weight == nil || *p.Height <= 0 || *p.Weight <= 0 {
		return nil, nil
	}

	heightM := *p.Height / 100
	bmi := math.Round(*p.Weight/(heightM*heightM)*100) / 100
	return &bmi, nil
}

// BMIStatus classifies a BMI value. The 25.0 boundary belongs to
// Overweight.
func BMIStatus(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func GetStats() (*Stats, error) {
	stats := &Stats{ByBloodType: make(map[string]int64)}

	active := func() *gorm.DB {
		return database.DB.Model(&models.Patient{}).Where("is_active = ?", true)
	}

	if err := active().Count(&stats.TotalPatients).Error; err != nil {
		return nil, err
	}

	rows, err := active().
		Select("blood_type, COUNT(*) as count").
		Where("blood_type <> ''").
		Group("blood_type").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var bloodType string
		var count int64
		if err := rows.Scan(&bloodType, &count); err != nil {
			return nil, err
		}
		stats.ByBloodType[bloodType] = count
	}

	if err := active().Where("is_smoker = ?", true).Count(&stats.Smokers).Error; err != nil {
		return nil, err
	}
	if err := active().Where("is_alcoholic = ?", true).Count(&stats.Alcoholics).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// Update mutates any field except user_id.
func Update(id uint, in UpdatePatientInput) (*models.Patient, error) {
	var p models.Patient
	if err := database.DB.First(&p, id).Error; err != nil {
		return nil, ErrNotFound
	}

	if in.MedicalHistory != nil {
		p.MedicalHistory = *in.MedicalHistory
	}
	if in.Allergies != nil {
		p.Allergies = *in.Allergies
	}
	if in.CurrentMedications != nil {
		p.CurrentMedications = *in.CurrentMedications
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if in.BloodType != "" {
		p.BloodType = in.BloodType
	}
	if in.EmergencyContactName != "" {
		p.EmergencyContactName = in.EmergencyContactName
	}
	if in.EmergencyContactPhone != "" {
		p.EmergencyContactPhone = in.EmergencyContactPhone
	}
	if in.EmergencyContactRelation != "" {
		p.EmergencyContactRelation = in.EmergencyContactRelation
	}
	if in.InsuranceProvider != "" {
		p.InsuranceProvider = in.InsuranceProvider
	}
	if in.InsurancePolicyNumber != "" {
		p.InsurancePolicyNumber = in.InsurancePolicyNumber
	}
	if in.Height != nil {
		p.Height = in.Height
	}
	if in.Weight != nil {
		p.Weight = in.Weight
	}
	if in.ChronicConditions != nil {
		p.ChronicConditions = datatypes.NewJSONSlice(in.ChronicConditions)
	}
	if in.PreviousSurgeries != nil {
		p.PreviousSurgeries = datatypes.NewJSONSlice(in.PreviousSurgeries)
	}
	if in.IsSmoker != nil {
		p.IsSmoker = *in.IsSmoker
	}
	if in.IsAlcoholic != nil {
		p.IsAlcoholic = *in.IsAlcoholic
	}

	if err := database.DB.Save(&p).Error; err != nil {
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
	var p models.Patient
	if err := database.DB.First(&p, id).Error; err != nil {
		return ErrNotFound
	}
	return database.DB.Model(&p).Update("is_active", active).Error
}

func stripUserPassword(p *models.Patient) {
	if p.User != nil {
		p.User.Password = ""
	}
}

func stripUserPasswords(patients []models.Patient) {
	for i := range patients {
		stripUserPassword(&patients[i])
	}
}
