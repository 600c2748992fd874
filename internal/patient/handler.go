package patient

import (
	"errors"

	"clinic-backend/internal/models"
	"clinic-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

func CreatePatientHandler(c *fiber.Ctx) error {
	var body struct {
		UserID                   uint     `json:"user_id"`
		MedicalHistory           string   `json:"medical_history"`
		Allergies                string   `json:"allergies"`
		CurrentMedications       string   `json:"current_medications"`
		Notes                    string   `json:"notes"`
		BloodType                string   `json:"blood_type"`
		EmergencyContactName     string   `json:"emergency_contact_name"`
		EmergencyContactPhone    string   `json:"emergency_contact_phone"`
		EmergencyContactRelation string   `json:"emergency_contact_relation"`
		InsuranceProvider        string   `json:"insurance_provider"`
		InsurancePolicyNumber    string   `json:"insurance_policy_number"`
		Height                   *float64 `json:"height"`
		Weight                   *float64 `json:"weight"`
		ChronicConditions        []string `json:"chronic_conditions"`
		PreviousSurgeries        []string `json:"previous_surgeries"`
		IsSmoker                 bool     `json:"is_smoker"`
		IsAlcoholic              bool     `json:"is_alcoholic"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.UserID == 0 {
		return response.ValidationError(c, map[string]string{
			"user_id": "user_id is required",
		})
	}

	if body.BloodType != "" && !models.IsValidBloodType(body.BloodType) {
		return response.BadRequest(c, "blood_type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-", nil)
	}

	p, err := Create(CreatePatientInput{
		UserID:                   body.UserID,
		MedicalHistory:           sanitizer.Sanitize(body.MedicalHistory),
		Allergies:                sanitizer.Sanitize(body.Allergies),
		CurrentMedications:       sanitizer.Sanitize(body.CurrentMedications),
		Notes:                    sanitizer.Sanitize(body.Notes),
		BloodType:                body.BloodType,
		EmergencyContactName:     body.EmergencyContactName,
		EmergencyContactPhone:    body.EmergencyContactPhone,
		EmergencyContactRelation: body.EmergencyContactRelation,
		InsuranceProvider:        body.InsuranceProvider,
		InsurancePolicyNumber:    body.InsurancePolicyNumber,
		Height:                   body.Height,
		Weight:                   body.Weight,
		ChronicConditions:        body.ChronicConditions,
		PreviousSurgeries:        body.PreviousSurgeries,
		IsSmoker:                 body.IsSmoker,
		IsAlcoholic:              body.IsAlcoholic,
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return response.Conflict(c, "Patient profile already exists for this user")
		}
		return response.InternalError(c, "Failed to create patient")
	}

	return response.Created(c, fiber.Map{"patient": p}, "Patient profile created successfully")
}

func ListPatientsHandler(c *fiber.Ctx) error {
	if bloodType := c.Query("blood_type"); bloodType != "" {
		patients, err := ListByBloodType(bloodType)
		if err != nil {
			return response.InternalError(c, "Failed to fetch patients")
		}
		return response.Success(c, patients, "Patients retrieved successfully")
	}

	patients, err := List()
	if err != nil {
		return response.InternalError(c, "Failed to fetch patients")
	}

	return response.Success(c, patients, "Patients retrieved successfully")
}

func SearchPatientsHandler(c *fiber.Ctx) error {
	patients, err := Search(c.Query("q"))
	if err != nil {
		return response.InternalError(c, "Failed to search patients")
	}

	return response.Success(c, patients, "Patients retrieved successfully")
}

func GetPatientStatsHandler(c *fiber.Ctx) error {
	stats, err := GetStats()
	if err != nil {
		return response.InternalError(c, "Failed to compute patient statistics")
	}

	return response.Success(c, stats, "Patient statistics retrieved successfully")
}

func ListByConditionHandler(c *fiber.Ctx) error {
	patients, err := ListByChronicCondition(c.Params("condition"))
	if err != nil {
		return response.InternalError(c, "Failed to fetch patients")
	}

	return response.Success(c, patients, "Patients retrieved successfully")
}

func GetPatientHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID", nil)
	}

	p, err := Get(uint(id))
	if err != nil {
		return response.NotFound(c, "Patient")
	}

	return response.Success(c, p, "Patient retrieved successfully")
}

func GetPatientBMIHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID", nil)
	}

	bmi, err := ComputeBMI(uint(id))
	if err != nil {
		return response.NotFound(c, "Patient")
	}

	status := "Cannot calculate - missing height or weight"
	if bmi != nil {
		status = BMIStatus(*bmi)
	}

	return response.Success(c, fiber.Map{
		"patient_id": uint(id),
		"bmi":        bmi,
		"status":     status,
	}, "BMI computed successfully")
}

func GetPatientByUserHandler(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	p, err := GetByUserID(uint(userID))
	if err != nil {
		return response.NotFound(c, "Patient")
	}

	return response.Success(c, p, "Patient retrieved successfully")
}

func UpdatePatientHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID", nil)
	}

	var body struct {
		MedicalHistory           *string  `json:"medical_history"`
		Allergies                *string  `json:"allergies"`
		CurrentMedications       *string  `json:"current_medications"`
		Notes                    *string  `json:"notes"`
		BloodType                string   `json:"blood_type"`
		EmergencyContactName     string   `json:"emergency_contact_name"`
		EmergencyContactPhone    string   `json:"emergency_contact_phone"`
		EmergencyContactRelation string   `json:"emergency_contact_relation"`
		InsuranceProvider        string   `json:"insurance_provider"`
		InsurancePolicyNumber    string   `json:"insurance_policy_number"`
		Height                   *float64 `json:"height"`
		Weight                   *float64 `json:"weight"`
		ChronicConditions        []string `json:"chronic_conditions"`
		PreviousSurgeries        []string `json:"previous_surgeries"`
		IsSmoker                 *bool    `json:"is_smoker"`
		IsAlcoholic              *bool    `json:"is_alcoholic"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.BloodType != "" && !models.IsValidBloodType(body.BloodType) {
		return response.BadRequest(c, "blood_type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-", nil)
	}

	for _, field := range []**string{&body.MedicalHistory, &body.Allergies, &body.CurrentMedications, &body.Notes} {
		if *field != nil {
			clean := sanitizer.Sanitize(**field)
			*field = &clean
		}
	}

	p, err := Update(uint(id), UpdatePatientInput{
		MedicalHistory:           body.MedicalHistory,
		Allergies:                body.Allergies,
		CurrentMedications:       body.CurrentMedications,
		Notes:                    body.Notes,
		BloodType:                body.BloodType,
		EmergencyContactName:     body.EmergencyContactName,
		EmergencyContactPhone:    body.EmergencyContactPhone,
		EmergencyContactRelation: body.EmergencyContactRelation,
		InsuranceProvider:        body.InsuranceProvider,
		InsurancePolicyNumber:    body.InsurancePolicyNumber,
		Height:                   body.Height,
		Weight:                   body.Weight,
		ChronicConditions:        body.ChronicConditions,
		PreviousSurgeries:        body.PreviousSurgeries,
		IsSmoker:                 body.IsSmoker,
		IsAlcoholic:              body.IsAlcoholic,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Patient")
		}
		return response.InternalError(c, "Failed to update patient")
	}

	return response.Success(c, fiber.Map{"patient": p}, "Patient profile updated successfully")
}

func DeletePatientHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID", nil)
	}

	if err := Deactivate(uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Patient")
		}
		return response.InternalError(c, "Failed to deactivate patient")
	}

	return response.NoContent(c)
}

func ActivatePatientHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID", nil)
	}

	if err := Activate(uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Patient")
		}
		return response.InternalError(c, "Failed to activate patient")
	}

	return response.Success(c, nil, "Patient activated successfully")
}
