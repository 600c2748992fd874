package doctor

import (
	"errors"

	"clinic-backend/internal/response"
	"clinic-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

func CreateDoctorHandler(c *fiber.Ctx) error {
	var body struct {
		UserID            uint     `json:"user_id"`
		Name              string   `json:"name"`
		Specialization    string   `json:"specialization"`
		YearsOfExperience int      `json:"years_of_experience"`
		Email             string   `json:"email"`
		Phone             string   `json:"phone"`
		Bio               string   `json:"bio"`
		ProfilePic        string   `json:"profile_pic"`
		ConsultationFee   *float64 `json:"consultation_fee"`
		ClinicAddress     string   `json:"clinic_address"`
		Qualifications    []string `json:"qualifications"`
		Languages         []string `json:"languages"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.UserID == 0 || body.Name == "" || body.Specialization == "" ||
		body.Email == "" || body.Phone == "" {
		return response.ValidationError(c, map[string]string{
			"user_id":        "user_id is required",
			"name":           "name is required",
			"specialization": "specialization is required",
			"email":          "email is required",
			"phone":          "phone is required",
		})
	}

	d, err := Create(CreateDoctorInput{
		UserID:            body.UserID,
		Name:              body.Name,
		Specialization:    body.Specialization,
		YearsOfExperience: body.YearsOfExperience,
		Email:             body.Email,
		Phone:             body.Phone,
		Bio:               sanitizer.Sanitize(body.Bio),
		ProfilePic:        body.ProfilePic,
		ConsultationFee:   body.ConsultationFee,
		ClinicAddress:     body.ClinicAddress,
		Qualifications:    body.Qualifications,
		Languages:         body.Languages,
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return response.Conflict(c, "Doctor with this email or user_id already exists")
		}
		return response.InternalError(c, "Failed to create doctor")
	}

	return response.Created(c, fiber.Map{"doctor": d}, "Doctor profile created successfully")
}

func ListDoctorsHandler(c *fiber.Ctx) error {
	var err error
	var doctors interface{}

	switch {
	case c.Query("specialization") != "":
		doctors, err = ListBySpecialization(c.Query("specialization"))
	case c.Query("available") == "true":
		doctors, err = ListAvailable()
	default:
		doctors, err = List()
	}
	if err != nil {
		return response.InternalError(c, "Failed to fetch doctors")
	}

	return response.Success(c, doctors, "Doctors retrieved successfully")
}

func SearchDoctorsHandler(c *fiber.Ctx) error {
	doctors, err := Search(c.Query("q"))
	if err != nil {
		return response.InternalError(c, "Failed to search doctors")
	}

	return response.Success(c, doctors, "Doctors retrieved successfully")
}

func GetDoctorHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID", nil)
	}

	d, err := Get(uint(id))
	if err != nil {
		return response.NotFound(c, "Doctor")
	}

	return response.Success(c, d, "Doctor retrieved successfully")
}

func GetDoctorByUserHandler(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	d, err := GetByUserID(uint(userID))
	if err != nil {
		return response.NotFound(c, "Doctor")
	}

	return response.Success(c, d, "Doctor retrieved successfully")
}

func UpdateDoctorHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID", nil)
	}

	var body struct {
		Name              string   `json:"name"`
		Specialization    string   `json:"specialization"`
		YearsOfExperience *int     `json:"years_of_experience"`
		Phone             string   `json:"phone"`
		Bio               *string  `json:"bio"`
		ProfilePic        string   `json:"profile_pic"`
		ConsultationFee   *float64 `json:"consultation_fee"`
		ClinicAddress     *string  `json:"clinic_address"`
		Qualifications    []string `json:"qualifications"`
		Languages         []string `json:"languages"`
		IsAvailable       *bool    `json:"is_available"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Bio != nil {
		clean := sanitizer.Sanitize(*body.Bio)
		body.Bio = &clean
	}

	d, err := Update(uint(id), UpdateDoctorInput{
		Name:              body.Name,
		Specialization:    body.Specialization,
		YearsOfExperience: body.YearsOfExperience,
		Phone:             body.Phone,
		Bio:               body.Bio,
		ProfilePic:        body.ProfilePic,
		ConsultationFee:   body.ConsultationFee,
		ClinicAddress:     body.ClinicAddress,
		Qualifications:    body.Qualifications,
		Languages:         body.Languages,
		IsAvailable:       body.IsAvailable,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Doctor")
		}
		return response.InternalError(c, "Failed to update doctor")
	}

	return response.Success(c, fiber.Map{"doctor": d}, "Doctor profile updated successfully")
}

func DeleteDoctorHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID", nil)
	}

	if err := Deactivate(uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Doctor")
		}
		return response.InternalError(c, "Failed to deactivate doctor")
	}

	return response.NoContent(c)
}

func ActivateDoctorHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID", nil)
	}

	if err := Activate(uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Doctor")
		}
		return response.InternalError(c, "Failed to activate doctor")
	}

	return response.Success(c, nil, "Doctor activated successfully")
}

func ToggleAvailabilityHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID", nil)
	}

	d, err := ToggleAvailability(uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Doctor")
		}
		return response.InternalError(c, "Failed to toggle availability")
	}

	return response.Success(c, fiber.Map{"doctor": d}, "Doctor availability toggled successfully")
}

// UploadProfilePicHandler stores the uploaded image on local disk or S3
// and swaps the doctor's profile_pic, removing the previous file.
func UploadProfilePicHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID", nil)
	}

	d, err := Get(uint(id))
	if err != nil {
		return response.NotFound(c, "Doctor")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file uploaded", err.Error())
	}

	url, err := utils.UploadFile(file)
	if err != nil {
		return response.InternalError(c, "Failed to store file")
	}

	oldPic := d.ProfilePic
	d, err = Update(uint(id), UpdateDoctorInput{ProfilePic: url})
	if err != nil {
		return response.InternalError(c, "Failed to update doctor")
	}

	if oldPic != "" {
		_ = utils.DeleteFile(oldPic)
	}

	return response.Success(c, fiber.Map{"doctor": d}, "Profile picture uploaded successfully")
}
