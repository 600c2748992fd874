package user

import (
	"errors"
	"time"

	"clinic-backend/internal/models"
	"clinic-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

func RegisterHandler(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Gender   string `json:"gender"`
		DOB      string `json:"dob"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		UserType string `json:"user_type"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Name == "" || body.Email == "" || body.Password == "" ||
		body.Gender == "" || body.DOB == "" || body.Phone == "" ||
		body.Address == "" || body.UserType == "" {
		return response.ValidationError(c, map[string]string{
			"name":      "name is required",
			"email":     "email is required",
			"password":  "password is required",
			"gender":    "gender is required",
			"dob":       "dob is required",
			"phone":     "phone is required",
			"address":   "address is required",
			"user_type": "user_type is required",
		})
	}

	if body.UserType != models.UserTypePatient && body.UserType != models.UserTypeDoctor {
		return response.BadRequest(c, "user_type must be 'patient' or 'doctor'", nil)
	}

	dob, err := time.Parse("2006-01-02", body.DOB)
	if err != nil {
		return response.BadRequest(c, "dob must be in YYYY-MM-DD format", nil)
	}

	u, err := Register(CreateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Gender:   body.Gender,
		DOB:      dob,
		Phone:    body.Phone,
		Address:  body.Address,
		UserType: body.UserType,
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return response.Conflict(c, "User with this email already exists")
		}
		return response.InternalError(c, "Failed to create user")
	}

	u.Password = ""

	return response.Created(c, fiber.Map{"user": u}, "User registered successfully")
}

func LoginHandler(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" || body.Password == "" {
		return response.ValidationError(c, map[string]string{
			"email":    "email is required",
			"password": "password is required",
		})
	}

	u, err := Login(body.Email, body.Password)
	if err != nil {
		return response.NotFound(c, "User")
	}

	u.Password = ""

	return response.Success(c, fiber.Map{"user": u}, "Login successful")
}

func ListUsersHandler(c *fiber.Ctx) error {
	users, err := List(c.Query("user_type"))
	if err != nil {
		return response.InternalError(c, "Failed to fetch users")
	}

	return response.Success(c, users, "Users retrieved successfully")
}

func GetUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	u, err := Get(uint(id))
	if err != nil {
		return response.NotFound(c, "User")
	}

	return response.Success(c, u, "User retrieved successfully")
}

func GetUserByEmailHandler(c *fiber.Ctx) error {
	u, err := GetByEmail(c.Params("email"))
	if err != nil {
		return response.NotFound(c, "User")
	}

	return response.Success(c, u, "User retrieved successfully")
}

func UpdateUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var body struct {
		Name    string `json:"name"`
		Gender  string `json:"gender"`
		DOB     string `json:"dob"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	in := UpdateUserInput{
		Name:    body.Name,
		Gender:  body.Gender,
		Phone:   body.Phone,
		Address: body.Address,
	}
	if body.DOB != "" {
		dob, err := time.Parse("2006-01-02", body.DOB)
		if err != nil {
			return response.BadRequest(c, "dob must be in YYYY-MM-DD format", nil)
		}
		in.DOB = &dob
	}

	u, err := Update(uint(id), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "User")
		}
		return response.InternalError(c, "Failed to update user")
	}

	return response.Success(c, fiber.Map{"user": u}, "User updated successfully")
}

func DeleteUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	if err := Deactivate(uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "User")
		}
		return response.InternalError(c, "Failed to deactivate user")
	}

	return response.NoContent(c)
}

func ActivateUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	if err := Activate(uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "User")
		}
		return response.InternalError(c, "Failed to activate user")
	}

	return response.Success(c, nil, "User activated successfully")
}
