package user

import (
	"errors"
	"time"

	"clinic-backend/internal/database"
	"clinic-backend/internal/models"
	"clinic-backend/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("user with this email already exists")
)

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Gender   string
	DOB      time.Time
	Phone    string
	Address  string
	UserType string
}

type UpdateUserInput struct {
	Name    string
	Gender  string
	DOB     *time.Time
	Phone   string
	Address string
}

// Register creates an active user with a bcrypt-hashed password. The
// email pre-check spans active and inactive users; the unique index on
// users.email is the authoritative backstop under concurrent registers.
func Register(in CreateUserInput) (*models.User, error) {
	var existing models.User
	if err := database.DB.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return nil, ErrConflict
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Gender:   in.Gender,
		DOB:      in.DOB,
		Phone:    in.Phone,
		Address:  in.Address,
		UserType: in.UserType,
		IsActive: true,
	}

	if err := database.DB.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return &u, nil
}

// Login reports ErrNotFound for an unknown email and for a bad
// password alike, so callers cannot tell which check failed.
func Login(email, password string) (*models.User, error) {
	var u models.User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, ErrNotFound
	}

	if !utils.CheckPasswordHash(password, u.Password) {
		return nil, ErrNotFound
	}

	return &u, nil
}

// List returns active users only, optionally narrowed by user type.
func List(userType string) ([]models.User, error) {
	q := database.DB.Where("is_active = ?", true)
	if userType != "" {
		q = q.Where("user_type = ?", userType)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// Get finds a user by id regardless of is_active state.
func Get(id uint) (*models.User, error) {
	var u models.User
	if err := database.DB.First(&u, id).Error; err != nil {
		return nil, ErrNotFound
	}
	u.Password = ""
	return &u, nil
}

// GetByEmail returns the raw record, password hash included. Unlike
// List/Get this lookup feeds internal callers that need the hash; the
// model's json tag keeps it out of any serialized response.
func GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

// Update applies the profile fields only. Email, password and user
// type are immutable through this path.
func Update(id uint, in UpdateUserInput) (*models.User, error) {
	var u models.User
	if err := database.DB.First(&u, id).Error; err != nil {
		return nil, ErrNotFound
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Gender != "" {
		u.Gender = in.Gender
	}
	if in.DOB != nil {
		u.DOB = *in.DOB
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}

	if err := database.DB.Save(&u).Error; err != nil {
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
	var u models.User
	if err := database.DB.First(&u, id).Error; err != nil {
		return ErrNotFound
	}
	return database.DB.Model(&u).Update("is_active", active).Error
}
