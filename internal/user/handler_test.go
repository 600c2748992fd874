package user_test

import (
	"fmt"
	"testing"

	"clinic-backend/internal/database"
	"clinic-backend/internal/models"
	"clinic-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func registerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":      "Jane Doe",
		"email":     email,
		"password":  "secret123",
		"gender":    "female",
		"dob":       "1990-05-12",
		"phone":     "5550100",
		"address":   "12 Main Street",
		"user_type": "patient",
	}
}

func TestRegisterHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Success - Register user", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/users/register", registerBody("jane@test.com"))
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.True(t, result.Success)

		data := result.Data.(map[string]interface{})
		u := data["user"].(map[string]interface{})
		assert.Equal(t, "jane@test.com", u["email"])
		assert.Equal(t, "patient", u["user_type"])
		assert.Equal(t, true, u["is_active"])
		assert.NotContains(t, u, "password")
	})

	t.Run("Password is stored hashed, never plaintext", func(t *testing.T) {
		var stored models.User
		err := db.Where("email = ?", "jane@test.com").First(&stored).Error
		assert.NoError(t, err)
		assert.NotEqual(t, "secret123", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
	})

	t.Run("Error - Duplicate email", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/users/register", registerBody("jane@test.com"))
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)

		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Error - Duplicate email of a deactivated user", func(t *testing.T) {
		var u models.User
		db.Where("email = ?", "jane@test.com").First(&u)
		db.Model(&u).Update("is_active", false)

		resp, err := testutils.MakeRequest(app, "POST", "/users/register", registerBody("jane@test.com"))
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)
	})

	t.Run("Error - Missing required fields", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/users/register", map[string]interface{}{
			"email": "incomplete@test.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Invalid user_type", func(t *testing.T) {
		body := registerBody("admin@test.com")
		body["user_type"] = "admin"

		resp, err := testutils.MakeRequest(app, "POST", "/users/register", body)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	testutils.CreateTestUser(t, db, "good@x.com", "rightpw", models.UserTypePatient)

	t.Run("Success - Login with correct credentials", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/users/login", map[string]interface{}{
			"email":    "good@x.com",
			"password": "rightpw",
		})
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, "Login successful", result.Message)

		data := result.Data.(map[string]interface{})
		u := data["user"].(map[string]interface{})
		assert.Equal(t, "good@x.com", u["email"])
		assert.NotContains(t, u, "password")
	})

	t.Run("Error - Wrong password reports not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/users/login", map[string]interface{}{
			"email":    "good@x.com",
			"password": "wrongpw",
		})
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})

	t.Run("Error - Unknown email reports the same error kind", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/users/login", map[string]interface{}{
			"email":    "nobody@x.com",
			"password": "rightpw",
		})
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}

func TestListUsersHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	testutils.CreateTestUser(t, db, "p1@test.com", "password", models.UserTypePatient)
	testutils.CreateTestUser(t, db, "p2@test.com", "password", models.UserTypePatient)
	doc := testutils.CreateTestUser(t, db, "d1@test.com", "password", models.UserTypeDoctor)
	inactive := testutils.CreateTestUser(t, db, "gone@test.com", "password", models.UserTypePatient)
	db.Model(inactive).Update("is_active", false)

	t.Run("Success - Active users only", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/users", nil)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)

		users := result.Data.([]interface{})
		assert.Len(t, users, 3)
		for _, raw := range users {
			u := raw.(map[string]interface{})
			assert.NotEqual(t, "gone@test.com", u["email"])
			assert.NotContains(t, u, "password")
		}
	})

	t.Run("Success - Filter by user_type", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/users?user_type=doctor", nil)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)

		users := result.Data.([]interface{})
		assert.Len(t, users, 1)
		u := users[0].(map[string]interface{})
		assert.Equal(t, float64(doc.ID), u["id"])
	})
}

func TestGetUserHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	u := testutils.CreateTestUser(t, db, "test@test.com", "password", models.UserTypePatient)

	t.Run("Success - Get user by ID", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/users/%d", u.ID), nil)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		testutils.AssertSuccess(t, resp)
	})

	t.Run("Success - Deactivated user stays reachable by ID", func(t *testing.T) {
		db.Model(u).Update("is_active", false)

		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/users/%d", u.ID), nil)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Success - Get user by email", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/users/email/test@test.com", nil)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		got := result.Data.(map[string]interface{})
		assert.NotContains(t, got, "password")
	})

	t.Run("Error - User not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/users/9999", nil)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})

	t.Run("Error - Email not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/users/email/nobody@test.com", nil)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}

func TestUpdateUserHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	u := testutils.CreateTestUser(t, db, "update@test.com", "password", models.UserTypePatient)

	t.Run("Success - Update profile fields", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PATCH", fmt.Sprintf("/users/%d", u.ID), map[string]interface{}{
			"name":  "Renamed",
			"phone": "5550999",
		})
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, "User updated successfully", result.Message)

		data := result.Data.(map[string]interface{})
		got := data["user"].(map[string]interface{})
		assert.Equal(t, "Renamed", got["name"])
		assert.Equal(t, "5550999", got["phone"])
	})

	t.Run("Email and user_type are immutable through update", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PATCH", fmt.Sprintf("/users/%d", u.ID), map[string]interface{}{
			"email":     "hijack@test.com",
			"user_type": "doctor",
		})
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var stored models.User
		db.First(&stored, u.ID)
		assert.Equal(t, "update@test.com", stored.Email)
		assert.Equal(t, models.UserTypePatient, stored.UserType)
	})

	t.Run("Error - User not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PATCH", "/users/9999", map[string]interface{}{
			"name": "Ghost",
		})
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}

func TestDeactivateActivateUser(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	u := testutils.CreateTestUser(t, db, "cycle@test.com", "password", models.UserTypePatient)

	t.Run("Soft delete excludes user from listing", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/users/%d", u.ID), nil)
		assert.NoError(t, err)
		assert.Equal(t, 204, resp.Code)

		resp, err = testutils.MakeRequest(app, "GET", "/users", nil)
		assert.NoError(t, err)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		if result.Data != nil {
			for _, raw := range result.Data.([]interface{}) {
				assert.NotEqual(t, "cycle@test.com", raw.(map[string]interface{})["email"])
			}
		}

		var stored models.User
		assert.NoError(t, db.First(&stored, u.ID).Error, "record must be retained")
		assert.False(t, stored.IsActive)
	})

	t.Run("Activate re-includes user in listing", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/users/%d/activate", u.ID), nil)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		resp, err = testutils.MakeRequest(app, "GET", "/users", nil)
		assert.NoError(t, err)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		found := false
		for _, raw := range result.Data.([]interface{}) {
			if raw.(map[string]interface{})["email"] == "cycle@test.com" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("Error - Unknown user", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", "/users/9999", nil)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		resp, err = testutils.MakeRequest(app, "POST", "/users/9999/activate", nil)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}
