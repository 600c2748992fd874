package server

import (
	"time"

	"clinic-backend/internal/doctor"
	"clinic-backend/internal/patient"
	"clinic-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Clinic API is running",
		})
	})

	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	})

	// ==========================================
	// USERS
	// ==========================================
	userGroup := app.Group("/users")
	userGroup.Post("/register", authLimiter, user.RegisterHandler)
	userGroup.Post("/login", authLimiter, user.LoginHandler)
	userGroup.Get("/", user.ListUsersHandler)
	userGroup.Get("/email/:email", user.GetUserByEmailHandler)
	userGroup.Get("/:id", user.GetUserHandler)
	userGroup.Patch("/:id", user.UpdateUserHandler)
	userGroup.Delete("/:id", user.DeleteUserHandler)
	userGroup.Post("/:id/activate", user.ActivateUserHandler)

	// ==========================================
	// DOCTORS
	// ==========================================
	doctorGroup := app.Group("/doctors")
	doctorGroup.Post("/", doctor.CreateDoctorHandler)
	doctorGroup.Get("/", doctor.ListDoctorsHandler)
	doctorGroup.Get("/search", doctor.SearchDoctorsHandler)
	doctorGroup.Get("/user/:userId", doctor.GetDoctorByUserHandler)
	doctorGroup.Get("/:id", doctor.GetDoctorHandler)
	doctorGroup.Patch("/:id", doctor.UpdateDoctorHandler)
	doctorGroup.Delete("/:id", doctor.DeleteDoctorHandler)
	doctorGroup.Post("/:id/activate", doctor.ActivateDoctorHandler)
	doctorGroup.Post("/:id/toggle-availability", doctor.ToggleAvailabilityHandler)
	doctorGroup.Post("/:id/profile-pic", doctor.UploadProfilePicHandler)

	// ==========================================
	// PATIENTS
	// ==========================================
	patientGroup := app.Group("/patients")
	patientGroup.Post("/", patient.CreatePatientHandler)
	patientGroup.Get("/", patient.ListPatientsHandler)
	patientGroup.Get("/search", patient.SearchPatientsHandler)
	patientGroup.Get("/stats", patient.GetPatientStatsHandler)
	patientGroup.Get("/condition/:condition", patient.ListByConditionHandler)
	patientGroup.Get("/user/:userId", patient.GetPatientByUserHandler)
	patientGroup.Get("/:id/bmi", patient.GetPatientBMIHandler)
	patientGroup.Get("/:id", patient.GetPatientHandler)
	patientGroup.Patch("/:id", patient.UpdatePatientHandler)
	patientGroup.Delete("/:id", patient.DeletePatientHandler)
	patientGroup.Post("/:id/activate", patient.ActivatePatientHandler)
}
