package main

import (
	"log"
	"os"

	"clinic-backend/internal/config"
	"clinic-backend/internal/database"
	"clinic-backend/internal/server"
	"clinic-backend/internal/utils"
)

func main() {
	cfg := config.Load()

	requiredEnvVars := map[string]string{
		"DB_HOST":     os.Getenv("DB_HOST"),
		"DB_NAME":     os.Getenv("DB_NAME"),
		"DB_USER":     os.Getenv("DB_USER"),
		"DB_PASSWORD": os.Getenv("DB_PASSWORD"),
	}

	for key, value := range requiredEnvVars {
		if value == "" {
			log.Fatalf("❌ Required environment variable %s is not set", key)
		}
	}
	log.Println("✅ Required environment variables validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed: ", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	if err := database.RunMigrations(db); err != nil {
		log.Printf("⚠️  SQL migrations failed: %v", err)
		log.Println("⚠️  Substring search will fall back to sequential scans")
	} else {
		log.Println("✅ SQL migrations completed successfully")
	}

	// ========== STORAGE SETUP ==========
	if err := utils.InitLocalStorage(); err != nil {
		log.Fatal("❌ Failed to initialize local storage: ", err)
	}
	log.Println("✅ Local storage initialized at ./uploads/")

	if os.Getenv("USE_S3") == "true" {
		s3Bucket := os.Getenv("S3_BUCKET")
		s3Region := os.Getenv("S3_REGION")

		if s3Bucket != "" && s3Region != "" {
			if err := utils.InitS3(s3Bucket, s3Region); err != nil {
				log.Println("⚠️  S3 initialization failed:", err)
				log.Println("⚠️  Falling back to local storage")
				utils.SetStorageMode(true)
			} else {
				log.Printf("☁️  Using S3: %s (region: %s)", s3Bucket, s3Region)
			}
		} else {
			log.Println("⚠️  USE_S3=true but S3_BUCKET or S3_REGION not configured")
			log.Println("⚠️  Falling back to local storage")
		}
	} else {
		log.Println("💾 Using LOCAL storage mode (./uploads/)")
		utils.SetStorageMode(true)
	}

	// ========== START SERVER ==========
	app := server.New(db)

	log.Printf("🚀 Clinic API starting on %s", cfg.ServerAddr)
	log.Printf("💾 Storage Mode: %s", utils.GetStorageMode())

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server: ", err)
	}
}
