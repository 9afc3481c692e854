package main

import (
	"log"
	"os"

	"spbu-service/internal/database"
	"spbu-service/internal/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	// Initialize Database
	database.Connect()

	// Run Migrations
	log.Println("Running database migrations...")
	database.Migrate()

	seedUsers()

	log.Println("Migrations completed successfully!")
}

// seedUsers creates the default operator and manager accounts when they do
// not exist yet. Passwords come from the environment.
func seedUsers() {
	seeds := []struct {
		emailVar    string
		passwordVar string
		role        string
	}{
		{"SEED_OPERATOR_EMAIL", "SEED_OPERATOR_PASSWORD", models.RoleOperator},
		{"SEED_MANAJER_EMAIL", "SEED_MANAJER_PASSWORD", models.RoleManajer},
	}

	for _, seed := range seeds {
		email := os.Getenv(seed.emailVar)
		password := os.Getenv(seed.passwordVar)
		if email == "" || password == "" {
			continue
		}

		var existing models.User
		if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash password for %s: %v", email, err)
			continue
		}

		user := models.User{Email: email, HashedPassword: hashed, Role: seed.role}
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Failed to seed user %s: %v", email, err)
			continue
		}
		log.Printf("Seeded %s user %s", seed.role, email)
	}
}
