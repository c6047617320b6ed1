package main

import (
	"log"

	"github.com/Fuku-x/connect-app/internal/config"
	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
	"github.com/Fuku-x/connect-app/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations (just in case)...")
	err := database.DB.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.Portfolio{},
		&models.Recruitment{},
		&models.Task{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	users := seeds.SeedUsers()
	seeds.SeedPortfolios(users)
	seeds.SeedRecruitments(users)

	log.Println("Seeding complete")
}
