package main

import (
	"log"
	"os"

	"stayops-be/internal/model"
	"stayops-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding subscription plans...")

	plans := []model.Plan{
		{
			Name:          "Starter",
			Slug:          "starter",
			Price:         0,
			Description:   "Single property, core request queue",
			MaxProperties: 1,
		},
		{
			Name:          "Professional",
			Slug:          "professional",
			Price:         490000,
			Description:   "Up to 5 properties, SLA alerts and analytics",
			MaxProperties: 5,
		},
		{
			Name:          "Portfolio",
			Slug:          "portfolio",
			Price:         1490000,
			Description:   "Up to 25 properties for management groups",
			MaxProperties: 25,
		},
	}

	for _, plan := range plans {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price", "description", "max_properties"}),
		}).Create(&plan).Error
		if err != nil {
			log.Fatalf("Error: Failed to seed plan %s: %v", plan.Slug, err)
		}
		log.Printf("Seeded plan: %s", plan.Slug)
	}

	log.Println("Seeding complete.")
}
