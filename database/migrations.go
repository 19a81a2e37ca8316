package database

import (
	"log"

	"taskhive/taskhive/models"

	"gorm.io/gorm"
)

// RunMigrations creates or updates the users table and one table per task
// category.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.WorkTask{},
		&models.FoodTask{},
		&models.HomeworkTask{},
		&models.EmailTask{},
		&models.MeetingTask{},
		&models.ProjectTask{},
		&models.HealthTask{},
		&models.PersonalTask{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return nil
}
