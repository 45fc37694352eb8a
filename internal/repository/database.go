package repository

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Victormarshall911/NexTalk/internal/models"
)

// InitDB connects to Postgres and migrates the schema.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.RefreshToken{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
