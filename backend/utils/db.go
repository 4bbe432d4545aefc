package utils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rightsquest/backend/config"
	"rightsquest/backend/models"
)

// InitDB opens the Postgres connection and migrates the schema. The
// returned handle is constructed once at startup and injected into the
// controllers; nothing else holds database state.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := MigrateDB(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateDB creates or updates all tables. Shared with the test setup,
// which runs against sqlite instead of Postgres.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.GameProgress{},
		&models.LevelProgress{},
		&models.ForumPost{},
		&models.ForumReply{},
		&models.PostReport{},
		&models.ChatGroup{},
		&models.GroupMember{},
	)
}
