package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"geo_directory/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB opens the postgres connection and, when auto-sync is enabled,
// migrates the schema. Auto-sync must stay off wherever migrations manage
// the schema.
func InitDB(cfg *Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, cfg.DBTimezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if cfg.DBAutoSync {
		err = db.AutoMigrate(&models.Country{}, &models.Province{}, &models.City{}, &models.Person{})
		if err != nil {
			log.Fatalf("auto-migration failed: %v", err)
		}
	}

	DB = db
	return db
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
