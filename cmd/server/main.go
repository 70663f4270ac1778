package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"geo_directory/internal/config"
	"geo_directory/internal/georef"
	"geo_directory/internal/logger"
	"geo_directory/internal/middleware"
	"geo_directory/internal/routes"
	"geo_directory/internal/services"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	cfg := config.Load()

	// Connect to the database
	db := config.InitDB(cfg)

	if cfg.RunSeeding {
		runStartupSeeding(cfg, db)
	}

	// Setup Gin router
	r := routes.SetupRouter(cfg, db)

	// Wrap with CORS
	handler := middleware.EnableCORS(cfg.CORSOrigin, r)

	log.Printf("🚀 Server running at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, handler))
}

// runStartupSeeding executes one seeding pass before the server accepts
// traffic. Seeding is idempotent, so a restart never duplicates data; a
// failed run only logs, the server still comes up.
func runStartupSeeding(cfg *config.Config, db *gorm.DB) {
	countries := services.NewCountryService(db)
	provinces := services.NewProvinceService(db)
	cities := services.NewCityService(db)
	client := georef.NewClient(cfg.GeorefBaseURL, cfg.GeorefTimeout)
	seeder := services.NewSeedingService(countries, provinces, cities, client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := seeder.Run(ctx); err != nil {
		logrus.Errorf("startup seeding failed: %v", err)
	}
}
