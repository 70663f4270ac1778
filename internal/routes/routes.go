package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"geo_directory/internal/config"
	"geo_directory/internal/controllers"
	"geo_directory/internal/georef"
	"geo_directory/internal/middleware"
	"geo_directory/internal/services"
)

// SetupRouter wires services, controllers and middleware into the gin engine.
// Public routes simply skip the auth middleware; everything else declares the
// roles allowed to touch it.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	countryService := services.NewCountryService(db)
	provinceService := services.NewProvinceService(db)
	cityService := services.NewCityService(db)
	personService := services.NewPersonService(db)

	georefClient := georef.NewClient(cfg.GeorefBaseURL, cfg.GeorefTimeout)
	seedingService := services.NewSeedingService(countryService, provinceService, cityService, georefClient)

	secret := []byte(cfg.JWTSecret)
	auth := middleware.RequireAuth(secret, personService)

	RegisterAuthRoutes(r, controllers.NewAuthController(cfg, personService, cityService), auth)
	RegisterCountryRoutes(r, controllers.NewCountryController(countryService), auth)
	RegisterProvinceRoutes(r, controllers.NewProvinceController(provinceService), auth)
	RegisterCityRoutes(r, controllers.NewCityController(cityService), auth)
	RegisterPersonRoutes(r, controllers.NewPersonController(personService), auth)
	RegisterSeedRoutes(r, controllers.NewSeedController(cfg, seedingService), auth)

	return r
}
