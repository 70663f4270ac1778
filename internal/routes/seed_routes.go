package routes

import (
	"github.com/gin-gonic/gin"

	"geo_directory/internal/controllers"
	"geo_directory/internal/middleware"
	"geo_directory/internal/models"
)

func RegisterSeedRoutes(r *gin.Engine, ctl *controllers.SeedController, auth gin.HandlerFunc) {
	r.POST("/seed/trigger", auth, middleware.RequireRoles(models.RoleAdmin), ctl.Trigger)
}
