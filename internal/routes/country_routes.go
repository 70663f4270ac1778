package routes

import (
	"github.com/gin-gonic/gin"

	"geo_directory/internal/controllers"
	"geo_directory/internal/middleware"
	"geo_directory/internal/models"
)

func RegisterCountryRoutes(r *gin.Engine, ctl *controllers.CountryController, auth gin.HandlerFunc) {
	countries := r.Group("/countries")
	{
		countries.GET("", ctl.FindAll)
		countries.GET("/search", auth, ctl.Search)
		countries.GET("/:id", auth, ctl.FindOne)

		admin := middleware.RequireRoles(models.RoleAdmin)
		countries.POST("", auth, admin, ctl.Create)
		countries.PUT("/:id", auth, admin, ctl.UpdateFull)
		countries.PATCH("/:id", auth, admin, ctl.UpdatePartial)
		countries.DELETE("/:id", auth, admin, ctl.Remove)
	}
}
