package routes

import (
	"github.com/gin-gonic/gin"

	"geo_directory/internal/controllers"
	"geo_directory/internal/middleware"
	"geo_directory/internal/models"
)

func RegisterCityRoutes(r *gin.Engine, ctl *controllers.CityController, auth gin.HandlerFunc) {
	cities := r.Group("/cities")
	{
		cities.GET("", ctl.FindAll)
		cities.GET("/by-province/:id", ctl.FindByProvince)
		cities.GET("/search", auth, ctl.Search)
		cities.GET("/:id", auth, ctl.FindOne)

		admin := middleware.RequireRoles(models.RoleAdmin)
		cities.POST("", auth, admin, ctl.Create)
		cities.PUT("/:id", auth, admin, ctl.UpdateFull)
		cities.PATCH("/:id", auth, admin, ctl.UpdatePartial)
		cities.DELETE("/:id", auth, admin, ctl.Remove)
	}
}
