package routes

import (
	"github.com/gin-gonic/gin"

	"geo_directory/internal/controllers"
	"geo_directory/internal/middleware"
	"geo_directory/internal/models"
)

func RegisterProvinceRoutes(r *gin.Engine, ctl *controllers.ProvinceController, auth gin.HandlerFunc) {
	provinces := r.Group("/provinces")
	{
		provinces.GET("", ctl.FindAll)
		provinces.GET("/by-country/:id", ctl.FindByCountry)
		provinces.GET("/search", auth, ctl.Search)
		provinces.GET("/:id", auth, ctl.FindOne)

		admin := middleware.RequireRoles(models.RoleAdmin)
		provinces.POST("", auth, admin, ctl.Create)
		provinces.PUT("/:id", auth, admin, ctl.UpdateFull)
		provinces.PATCH("/:id", auth, admin, ctl.UpdatePartial)
		provinces.DELETE("/:id", auth, admin, ctl.Remove)
	}
}
