package routes

import (
	"github.com/gin-gonic/gin"

	"geo_directory/internal/controllers"
	"geo_directory/internal/middleware"
	"geo_directory/internal/models"
)

// RegisterPersonRoutes mounts the person directory. Reads are shared with
// moderators, every mutation stays admin-only.
func RegisterPersonRoutes(r *gin.Engine, ctl *controllers.PersonController, auth gin.HandlerFunc) {
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleModerator)
	admin := middleware.RequireRoles(models.RoleAdmin)

	persons := r.Group("/persons", auth)
	{
		persons.GET("", staff, ctl.FindAll)
		persons.GET("/search", staff, ctl.Search)
		persons.GET("/:id", staff, ctl.FindOne)

		persons.POST("", admin, ctl.Create)
		persons.PUT("/:id", admin, ctl.UpdateFull)
		persons.PATCH("/:id", admin, ctl.UpdatePartial)
		persons.DELETE("/:id", admin, ctl.Remove)
	}
}
