package routes

import (
	"github.com/gin-gonic/gin"

	"geo_directory/internal/controllers"
)

// RegisterAuthRoutes mounts the session lifecycle. Register, login and
// logout are public; status requires a live session.
func RegisterAuthRoutes(r *gin.Engine, ctl *controllers.AuthController, auth gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", ctl.Register)
		authGroup.POST("/login", ctl.Login)
		authGroup.POST("/logout", ctl.Logout)
		authGroup.GET("/status", auth, ctl.Status)
	}
}
