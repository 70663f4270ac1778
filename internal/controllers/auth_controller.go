package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"geo_directory/internal/config"
	"geo_directory/internal/dto"
	"geo_directory/internal/middleware"
	"geo_directory/internal/models"
	"geo_directory/internal/services"
)

// AuthController handles signup, the cookie session lifecycle, and the
// session status probe the frontend polls.
type AuthController struct {
	cfg     *config.Config
	persons *services.PersonService
	cities  *services.CityService
}

func NewAuthController(cfg *config.Config, persons *services.PersonService, cities *services.CityService) *AuthController {
	return &AuthController{cfg: cfg, persons: persons, cities: cities}
}

// Register is the public self-service signup. The role is always "user";
// privileged accounts are only created through the admin person endpoints.
func (ctl *AuthController) Register(c *gin.Context) {
	var input dto.RegisterPerson
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cityID *uint
	if input.CityName != "" {
		city, err := ctl.cities.FindOneByNameAndProvinceName(input.CityName, input.ProvinceName)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if city == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "the city '" + input.CityName + "' could not be found"})
			return
		}
		cityID = &city.ID
	}

	person, err := ctl.persons.Create(&dto.CreatePerson{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		BirthDate: input.BirthDate,
		Role:      models.RoleUser,
		CityID:    cityID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	logrus.Infof("person %d registered", person.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"userId":  person.ID,
	})
}

// Login verifies credentials and installs the session cookie. Unknown email
// and wrong password answer identically.
func (ctl *AuthController) Login(c *gin.Context) {
	var input dto.Login
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := ctl.persons.FindByEmailForAuth(input.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if person == nil || bcrypt.CompareHashAndPassword([]byte(person.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(person, []byte(ctl.cfg.JWTSecret), ctl.cfg.JWTExpiry)
	if err != nil {
		abortWithError(c, err)
		return
	}

	ctl.setSessionCookie(c, token, int(ctl.cfg.JWTExpiry.Seconds()))
	logrus.Infof("person %d logged in", person.ID)
	c.JSON(http.StatusOK, gin.H{"message": "login successful"})
}

// Logout clears the cookie. Always succeeds, session or not.
func (ctl *AuthController) Logout(c *gin.Context) {
	ctl.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// Status echoes the session identity. The route runs behind RequireAuth,
// so an anonymous or expired caller is rejected with 401 before this runs.
func (ctl *AuthController) Status(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAuthenticated": true, "user": identity})
}

func (ctl *AuthController) setSessionCookie(c *gin.Context, token string, maxAge int) {
	secure := ctl.cfg.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", secure, true)
}
