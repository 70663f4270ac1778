package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"geo_directory/internal/config"
	"geo_directory/internal/dto"
	"geo_directory/internal/services"
)

// SeedController exposes the on-demand seeding trigger. On top of the admin
// role it demands a dedicated secret, so a leaked admin session alone cannot
// kick off bulk writes.
type SeedController struct {
	cfg    *config.Config
	seeder *services.SeedingService
}

func NewSeedController(cfg *config.Config, seeder *services.SeedingService) *SeedController {
	return &SeedController{cfg: cfg, seeder: seeder}
}

func (ctl *SeedController) Trigger(c *gin.Context) {
	var input dto.TriggerSeeding
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ctl.cfg.SeedAdminPassword == "" {
		logrus.Warn("seeding trigger rejected: SEED_ADMIN_PASSWORD is not configured")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "seeding is not enabled"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(input.AdminPassword), []byte(ctl.cfg.SeedAdminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid seeding credentials"})
		return
	}

	summary, err := ctl.seeder.Run(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "seeding completed",
		"summary": summary,
	})
}
