package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"geo_directory/internal/dto"
	"geo_directory/internal/services"
)

// abortWithError translates service errors into the response contract:
// typed errors keep their status and message, anything else logs and
// becomes an opaque 500.
func abortWithError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		c.AbortWithStatusJSON(svcErr.Status, gin.H{"error": svcErr.Message})
		return
	}
	logrus.Errorf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// parseID reads the :id route param. A non-numeric id aborts with 400.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

func bindPagination(c *gin.Context) (*dto.Pagination, bool) {
	var p dto.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return nil, false
	}
	return &p, true
}
