package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"geo_directory/internal/dto"
	"geo_directory/internal/services"
)

type CityController struct {
	service *services.CityService
}

func NewCityController(service *services.CityService) *CityController {
	return &CityController{service: service}
}

// Create answers 201 whether the city was inserted or the location already
// held one.
func (ctl *CityController) Create(c *gin.Context) {
	var input dto.CreateCity
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city, err := ctl.service.Create(&input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCityResponse(city))
}

func (ctl *CityController) FindAll(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	cities, total, err := ctl.service.FindAll(p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewCityResponses(cities), total, p.PageValue(), p.LimitValue()))
}

func (ctl *CityController) Search(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	cities, total, err := ctl.service.SearchByName(p.Name, p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewCityResponses(cities), total, p.PageValue(), p.LimitValue()))
}

// FindByProvince returns the full city list of a province as a single page.
func (ctl *CityController) FindByProvince(c *gin.Context) {
	provinceID, ok := parseID(c)
	if !ok {
		return
	}

	cities, total, err := ctl.service.FindByProvince(provinceID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	limit := int(total)
	if limit == 0 {
		limit = 1
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewCityResponses(cities), total, 1, limit))
}

func (ctl *CityController) FindOne(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	city, err := ctl.service.FindOne(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCityResponse(city))
}

func (ctl *CityController) UpdateFull(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UpdatePutCity
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city, err := ctl.service.UpdateFull(id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCityResponse(city))
}

func (ctl *CityController) UpdatePartial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UpdatePatchCity
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city, err := ctl.service.UpdatePartial(id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCityResponse(city))
}

func (ctl *CityController) Remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := ctl.service.Remove(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
