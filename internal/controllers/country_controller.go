package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"geo_directory/internal/dto"
	"geo_directory/internal/services"
)

type CountryController struct {
	service *services.CountryService
}

func NewCountryController(service *services.CountryService) *CountryController {
	return &CountryController{service: service}
}

// Create answers 201 whether the country was inserted or an identical one
// already existed.
func (ctl *CountryController) Create(c *gin.Context) {
	var input dto.CreateCountry
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country, err := ctl.service.Create(&input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCountryResponse(country))
}

func (ctl *CountryController) FindAll(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	countries, total, err := ctl.service.FindAll(p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewCountryResponses(countries), total, p.PageValue(), p.LimitValue()))
}

func (ctl *CountryController) Search(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	countries, total, err := ctl.service.SearchByName(p.Name, p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewCountryResponses(countries), total, p.PageValue(), p.LimitValue()))
}

func (ctl *CountryController) FindOne(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	country, err := ctl.service.FindOne(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCountryResponse(country))
}

func (ctl *CountryController) UpdateFull(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UpdatePutCountry
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country, err := ctl.service.UpdateFull(id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCountryResponse(country))
}

func (ctl *CountryController) UpdatePartial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UpdatePatchCountry
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country, err := ctl.service.UpdatePartial(id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCountryResponse(country))
}

func (ctl *CountryController) Remove(c *gin.Context) {
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
