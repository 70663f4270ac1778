package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"geo_directory/internal/dto"
	"geo_directory/internal/services"
)

type ProvinceController struct {
	service *services.ProvinceService
}

func NewProvinceController(service *services.ProvinceService) *ProvinceController {
	return &ProvinceController{service: service}
}

// Create answers 201 whether the province was inserted or the location
// already held one.
func (ctl *ProvinceController) Create(c *gin.Context) {
	var input dto.CreateProvince
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	province, err := ctl.service.Create(&input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProvinceResponse(province))
}

func (ctl *ProvinceController) FindAll(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	provinces, total, err := ctl.service.FindAll(p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewProvinceResponses(provinces), total, p.PageValue(), p.LimitValue()))
}

func (ctl *ProvinceController) Search(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	provinces, total, err := ctl.service.SearchByName(p.Name, p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewProvinceResponses(provinces), total, p.PageValue(), p.LimitValue()))
}

// FindByCountry returns the full province list of a country as a single page.
func (ctl *ProvinceController) FindByCountry(c *gin.Context) {
	countryID, ok := parseID(c)
	if !ok {
		return
	}

	provinces, total, err := ctl.service.FindByCountry(countryID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	limit := int(total)
	if limit == 0 {
		limit = 1
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewProvinceResponses(provinces), total, 1, limit))
}

func (ctl *ProvinceController) FindOne(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	province, err := ctl.service.FindOne(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProvinceResponse(province))
}

func (ctl *ProvinceController) UpdateFull(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UpdatePutProvince
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	province, err := ctl.service.UpdateFull(id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProvinceResponse(province))
}

func (ctl *ProvinceController) UpdatePartial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UpdatePatchProvince
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	province, err := ctl.service.UpdatePartial(id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProvinceResponse(province))
}

func (ctl *ProvinceController) Remove(c *gin.Context) {
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
