package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"geo_directory/internal/dto"
	"geo_directory/internal/services"
)

type PersonController struct {
	service *services.PersonService
}

func NewPersonController(service *services.PersonService) *PersonController {
	return &PersonController{service: service}
}

func (ctl *PersonController) Create(c *gin.Context) {
	var input dto.CreatePerson
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := ctl.service.Create(&input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPersonResponse(person))
}

func (ctl *PersonController) FindAll(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	persons, total, err := ctl.service.FindAll(p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewPersonResponses(persons), total, p.PageValue(), p.LimitValue()))
}

func (ctl *PersonController) Search(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	persons, total, err := ctl.service.SearchByName(p.Name, p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.NewPersonResponses(persons), total, p.PageValue(), p.LimitValue()))
}

func (ctl *PersonController) FindOne(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	person, err := ctl.service.FindOne(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPersonResponse(person))
}

func (ctl *PersonController) UpdateFull(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UpdatePutPerson
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := ctl.service.UpdateFull(id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPersonResponse(person))
}

func (ctl *PersonController) UpdatePartial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UpdatePatchPerson
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := ctl.service.UpdatePartial(id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPersonResponse(person))
}

func (ctl *PersonController) Remove(c *gin.Context) {
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
