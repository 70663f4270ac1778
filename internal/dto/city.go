package dto

import "geo_directory/internal/models"

type CreateCity struct {
	Name       string   `json:"name" binding:"required,max=100"`
	ProvinceID uint     `json:"provinceId" binding:"required"`
	Latitude   *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude  *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type UpdatePutCity struct {
	Name       string   `json:"name" binding:"required,max=100"`
	ProvinceID uint     `json:"provinceId" binding:"required"`
	Latitude   *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude  *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type UpdatePatchCity struct {
	Name       *string  `json:"name" binding:"omitempty,max=100"`
	ProvinceID *uint    `json:"provinceId"`
	Latitude   *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude  *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type CityResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Province  ParentRef `json:"province"`
}

func NewCityResponse(m *models.City) CityResponse {
	return CityResponse{
		ID:        m.ID,
		Name:      m.Name,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Province:  ParentRef{ID: m.Province.ID, Name: m.Province.Name},
	}
}

func NewCityResponses(ms []models.City) []CityResponse {
	out := make([]CityResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewCityResponse(&ms[i]))
	}
	return out
}
