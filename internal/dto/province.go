package dto

import "geo_directory/internal/models"

// ParentRef is the one-level-deep parent flattening every read path uses;
// payloads never nest further than this.
type ParentRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Coordinates are pointers so a legitimate 0.0 still satisfies "required".
type CreateProvince struct {
	Name      string   `json:"name" binding:"required,max=100"`
	CountryID uint     `json:"countryId" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type UpdatePutProvince struct {
	Name      string   `json:"name" binding:"required,max=100"`
	CountryID uint     `json:"countryId" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type UpdatePatchProvince struct {
	Name      *string  `json:"name" binding:"omitempty,max=100"`
	CountryID *uint    `json:"countryId"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type ProvinceResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Country   ParentRef `json:"country"`
}

func NewProvinceResponse(m *models.Province) ProvinceResponse {
	return ProvinceResponse{
		ID:        m.ID,
		Name:      m.Name,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Country:   ParentRef{ID: m.Country.ID, Name: m.Country.Name},
	}
}

func NewProvinceResponses(ms []models.Province) []ProvinceResponse {
	out := make([]ProvinceResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewProvinceResponse(&ms[i]))
	}
	return out
}
