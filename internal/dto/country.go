package dto

import "geo_directory/internal/models"

type CreateCountry struct {
	Name string  `json:"name" binding:"required,max=100"`
	Code *string `json:"code" binding:"omitempty,max=10"`
}

// UpdatePutCountry carries PUT semantics: every field is required except the
// optional code, which survives unchanged when omitted.
type UpdatePutCountry struct {
	Name string  `json:"name" binding:"required,max=100"`
	Code *string `json:"code" binding:"omitempty,max=10"`
}

type UpdatePatchCountry struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
	Code *string `json:"code" binding:"omitempty,max=10"`
}

type CountryResponse struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Code *string `json:"code"`
}

func NewCountryResponse(m *models.Country) CountryResponse {
	return CountryResponse{ID: m.ID, Name: m.Name, Code: m.Code}
}

func NewCountryResponses(ms []models.Country) []CountryResponse {
	out := make([]CountryResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewCountryResponse(&ms[i]))
	}
	return out
}
