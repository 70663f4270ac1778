package dto

import (
	"time"

	"geo_directory/internal/models"
)

const birthDateLayout = "2006-01-02"

type CreatePerson struct {
	FirstName string  `json:"firstName" binding:"required,max=50"`
	LastName  string  `json:"lastName" binding:"required,max=50"`
	Email     string  `json:"email" binding:"required,email,max=100"`
	Password  string  `json:"password" binding:"required,min=8"`
	BirthDate *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Role      string  `json:"role" binding:"omitempty,oneof=admin user moderator"`
	CityID    *uint   `json:"cityId"`
}

// UpdatePutPerson replaces the whole record. A nil CityID clears the city;
// NewPassword is the single optional piece since hashes are never echoed
// back for the client to resubmit.
type UpdatePutPerson struct {
	FirstName   string  `json:"firstName" binding:"required,max=50"`
	LastName    string  `json:"lastName" binding:"required,max=50"`
	Email       string  `json:"email" binding:"required,email,max=100"`
	Role        string  `json:"role" binding:"required,oneof=admin user moderator"`
	BirthDate   *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	NewPassword *string `json:"newPassword" binding:"omitempty,min=8"`
	CityID      *uint   `json:"cityId"`
}

type UpdatePatchPerson struct {
	FirstName   *string      `json:"firstName" binding:"omitempty,max=50"`
	LastName    *string      `json:"lastName" binding:"omitempty,max=50"`
	Email       *string      `json:"email" binding:"omitempty,email,max=100"`
	NewPassword *string      `json:"newPassword" binding:"omitempty,min=8"`
	BirthDate   *string      `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Role        *string      `json:"role" binding:"omitempty,oneof=admin user moderator"`
	CityID      OptionalUint `json:"cityId"`
}

type PersonResponse struct {
	ID        uint       `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	BirthDate *string    `json:"birthDate"`
	Role      string     `json:"role"`
	City      *ParentRef `json:"city"`
	CityID    *uint      `json:"cityId"`
}

func NewPersonResponse(m *models.Person) PersonResponse {
	resp := PersonResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Role:      m.Role,
		CityID:    m.CityID,
	}
	if m.BirthDate != nil {
		s := m.BirthDate.Format(birthDateLayout)
		resp.BirthDate = &s
	}
	if m.City != nil {
		resp.City = &ParentRef{ID: m.City.ID, Name: m.City.Name}
	}
	return resp
}

func NewPersonResponses(ms []models.Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewPersonResponse(&ms[i]))
	}
	return out
}

// ParseBirthDate converts the wire format; binding has already guaranteed
// the layout, so errors only guard against direct service callers.
func ParseBirthDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
