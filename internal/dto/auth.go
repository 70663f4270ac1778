package dto

type Login struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterPerson is the self-service signup payload. The city is resolved by
// name (optionally scoped by province name) instead of id, because the
// public form works with names.
type RegisterPerson struct {
	FirstName    string  `json:"firstName" binding:"required,max=50"`
	LastName     string  `json:"lastName" binding:"required,max=50"`
	Email        string  `json:"email" binding:"required,email,max=100"`
	Password     string  `json:"password" binding:"required,min=8"`
	BirthDate    *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	CityName     string  `json:"cityName" binding:"omitempty,max=100"`
	ProvinceName string  `json:"provinceName" binding:"omitempty,max=100"`
}

type TriggerSeeding struct {
	AdminPassword string `json:"adminPassword" binding:"required"`
}
