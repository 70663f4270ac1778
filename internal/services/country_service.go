package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"geo_directory/internal/dto"
	"geo_directory/internal/models"
)

// CountryService owns Country rows. Unlike the other geo entities, create
// idempotency is keyed by name and code, not coordinates.
type CountryService struct {
	db *gorm.DB
}

func NewCountryService(db *gorm.DB) *CountryService {
	return &CountryService{db: db}
}

var countrySortable = map[string]string{
	"id":   "id",
	"name": "name",
	"code": "code",
}

// Create returns an existing country when the name or code is already taken
// instead of erroring, and falls back to a re-query when a concurrent insert
// hits the unique index first.
func (s *CountryService) Create(input *dto.CreateCountry) (*models.Country, error) {
	var existing models.Country
	err := s.db.Where("name = ?", input.Name).First(&existing).Error
	if err == nil {
		logrus.Warnf("country '%s' already exists, returning existing id %d", input.Name, existing.ID)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.Code != nil {
		err = s.db.Where("code = ?", *input.Code).First(&existing).Error
		if err == nil {
			logrus.Warnf("country code '%s' already exists, returning existing id %d", *input.Code, existing.ID)
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	country := models.Country{Name: input.Name, Code: input.Code}
	if err := s.db.Create(&country).Error; err != nil {
		if isUniqueViolation(err) {
			return s.recoverExisting(input)
		}
		return nil, err
	}
	logrus.Infof("country '%s' created with id %d", country.Name, country.ID)
	return &country, nil
}

func (s *CountryService) recoverExisting(input *dto.CreateCountry) (*models.Country, error) {
	var existing models.Country
	if err := s.db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		return &existing, nil
	}
	if input.Code != nil {
		if err := s.db.Where("code = ?", *input.Code).First(&existing).Error; err == nil {
			return &existing, nil
		}
	}
	return nil, Conflict("country '%s' already exists", input.Name)
}

func (s *CountryService) FindAll(p *dto.Pagination) ([]models.Country, int64, error) {
	order, err := p.OrderClause(countrySortable)
	if err != nil {
		return nil, 0, BadRequest("%s", err.Error())
	}

	var total int64
	if err := s.db.Model(&models.Country{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var countries []models.Country
	if err := s.db.Order(order).Offset(p.Offset()).Limit(p.LimitValue()).Find(&countries).Error; err != nil {
		return nil, 0, err
	}
	return countries, total, nil
}

func (s *CountryService) FindOne(id uint) (*models.Country, error) {
	var country models.Country
	if err := s.db.First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("country with id %d not found", id)
		}
		return nil, err
	}
	return &country, nil
}

// FindOneByName returns (nil, nil) when the country does not exist.
func (s *CountryService) FindOneByName(name string) (*models.Country, error) {
	var country models.Country
	err := s.db.Where("name = ?", name).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &country, nil
}

func (s *CountryService) SearchByName(term string, p *dto.Pagination) ([]models.Country, int64, error) {
	if term == "" {
		return nil, 0, BadRequest("search term cannot be empty")
	}
	order, err := p.OrderClause(countrySortable)
	if err != nil {
		return nil, 0, BadRequest("%s", err.Error())
	}

	pattern := "%" + term + "%"

	var total int64
	if err := s.db.Model(&models.Country{}).Where("LOWER(name) LIKE LOWER(?)", pattern).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var countries []models.Country
	if err := s.db.Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order(order).Offset(p.Offset()).Limit(p.LimitValue()).Find(&countries).Error; err != nil {
		return nil, 0, err
	}
	return countries, total, nil
}

func (s *CountryService) UpdateFull(id uint, input *dto.UpdatePutCountry) (*models.Country, error) {
	country, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if input.Name != country.Name {
		var clash models.Country
		if err := s.db.Where("name = ? AND id <> ?", input.Name, id).First(&clash).Error; err == nil {
			return nil, Conflict("country with name '%s' already exists", input.Name)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if input.Code != nil && (country.Code == nil || *input.Code != *country.Code) {
		var clash models.Country
		if err := s.db.Where("code = ? AND id <> ?", *input.Code, id).First(&clash).Error; err == nil {
			return nil, Conflict("country with code '%s' already exists", *input.Code)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	country.Name = input.Name
	if input.Code != nil {
		country.Code = input.Code
	}

	if err := s.db.Save(country).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("country name or code already in use")
		}
		return nil, err
	}
	logrus.Infof("country %d updated (PUT)", country.ID)
	return country, nil
}

func (s *CountryService) UpdatePartial(id uint, input *dto.UpdatePatchCountry) (*models.Country, error) {
	country, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != country.Name {
		var clash models.Country
		if err := s.db.Where("name = ? AND id <> ?", *input.Name, id).First(&clash).Error; err == nil {
			return nil, Conflict("country with name '%s' already exists", *input.Name)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		country.Name = *input.Name
	}
	if input.Code != nil && (country.Code == nil || *input.Code != *country.Code) {
		var clash models.Country
		if err := s.db.Where("code = ? AND id <> ?", *input.Code, id).First(&clash).Error; err == nil {
			return nil, Conflict("country with code '%s' already exists", *input.Code)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		country.Code = input.Code
	}

	if err := s.db.Save(country).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("country name or code already in use")
		}
		return nil, err
	}
	logrus.Infof("country %d updated (PATCH)", country.ID)
	return country, nil
}

func (s *CountryService) Remove(id uint) (string, error) {
	country, err := s.FindOne(id)
	if err != nil {
		return "", err
	}

	var provinces int64
	if err := s.db.Model(&models.Province{}).Where("country_id = ?", id).Count(&provinces).Error; err != nil {
		return "", err
	}
	if provinces > 0 {
		return "", Conflict("country '%s' cannot be removed, it has associated provinces", country.Name)
	}

	if err := s.db.Delete(&models.Country{}, id).Error; err != nil {
		return "", err
	}
	logrus.Infof("country %d removed", id)
	return "country removed successfully", nil
}
