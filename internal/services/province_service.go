package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"geo_directory/internal/dto"
	"geo_directory/internal/models"
)

// ProvinceService owns Province rows. Creation is idempotent by location:
// a request matching an existing (lat,lon) returns that row untouched.
type ProvinceService struct {
	db *gorm.DB
}

func NewProvinceService(db *gorm.DB) *ProvinceService {
	return &ProvinceService{db: db}
}

var provinceSortable = map[string]string{
	"id":        "id",
	"name":      "name",
	"latitude":  "latitude",
	"longitude": "longitude",
	"countryId": "country_id",
}

func (s *ProvinceService) countryByID(id uint) (*models.Country, error) {
	var country models.Country
	if err := s.db.First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("country with id %d not found", id)
		}
		return nil, err
	}
	return &country, nil
}

func (s *ProvinceService) reload(id uint) (*models.Province, error) {
	var province models.Province
	if err := s.db.Preload("Country").First(&province, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Internal("could not reload province %d", id)
		}
		return nil, err
	}
	return &province, nil
}

func (s *ProvinceService) Create(input *dto.CreateProvince) (*models.Province, error) {
	country, err := s.countryByID(input.CountryID)
	if err != nil {
		return nil, err
	}

	lat, lon := *input.Latitude, *input.Longitude

	var existing models.Province
	err = s.db.Where("latitude = ? AND longitude = ?", lat, lon).First(&existing).Error
	if err == nil {
		logrus.Infof("province at (%f, %f) already exists as '%s', returning id %d", lat, lon, existing.Name, existing.ID)
		return s.reload(existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Same name within the country but different coordinates is suspicious,
	// not fatal.
	var nominal models.Province
	if err := s.db.Where("name = ? AND country_id = ?", input.Name, input.CountryID).First(&nominal).Error; err == nil {
		logrus.Warnf("province '%s' already exists in country '%s' with different coordinates", input.Name, country.Name)
	}

	province := models.Province{
		Name:      input.Name,
		CountryID: country.ID,
		Latitude:  lat,
		Longitude: lon,
	}
	if err := s.db.Create(&province).Error; err != nil {
		if isUniqueViolation(err) {
			var race models.Province
			if rerr := s.db.Preload("Country").
				Where("latitude = ? AND longitude = ?", lat, lon).First(&race).Error; rerr == nil {
				logrus.Warnf("province insert raced, returning existing id %d", race.ID)
				return &race, nil
			}
			return nil, Conflict("a province already exists at (%f, %f)", lat, lon)
		}
		return nil, err
	}
	logrus.Infof("province '%s' created with id %d", province.Name, province.ID)
	return s.reload(province.ID)
}

func (s *ProvinceService) FindAll(p *dto.Pagination) ([]models.Province, int64, error) {
	order, err := p.OrderClause(provinceSortable)
	if err != nil {
		return nil, 0, BadRequest("%s", err.Error())
	}

	var total int64
	if err := s.db.Model(&models.Province{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var provinces []models.Province
	if err := s.db.Preload("Country").
		Order(order).Offset(p.Offset()).Limit(p.LimitValue()).Find(&provinces).Error; err != nil {
		return nil, 0, err
	}
	return provinces, total, nil
}

func (s *ProvinceService) FindOne(id uint) (*models.Province, error) {
	var province models.Province
	if err := s.db.Preload("Country").First(&province, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("province with id %d not found", id)
		}
		return nil, err
	}
	return &province, nil
}

// FindOneByNameAndCountryID returns (nil, nil) when no row matches.
func (s *ProvinceService) FindOneByNameAndCountryID(name string, countryID uint) (*models.Province, error) {
	var province models.Province
	err := s.db.Preload("Country").
		Where("name = ? AND country_id = ?", name, countryID).First(&province).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &province, nil
}

// FindByCountry lists every province of a country ordered by name; callers
// wrap it as a single page.
func (s *ProvinceService) FindByCountry(countryID uint) ([]models.Province, int64, error) {
	var provinces []models.Province
	if err := s.db.Preload("Country").
		Where("country_id = ?", countryID).Order("name ASC").Find(&provinces).Error; err != nil {
		return nil, 0, err
	}
	return provinces, int64(len(provinces)), nil
}

func (s *ProvinceService) SearchByName(term string, p *dto.Pagination) ([]models.Province, int64, error) {
	if term == "" {
		return nil, 0, BadRequest("search term cannot be empty")
	}
	order, err := p.OrderClause(provinceSortable)
	if err != nil {
		return nil, 0, BadRequest("%s", err.Error())
	}

	pattern := "%" + term + "%"

	var total int64
	if err := s.db.Model(&models.Province{}).Where("LOWER(name) LIKE LOWER(?)", pattern).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var provinces []models.Province
	if err := s.db.Preload("Country").Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order(order).Offset(p.Offset()).Limit(p.LimitValue()).Find(&provinces).Error; err != nil {
		return nil, 0, err
	}
	return provinces, total, nil
}

func (s *ProvinceService) UpdateFull(id uint, input *dto.UpdatePutProvince) (*models.Province, error) {
	province, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	country, err := s.countryByID(input.CountryID)
	if err != nil {
		return nil, err
	}

	lat, lon := *input.Latitude, *input.Longitude
	if lat != province.Latitude || lon != province.Longitude {
		if err := s.checkCoordsFree(lat, lon, id); err != nil {
			return nil, err
		}
	}
	if input.Name != province.Name || input.CountryID != province.CountryID {
		if err := s.checkNameFree(input.Name, input.CountryID, id); err != nil {
			return nil, err
		}
	}

	province.Name = input.Name
	province.CountryID = country.ID
	province.Country = *country
	province.Latitude = lat
	province.Longitude = lon

	if err := s.db.Omit(clause.Associations).Save(province).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("the location (%f, %f) is already registered for another province", lat, lon)
		}
		return nil, err
	}
	logrus.Infof("province %d updated (PUT)", province.ID)
	return s.reload(province.ID)
}

func (s *ProvinceService) UpdatePartial(id uint, input *dto.UpdatePatchProvince) (*models.Province, error) {
	province, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	nameChanged, countryChanged, coordsChanged := false, false, false
	if input.Name != nil && *input.Name != province.Name {
		province.Name = *input.Name
		nameChanged = true
	}
	if input.CountryID != nil && *input.CountryID != province.CountryID {
		country, err := s.countryByID(*input.CountryID)
		if err != nil {
			return nil, err
		}
		province.CountryID = country.ID
		province.Country = *country
		countryChanged = true
	}
	if input.Latitude != nil && *input.Latitude != province.Latitude {
		province.Latitude = *input.Latitude
		coordsChanged = true
	}
	if input.Longitude != nil && *input.Longitude != province.Longitude {
		province.Longitude = *input.Longitude
		coordsChanged = true
	}

	if coordsChanged {
		if err := s.checkCoordsFree(province.Latitude, province.Longitude, id); err != nil {
			return nil, err
		}
	}
	if (nameChanged || countryChanged) && !coordsChanged {
		if err := s.checkNameFree(province.Name, province.CountryID, id); err != nil {
			return nil, err
		}
	}

	if err := s.db.Omit(clause.Associations).Save(province).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("the location (%f, %f) is already registered for another province", province.Latitude, province.Longitude)
		}
		return nil, err
	}
	logrus.Infof("province %d updated (PATCH)", province.ID)
	return s.reload(province.ID)
}

func (s *ProvinceService) checkCoordsFree(lat, lon float64, selfID uint) error {
	var clash models.Province
	err := s.db.Where("latitude = ? AND longitude = ? AND id <> ?", lat, lon, selfID).First(&clash).Error
	if err == nil {
		return Conflict("the location (%f, %f) is already registered for another province", lat, lon)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *ProvinceService) checkNameFree(name string, countryID, selfID uint) error {
	var clash models.Province
	err := s.db.Where("name = ? AND country_id = ? AND id <> ?", name, countryID, selfID).First(&clash).Error
	if err == nil {
		return Conflict("province '%s' already exists in that country", name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *ProvinceService) Remove(id uint) (string, error) {
	province, err := s.FindOne(id)
	if err != nil {
		return "", err
	}

	var cities int64
	if err := s.db.Model(&models.City{}).Where("province_id = ?", id).Count(&cities).Error; err != nil {
		return "", err
	}
	if cities > 0 {
		return "", Conflict("province '%s' cannot be removed, it has associated cities", province.Name)
	}

	if err := s.db.Delete(&models.Province{}, id).Error; err != nil {
		return "", err
	}
	logrus.Infof("province %d removed", id)
	return "province removed successfully", nil
}
