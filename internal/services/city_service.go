package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"geo_directory/internal/dto"
	"geo_directory/internal/models"
)

// CityService owns City rows, with the same idempotent-by-location create
// semantics as ProvinceService one level down the hierarchy.
type CityService struct {
	db *gorm.DB
}

func NewCityService(db *gorm.DB) *CityService {
	return &CityService{db: db}
}

var citySortable = map[string]string{
	"id":         "id",
	"name":       "name",
	"latitude":   "latitude",
	"longitude":  "longitude",
	"provinceId": "province_id",
}

func (s *CityService) provinceByID(id uint) (*models.Province, error) {
	var province models.Province
	if err := s.db.Preload("Country").First(&province, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("province with id %d not found", id)
		}
		return nil, err
	}
	return &province, nil
}

func (s *CityService) reload(id uint) (*models.City, error) {
	var city models.City
	if err := s.db.Preload("Province").First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Internal("could not reload city %d", id)
		}
		return nil, err
	}
	return &city, nil
}

func (s *CityService) Create(input *dto.CreateCity) (*models.City, error) {
	province, err := s.provinceByID(input.ProvinceID)
	if err != nil {
		return nil, err
	}

	lat, lon := *input.Latitude, *input.Longitude

	var existing models.City
	err = s.db.Where("latitude = ? AND longitude = ?", lat, lon).First(&existing).Error
	if err == nil {
		logrus.Infof("city at (%f, %f) already exists as '%s', returning id %d", lat, lon, existing.Name, existing.ID)
		return s.reload(existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var nominal models.City
	if err := s.db.Where("name = ? AND province_id = ?", input.Name, input.ProvinceID).First(&nominal).Error; err == nil {
		logrus.Warnf("city '%s' already exists in province '%s' with different coordinates", input.Name, province.Name)
	}

	city := models.City{
		Name:       input.Name,
		ProvinceID: province.ID,
		Latitude:   lat,
		Longitude:  lon,
	}
	if err := s.db.Create(&city).Error; err != nil {
		if isUniqueViolation(err) {
			var race models.City
			if rerr := s.db.Preload("Province").
				Where("latitude = ? AND longitude = ?", lat, lon).First(&race).Error; rerr == nil {
				logrus.Warnf("city insert raced, returning existing id %d", race.ID)
				return &race, nil
			}
			return nil, Conflict("a city already exists at (%f, %f)", lat, lon)
		}
		return nil, err
	}
	logrus.Infof("city '%s' created with id %d", city.Name, city.ID)
	return s.reload(city.ID)
}

func (s *CityService) FindAll(p *dto.Pagination) ([]models.City, int64, error) {
	order, err := p.OrderClause(citySortable)
	if err != nil {
		return nil, 0, BadRequest("%s", err.Error())
	}

	var total int64
	if err := s.db.Model(&models.City{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cities []models.City
	if err := s.db.Preload("Province").
		Order(order).Offset(p.Offset()).Limit(p.LimitValue()).Find(&cities).Error; err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

func (s *CityService) FindOne(id uint) (*models.City, error) {
	var city models.City
	if err := s.db.Preload("Province").First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("city with id %d not found", id)
		}
		return nil, err
	}
	return &city, nil
}

// FindOneByNameAndProvinceID returns (nil, nil) when no row matches.
func (s *CityService) FindOneByNameAndProvinceID(name string, provinceID uint) (*models.City, error) {
	var city models.City
	err := s.db.Preload("Province").
		Where("name = ? AND province_id = ?", name, provinceID).First(&city).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

// FindOneByNameAndProvinceName resolves a city by display names, the lookup
// registration uses. Without a province name an ambiguous city name resolves
// to the first match, with a warning.
func (s *CityService) FindOneByNameAndProvinceName(cityName, provinceName string) (*models.City, error) {
	if provinceName != "" {
		var city models.City
		err := s.db.Preload("Province").
			Joins("JOIN provinces ON provinces.id = cities.province_id").
			Where("cities.name = ? AND provinces.name = ?", cityName, provinceName).
			First(&city).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &city, nil
	}

	var cities []models.City
	if err := s.db.Preload("Province").Where("name = ?", cityName).Find(&cities).Error; err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, nil
	}
	if len(cities) > 1 {
		logrus.Warnf("multiple cities named '%s' found, specify a province name to disambiguate", cityName)
	}
	return &cities[0], nil
}

func (s *CityService) FindByProvince(provinceID uint) ([]models.City, int64, error) {
	var cities []models.City
	if err := s.db.Preload("Province").
		Where("province_id = ?", provinceID).Order("name ASC").Find(&cities).Error; err != nil {
		return nil, 0, err
	}
	return cities, int64(len(cities)), nil
}

func (s *CityService) SearchByName(term string, p *dto.Pagination) ([]models.City, int64, error) {
	if term == "" {
		return nil, 0, BadRequest("search term cannot be empty")
	}
	order, err := p.OrderClause(citySortable)
	if err != nil {
		return nil, 0, BadRequest("%s", err.Error())
	}

	pattern := "%" + term + "%"

	var total int64
	if err := s.db.Model(&models.City{}).Where("LOWER(name) LIKE LOWER(?)", pattern).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cities []models.City
	if err := s.db.Preload("Province").Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order(order).Offset(p.Offset()).Limit(p.LimitValue()).Find(&cities).Error; err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

func (s *CityService) UpdateFull(id uint, input *dto.UpdatePutCity) (*models.City, error) {
	city, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	province, err := s.provinceByID(input.ProvinceID)
	if err != nil {
		return nil, err
	}

	lat, lon := *input.Latitude, *input.Longitude
	if lat != city.Latitude || lon != city.Longitude {
		if err := s.checkCoordsFree(lat, lon, id); err != nil {
			return nil, err
		}
	}
	if input.Name != city.Name || input.ProvinceID != city.ProvinceID {
		if err := s.checkNameFree(input.Name, input.ProvinceID, id); err != nil {
			return nil, err
		}
	}

	city.Name = input.Name
	city.ProvinceID = province.ID
	city.Province = *province
	city.Latitude = lat
	city.Longitude = lon

	if err := s.db.Omit(clause.Associations).Save(city).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("the location (%f, %f) is already registered for another city", lat, lon)
		}
		return nil, err
	}
	logrus.Infof("city %d updated (PUT)", city.ID)
	return s.reload(city.ID)
}

func (s *CityService) UpdatePartial(id uint, input *dto.UpdatePatchCity) (*models.City, error) {
	city, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	nameChanged, provinceChanged, coordsChanged := false, false, false
	if input.Name != nil && *input.Name != city.Name {
		city.Name = *input.Name
		nameChanged = true
	}
	if input.ProvinceID != nil && *input.ProvinceID != city.ProvinceID {
		province, err := s.provinceByID(*input.ProvinceID)
		if err != nil {
			return nil, err
		}
		city.ProvinceID = province.ID
		city.Province = *province
		provinceChanged = true
	}
	if input.Latitude != nil && *input.Latitude != city.Latitude {
		city.Latitude = *input.Latitude
		coordsChanged = true
	}
	if input.Longitude != nil && *input.Longitude != city.Longitude {
		city.Longitude = *input.Longitude
		coordsChanged = true
	}

	if coordsChanged {
		if err := s.checkCoordsFree(city.Latitude, city.Longitude, id); err != nil {
			return nil, err
		}
	}
	if (nameChanged || provinceChanged) && !coordsChanged {
		if err := s.checkNameFree(city.Name, city.ProvinceID, id); err != nil {
			return nil, err
		}
	}

	if err := s.db.Omit(clause.Associations).Save(city).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("the location (%f, %f) is already registered for another city", city.Latitude, city.Longitude)
		}
		return nil, err
	}
	logrus.Infof("city %d updated (PATCH)", city.ID)
	return s.reload(city.ID)
}

func (s *CityService) checkCoordsFree(lat, lon float64, selfID uint) error {
	var clash models.City
	err := s.db.Where("latitude = ? AND longitude = ? AND id <> ?", lat, lon, selfID).First(&clash).Error
	if err == nil {
		return Conflict("the location (%f, %f) is already registered for another city", lat, lon)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *CityService) checkNameFree(name string, provinceID, selfID uint) error {
	var clash models.City
	err := s.db.Where("name = ? AND province_id = ? AND id <> ?", name, provinceID, selfID).First(&clash).Error
	if err == nil {
		return Conflict("city '%s' already exists in that province", name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Remove deletes the city after detaching its persons; people outlive their
// city, so the reference is nulled rather than cascading.
func (s *CityService) Remove(id uint) (string, error) {
	if _, err := s.FindOne(id); err != nil {
		return "", err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Person{}).Where("city_id = ?", id).Update("city_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.City{}, id).Error
	})
	if err != nil {
		return "", err
	}
	logrus.Infof("city %d removed", id)
	return "city removed successfully", nil
}
