package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"geo_directory/internal/dto"
	"geo_directory/internal/models"
)

// newTestDB opens an isolated in-memory database with the same error
// translation the production connection uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite exists per connection; cap the pool so every
	// query sees the same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Country{}, &models.Province{}, &models.City{}, &models.Person{}))
	return db
}

func ptr[T any](v T) *T { return &v }

func mustCountry(t *testing.T, db *gorm.DB, name, code string) *models.Country {
	t.Helper()
	country, err := NewCountryService(db).Create(&dto.CreateCountry{Name: name, Code: &code})
	require.NoError(t, err)
	return country
}

func mustProvince(t *testing.T, db *gorm.DB, name string, countryID uint, lat, lon float64) *models.Province {
	t.Helper()
	province, err := NewProvinceService(db).Create(&dto.CreateProvince{
		Name:      name,
		CountryID: countryID,
		Latitude:  &lat,
		Longitude: &lon,
	})
	require.NoError(t, err)
	return province
}

func mustCity(t *testing.T, db *gorm.DB, name string, provinceID uint, lat, lon float64) *models.City {
	t.Helper()
	city, err := NewCityService(db).Create(&dto.CreateCity{
		Name:       name,
		ProvinceID: provinceID,
		Latitude:   &lat,
		Longitude:  &lon,
	})
	require.NoError(t, err)
	return city
}
