package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"geo_directory/internal/georef"
	"geo_directory/internal/models"
)

type stubGeoSource struct {
	provinces      []georef.Province
	municipalities []georef.Municipality
}

func (s *stubGeoSource) Provinces(ctx context.Context) ([]georef.Province, error) {
	return s.provinces, nil
}

func (s *stubGeoSource) Municipalities(ctx context.Context) ([]georef.Municipality, error) {
	return s.municipalities, nil
}

func centroid(lat, lon float64) *georef.Centroid {
	return &georef.Centroid{Lat: &lat, Lon: &lon}
}

func newSeeder(db *gorm.DB, source GeoSource) *SeedingService {
	return NewSeedingService(
		NewCountryService(db),
		NewProvinceService(db),
		NewCityService(db),
		source,
	)
}

func TestSeedingRunCountsAndSkips(t *testing.T) {
	db := newTestDB(t)

	source := &stubGeoSource{
		provinces: []georef.Province{
			{ID: "14", Name: "Córdoba", Centroid: centroid(-31.4, -64.2)},
			{ID: "82", Name: "Santa Fe", Centroid: centroid(-31.6, -60.7)},
			{ID: "99", Name: "Sin Centroide"},
		},
		municipalities: []georef.Municipality{
			{ID: "140007", Name: "Villa María", Province: georef.ProvinceRef{ID: "14"}, Centroid: centroid(-32.4, -63.2)},
			{ID: "820007", Name: "Rosario", Province: georef.ProvinceRef{ID: "82"}, Centroid: centroid(-32.9, -60.6)},
			{ID: "999999", Name: "Huérfana", Province: georef.ProvinceRef{ID: "77"}, Centroid: centroid(-30.0, -60.0)},
			{ID: "140014", Name: "Sin Centroide", Province: georef.ProvinceRef{ID: "14"}},
		},
	}

	summary, err := newSeeder(db, source).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ProvincesProcessed)
	assert.Equal(t, 1, summary.ProvincesSkipped)
	assert.Equal(t, 4, summary.CitiesAttempted)
	assert.Equal(t, 2, summary.CitiesProcessed)
	assert.Equal(t, 2, summary.CitiesSkipped)
	assert.Equal(t, 0, summary.CitiesFailed)

	var country models.Country
	require.NoError(t, db.Where("name = ?", "Argentina").First(&country).Error)
	require.NotNil(t, country.Code)
	assert.Equal(t, "AR", *country.Code)
}

func TestSeedingRunIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	source := &stubGeoSource{
		provinces: []georef.Province{
			{ID: "14", Name: "Córdoba", Centroid: centroid(-31.4, -64.2)},
		},
		municipalities: []georef.Municipality{
			{ID: "140007", Name: "Villa María", Province: georef.ProvinceRef{ID: "14"}, Centroid: centroid(-32.4, -63.2)},
		},
	}
	seeder := newSeeder(db, source)

	_, err := seeder.Run(context.Background())
	require.NoError(t, err)

	summary, err := seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ProvincesProcessed)
	assert.Equal(t, 1, summary.CitiesProcessed)

	var provinceCount, cityCount, countryCount int64
	require.NoError(t, db.Model(&models.Province{}).Count(&provinceCount).Error)
	require.NoError(t, db.Model(&models.City{}).Count(&cityCount).Error)
	require.NoError(t, db.Model(&models.Country{}).Count(&countryCount).Error)
	assert.EqualValues(t, 1, provinceCount)
	assert.EqualValues(t, 1, cityCount)
	assert.EqualValues(t, 1, countryCount)
}

func TestSeedingReusesExistingCountry(t *testing.T) {
	db := newTestDB(t)
	existing := mustCountry(t, db, "Argentina", "AR")

	source := &stubGeoSource{
		provinces: []georef.Province{
			{ID: "14", Name: "Córdoba", Centroid: centroid(-31.4, -64.2)},
		},
	}

	_, err := newSeeder(db, source).Run(context.Background())
	require.NoError(t, err)

	var province models.Province
	require.NoError(t, db.Where("name = ?", "Córdoba").First(&province).Error)
	assert.Equal(t, existing.ID, province.CountryID)
}
