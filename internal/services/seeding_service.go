package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"geo_directory/internal/dto"
	"geo_directory/internal/georef"
	"geo_directory/internal/models"
)

const (
	seedCountryName = "Argentina"
	seedCountryCode = "AR"
)

// GeoSource is the slice of the georef client the seeder needs; tests swap
// in a stub without a live API.
type GeoSource interface {
	Provinces(ctx context.Context) ([]georef.Province, error)
	Municipalities(ctx context.Context) ([]georef.Municipality, error)
}

// SeedingService populates Country/Province/City from the external reference
// dataset. It is idempotent: every create goes through the geo services,
// whose dedup-by-location returns existing rows instead of duplicating.
type SeedingService struct {
	countries *CountryService
	provinces *ProvinceService
	cities    *CityService
	source    GeoSource
}

func NewSeedingService(countries *CountryService, provinces *ProvinceService, cities *CityService, source GeoSource) *SeedingService {
	return &SeedingService{
		countries: countries,
		provinces: provinces,
		cities:    cities,
		source:    source,
	}
}

// Summary reports what a seeding run did. Per-item failures never abort the
// run, they only show up here.
type Summary struct {
	ProvincesProcessed int `json:"provincesProcessed"`
	ProvincesSkipped   int `json:"provincesSkipped"`
	CitiesAttempted    int `json:"citiesAttempted"`
	CitiesProcessed    int `json:"citiesProcessed"`
	CitiesSkipped      int `json:"citiesSkipped"`
	CitiesFailed       int `json:"citiesFailed"`
}

// Run executes the full seeding pass. Only a failure to establish the root
// country aborts the run.
func (s *SeedingService) Run(ctx context.Context) (*Summary, error) {
	country, err := s.ensureCountry()
	if err != nil {
		return nil, fmt.Errorf("could not establish seed country: %w", err)
	}
	logrus.Infof("seeding under country '%s' (id %d)", country.Name, country.ID)

	summary := &Summary{}
	provinceIDs := s.seedProvinces(ctx, country, summary)
	s.seedCities(ctx, provinceIDs, summary)

	logrus.Infof("seeding summary: provinces processed=%d skipped=%d; cities attempted=%d processed=%d skipped=%d failed=%d",
		summary.ProvincesProcessed, summary.ProvincesSkipped,
		summary.CitiesAttempted, summary.CitiesProcessed, summary.CitiesSkipped, summary.CitiesFailed)
	return summary, nil
}

func (s *SeedingService) ensureCountry() (*models.Country, error) {
	country, err := s.countries.FindOneByName(seedCountryName)
	if err != nil {
		return nil, err
	}
	if country != nil {
		return country, nil
	}

	code := seedCountryCode
	created, err := s.countries.Create(&dto.CreateCountry{Name: seedCountryName, Code: &code})
	if err == nil {
		return created, nil
	}

	// A concurrent create may have taken the name; the row should be there
	// on a second look.
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Status == http.StatusConflict {
		logrus.Warnf("conflict creating country '%s', re-fetching", seedCountryName)
		country, ferr := s.countries.FindOneByName(seedCountryName)
		if ferr == nil && country != nil {
			return country, nil
		}
	}
	return nil, err
}

// seedProvinces returns the mapping from external region id to local
// province id that city seeding resolves parents through.
func (s *SeedingService) seedProvinces(ctx context.Context, country *models.Country, summary *Summary) map[string]uint {
	localIDs := make(map[string]uint)

	regions, err := s.source.Provinces(ctx)
	if err != nil {
		logrus.Errorf("could not fetch provinces from georef: %v", err)
		return localIDs
	}

	for _, region := range regions {
		if !region.Centroid.Valid() {
			logrus.Warnf("province '%s' (georef id %s) has no valid centroid, skipping", region.Name, region.ID)
			summary.ProvincesSkipped++
			continue
		}

		province, err := s.provinces.Create(&dto.CreateProvince{
			Name:      region.Name,
			CountryID: country.ID,
			Latitude:  region.Centroid.Lat,
			Longitude: region.Centroid.Lon,
		})
		if err != nil {
			var svcErr *Error
			if errors.As(err, &svcErr) && svcErr.Status == http.StatusConflict {
				existing, ferr := s.provinces.FindOneByNameAndCountryID(region.Name, country.ID)
				if ferr == nil && existing != nil {
					logrus.Infof("province '%s' already existed with id %d", region.Name, existing.ID)
					localIDs[region.ID] = existing.ID
					summary.ProvincesProcessed++
					continue
				}
			}
			logrus.Errorf("could not process province '%s' (georef id %s): %v", region.Name, region.ID, err)
			summary.ProvincesSkipped++
			continue
		}
		localIDs[region.ID] = province.ID
		summary.ProvincesProcessed++
	}
	return localIDs
}

func (s *SeedingService) seedCities(ctx context.Context, provinceIDs map[string]uint, summary *Summary) {
	municipalities, err := s.source.Municipalities(ctx)
	if err != nil {
		logrus.Errorf("could not fetch municipalities from georef: %v", err)
		return
	}

	for _, muni := range municipalities {
		summary.CitiesAttempted++

		provinceID, ok := provinceIDs[muni.Province.ID]
		if !ok {
			logrus.Warnf("no local province for municipality '%s' (georef province id %s), skipping", muni.Name, muni.Province.ID)
			summary.CitiesSkipped++
			continue
		}
		if !muni.Centroid.Valid() {
			logrus.Warnf("municipality '%s' (georef id %s) has no valid centroid, skipping", muni.Name, muni.ID)
			summary.CitiesSkipped++
			continue
		}

		_, err := s.cities.Create(&dto.CreateCity{
			Name:       muni.Name,
			ProvinceID: provinceID,
			Latitude:   muni.Centroid.Lat,
			Longitude:  muni.Centroid.Lon,
		})
		if err != nil {
			var svcErr *Error
			if errors.As(err, &svcErr) && svcErr.Status == http.StatusConflict {
				existing, ferr := s.cities.FindOneByNameAndProvinceID(muni.Name, provinceID)
				if ferr == nil && existing != nil {
					logrus.Infof("city '%s' already existed with id %d", muni.Name, existing.ID)
					summary.CitiesProcessed++
					continue
				}
			}
			logrus.Errorf("could not process municipality '%s' (georef id %s): %v", muni.Name, muni.ID, err)
			summary.CitiesFailed++
			continue
		}
		summary.CitiesProcessed++
	}
}
