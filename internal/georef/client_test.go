package georef

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvincesParsesCentroids(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/provincias", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"provincias": [
				{"id": "14", "nombre": "Córdoba", "centroide": {"lat": -31.4, "lon": -64.2}},
				{"id": "99", "nombre": "Sin Centroide"}
			],
			"total": 2
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	provinces, err := client.Provinces(context.Background())
	require.NoError(t, err)
	require.Len(t, provinces, 2)

	assert.Equal(t, "Córdoba", provinces[0].Name)
	require.True(t, provinces[0].Centroid.Valid())
	assert.Equal(t, -31.4, *provinces[0].Centroid.Lat)

	assert.False(t, provinces[1].Centroid.Valid())

	assert.Contains(t, gotQuery, "max=100")
	assert.Contains(t, gotQuery, "centroide.lat")
}

func TestMunicipalitiesParsesProvinceRef(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/municipios", r.URL.Path)
		assert.Contains(t, r.URL.RawQuery, "max=5000")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"municipios": [
				{
					"id": "140007",
					"nombre": "Villa María",
					"provincia": {"id": "14", "nombre": "Córdoba"},
					"centroide": {"lat": -32.4, "lon": -63.2}
				}
			],
			"total": 1
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	municipalities, err := client.Municipalities(context.Background())
	require.NoError(t, err)
	require.Len(t, municipalities, 1)

	muni := municipalities[0]
	assert.Equal(t, "Villa María", muni.Name)
	assert.Equal(t, "14", muni.Province.ID)
	require.True(t, muni.Centroid.Valid())
	assert.Equal(t, -63.2, *muni.Centroid.Lon)
}

func TestClientReportsUpstreamErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Provinces(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClientHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Municipalities(ctx)
	require.Error(t, err)
}
