package georef

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Client talks to the Argentine Georef reference API
// (https://apis.datos.gob.ar/georef/api). All fields requested are the
// minimum the seeder needs.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Centroid coordinates decode as pointers so an absent or null value in the
// upstream payload is distinguishable from 0.
type Centroid struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Valid reports whether both coordinates are present.
func (c *Centroid) Valid() bool {
	return c != nil && c.Lat != nil && c.Lon != nil
}

type Province struct {
	ID       string    `json:"id"`
	Name     string    `json:"nombre"`
	Centroid *Centroid `json:"centroide"`
}

type ProvinceRef struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

type Municipality struct {
	ID       string      `json:"id"`
	Name     string      `json:"nombre"`
	Province ProvinceRef `json:"provincia"`
	Centroid *Centroid   `json:"centroide"`
}

type provincesResponse struct {
	Provinces []Province `json:"provincias"`
	Total     int        `json:"total"`
}

type municipalitiesResponse struct {
	Municipalities []Municipality `json:"municipios"`
	Total          int            `json:"total"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call georef API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("georef API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode georef response: %w", err)
	}
	return nil
}

// Provinces fetches every first-level administrative region with centroids.
func (c *Client) Provinces(ctx context.Context) ([]Province, error) {
	params := url.Values{}
	params.Set("campos", "id,nombre,centroide.lat,centroide.lon")
	params.Set("max", "100")

	var resp provincesResponse
	if err := c.get(ctx, "/provincias", params, &resp); err != nil {
		return nil, err
	}
	logrus.Infof("fetched %d provinces from georef", len(resp.Provinces))
	return resp.Provinces, nil
}

// Municipalities fetches every second-level region with its parent province.
func (c *Client) Municipalities(ctx context.Context) ([]Municipality, error) {
	params := url.Values{}
	params.Set("campos", "id,nombre,provincia.id,provincia.nombre,centroide.lat,centroide.lon")
	params.Set("max", "5000")

	var resp municipalitiesResponse
	if err := c.get(ctx, "/municipios", params, &resp); err != nil {
		return nil, err
	}
	logrus.Infof("fetched %d municipalities from georef", len(resp.Municipalities))
	return resp.Municipalities, nil
}
