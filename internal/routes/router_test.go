package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"geo_directory/internal/config"
	"geo_directory/internal/dto"
	"geo_directory/internal/middleware"
	"geo_directory/internal/models"
	"geo_directory/internal/services"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Country{}, &models.Province{}, &models.City{}, &models.Person{}))

	georefStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "provincias") {
			w.Write([]byte(`{"provincias": [], "total": 0}`))
			return
		}
		w.Write([]byte(`{"municipios": [], "total": 0}`))
	}))
	t.Cleanup(georefStub.Close)

	cfg := &config.Config{
		Env:               "test",
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		SeedAdminPassword: "seed-password",
		GeorefBaseURL:     georefStub.URL,
		GeorefTimeout:     5 * time.Second,
	}

	return &testEnv{router: SetupRouter(cfg, db), db: db, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createPerson(t *testing.T, email, role string) {
	t.Helper()
	_, err := services.NewPersonService(e.db).Create(&dto.CreatePerson{
		FirstName: "Test",
		LastName:  "Person",
		Email:     email,
		Password:  "secret-password",
		Role:      role,
	})
	require.NoError(t, err)
}

func (e *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	w := e.request(t, http.MethodPost, "/auth/login",
		`{"email": "`+email+`", "password": "secret-password"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AuthCookieName {
			return cookie
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func (e *testEnv) seedGeo(t *testing.T) *models.City {
	t.Helper()
	country, err := services.NewCountryService(e.db).Create(&dto.CreateCountry{Name: "Argentina"})
	require.NoError(t, err)
	lat, lon := -31.4, -64.2
	province, err := services.NewProvinceService(e.db).Create(&dto.CreateProvince{
		Name: "Córdoba", CountryID: country.ID, Latitude: &lat, Longitude: &lon,
	})
	require.NoError(t, err)
	clat, clon := -32.4, -63.2
	city, err := services.NewCityService(e.db).Create(&dto.CreateCity{
		Name: "Villa María", ProvinceID: province.ID, Latitude: &clat, Longitude: &clon,
	})
	require.NoError(t, err)
	return city
}

func TestPublicListingsNeedNoSession(t *testing.T) {
	env := newTestEnv(t)
	env.seedGeo(t)

	for _, path := range []string{"/countries", "/provinces", "/cities", "/provinces/by-country/1", "/cities/by-province/1"} {
		w := env.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestListEnvelopeShape(t *testing.T) {
	env := newTestEnv(t)
	env.seedGeo(t)

	w := env.request(t, http.MethodGet, "/countries?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data []json.RawMessage `json:"data"`
		Meta dto.PageMeta      `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.EqualValues(t, 1, page.Meta.TotalItems)
	assert.Equal(t, 1, page.Meta.CurrentPage)
	assert.Equal(t, 10, page.Meta.ItemsPerPage)
}

func TestMutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.createPerson(t, "user@example.com", models.RoleUser)

	body := `{"name": "Uruguay"}`

	w := env.request(t, http.MethodPost, "/countries", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userCookie := env.login(t, "user@example.com")
	w = env.request(t, http.MethodPost, "/countries", body, userCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.createPerson(t, "admin@example.com", models.RoleAdmin)
	adminCookie := env.login(t, "admin@example.com")
	w = env.request(t, http.MethodPost, "/countries", body, adminCookie)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPersonReadsAllowModerators(t *testing.T) {
	env := newTestEnv(t)
	env.createPerson(t, "user@example.com", models.RoleUser)
	env.createPerson(t, "mod@example.com", models.RoleModerator)

	userCookie := env.login(t, "user@example.com")
	w := env.request(t, http.MethodGet, "/persons", "", userCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	modCookie := env.login(t, "mod@example.com")
	w = env.request(t, http.MethodGet, "/persons", "", modCookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// Moderators read, only admins write.
	w = env.request(t, http.MethodDelete, "/persons/1", "", modCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterLoginStatusLogoutFlow(t *testing.T) {
	env := newTestEnv(t)
	city := env.seedGeo(t)

	w := env.request(t, http.MethodPost, "/auth/register", `{
		"firstName": "Ana",
		"lastName": "García",
		"email": "ana@example.com",
		"password": "secret-password",
		"cityName": "`+city.Name+`"
	}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		UserID uint `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotZero(t, registered.UserID)

	w = env.request(t, http.MethodPost, "/auth/login", `{"email": "ana@example.com", "password": "wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := env.login(t, "ana@example.com")

	w = env.request(t, http.MethodGet, "/auth/status", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		IsAuthenticated bool `json:"isAuthenticated"`
		User            struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.IsAuthenticated)
	assert.Equal(t, "ana@example.com", status.User.Email)
	assert.Equal(t, models.RoleUser, status.User.Role)

	w = env.request(t, http.MethodPost, "/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	for _, cleared := range w.Result().Cookies() {
		if cleared.Name == middleware.AuthCookieName {
			assert.Empty(t, cleared.Value)
		}
	}

	w = env.request(t, http.MethodGet, "/auth/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatusRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	env.createPerson(t, "ana@example.com", models.RoleUser)

	w := env.request(t, http.MethodGet, "/auth/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/auth/status", "",
		&http.Cookie{Name: middleware.AuthCookieName, Value: "not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := env.login(t, "ana@example.com")
	w = env.request(t, http.MethodGet, "/auth/status", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRejectsUnknownCity(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/auth/register", `{
		"firstName": "Ana",
		"lastName": "García",
		"email": "ana@example.com",
		"password": "secret-password",
		"cityName": "Atlantis"
	}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeedTriggerGuards(t *testing.T) {
	env := newTestEnv(t)
	env.createPerson(t, "admin@example.com", models.RoleAdmin)
	adminCookie := env.login(t, "admin@example.com")

	w := env.request(t, http.MethodPost, "/seed/trigger", `{"adminPassword": "wrong"}`, adminCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/seed/trigger", `{"adminPassword": "seed-password"}`, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary services.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Summary.ProvincesProcessed)

	// The stubbed dataset is empty, but the root country still gets ensured.
	var country models.Country
	require.NoError(t, env.db.Where("name = ?", "Argentina").First(&country).Error)
}

func TestSearchAndByIDRequireSession(t *testing.T) {
	env := newTestEnv(t)
	env.seedGeo(t)
	env.createPerson(t, "user@example.com", models.RoleUser)

	w := env.request(t, http.MethodGet, "/countries/search?name=arg", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := env.login(t, "user@example.com")
	w = env.request(t, http.MethodGet, "/countries/search?name=arg", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/cities/1", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}
