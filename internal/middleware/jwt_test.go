package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo_directory/internal/models"
)

var testSecret = []byte("test-secret")

type staticChecker struct {
	exists bool
}

func (s staticChecker) Exists(id uint) (bool, error) {
	return s.exists, nil
}

func testPerson() *models.Person {
	return &models.Person{
		ID:        42,
		FirstName: "Ana",
		LastName:  "García",
		Email:     "ana@example.com",
		Role:      models.RoleAdmin,
	}
}

func protectedRouter(checker PersonChecker, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(testSecret, checker)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, identity)
	})
	r.GET("/protected", handlers...)
	return r
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testPerson(), testSecret, time.Hour)
	require.NoError(t, err)

	identity, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.ID)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.Equal(t, "Ana", identity.FirstName)
	assert.Equal(t, "García", identity.LastName)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testPerson(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(testPerson(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	require.Error(t, err)
}

func TestRequireAuthAcceptsCookie(t *testing.T) {
	router := protectedRouter(staticChecker{exists: true})
	token, err := GenerateToken(testPerson(), testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthAcceptsBearerFallback(t *testing.T) {
	router := protectedRouter(staticChecker{exists: true})
	token, err := GenerateToken(testPerson(), testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	router := protectedRouter(staticChecker{exists: true})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsDeletedPerson(t *testing.T) {
	router := protectedRouter(staticChecker{exists: false})
	token, err := GenerateToken(testPerson(), testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	token, err := GenerateToken(testPerson(), testSecret, time.Hour)
	require.NoError(t, err)

	admitted := protectedRouter(staticChecker{exists: true}, models.RoleAdmin, models.RoleModerator)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	admitted.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	denied := protectedRouter(staticChecker{exists: true}, models.RoleModerator)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w = httptest.NewRecorder()
	denied.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
