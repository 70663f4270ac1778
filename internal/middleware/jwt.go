package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"geo_directory/internal/models"
)

// AuthCookieName is the cookie carrying the access token.
const AuthCookieName = "jwt"

const identityKey = "identity"

// Identity is the decoded token payload attached to authenticated requests.
type Identity struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PersonChecker confirms the token subject still exists; a deleted person's
// tokens die with the row.
type PersonChecker interface {
	Exists(id uint) (bool, error)
}

// GenerateToken signs an HS256 token for the person with the configured expiry.
func GenerateToken(person *models.Person, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       float64(person.ID),
		"email":     person.Email,
		"role":      person.Role,
		"firstName": person.FirstName,
		"lastName":  person.LastName,
		"iat":       now.Unix(),
		"exp":       now.Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates the signature and expiry and decodes the claims.
func ParseToken(tokenStr string, secret []byte) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	identity := &Identity{}
	if sub, ok := claims["sub"].(float64); ok {
		identity.ID = uint(sub)
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}
	if first, ok := claims["firstName"].(string); ok {
		identity.FirstName = first
	}
	if last, ok := claims["lastName"].(string); ok {
		identity.LastName = last
	}
	return identity, nil
}

// extractToken prefers the auth cookie, which is how the browser client
// sends credentials, and falls back to a bearer header for API clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireAuth validates the request token and attaches the Identity to the
// context. Public routes simply never install this middleware.
func RequireAuth(secret []byte, persons PersonChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token"})
			return
		}

		identity, err := ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		exists, err := persons.Exists(identity.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not verify identity"})
			return
		}
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRoles gates a route on a static role whitelist; assumes RequireAuth
// already ran.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || identity.Role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No role associated with this account"})
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// GetIdentity returns the authenticated identity attached by RequireAuth.
func GetIdentity(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}
