package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func authTestRouter(t *testing.T, appKeyHash string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Auth(testSecret, appKeyHash))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetString(CtxCallerID),
			"email": c.GetString(CtxCallerEmail),
			"role":  c.GetString(CtxCallerRole),
		})
	})
	return router
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthRejectsMissingCredentials(t *testing.T) {
	router := authTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAcceptsValidJWT(t *testing.T) {
	router := authTestRouter(t, "")

	token := signToken(t, jwt.MapClaims{
		"email": "buyer@example.com",
		"name":  "Jamie Buyer",
		"role":  "storeUser",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"Jamie Buyer"`)
	assert.Contains(t, rec.Body.String(), `"email":"buyer@example.com"`)
	assert.Contains(t, rec.Body.String(), `"role":"storeUser"`)
}

func TestAuthDefaultsUnknownRoleToStoreUser(t *testing.T) {
	router := authTestRouter(t, "")

	token := signToken(t, jwt.MapClaims{
		"email": "buyer@example.com",
		"role":  "superuser",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"storeUser"`)
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	router := authTestRouter(t, "")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "buyer@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAcceptsAppKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("machine-key"), bcrypt.MinCost)
	require.NoError(t, err)
	router := authTestRouter(t, string(hash))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-App-Key", "machine-key")
	req.Header.Set("X-App-Key-ID", "warehouse-sync")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"warehouse-sync"`)
	assert.Contains(t, rec.Body.String(), `"role":"adminUser"`)
}

func TestAuthRejectsWrongAppKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("machine-key"), bcrypt.MinCost)
	require.NoError(t, err)
	router := authTestRouter(t, string(hash))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-App-Key", "guessed-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(CtxCallerRole, c.GetHeader("X-Test-Role"))
	})
	router.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("X-Test-Role", RoleAdminUser)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("X-Test-Role", RoleStoreUser)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
