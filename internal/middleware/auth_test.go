// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		userID, _ := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	r.GET("/admin", AuthRequired(), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/staff", AuthRequired(), RoleRequired(models.RoleAdmin, models.RoleStaff), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	r := setupAuthRouter()

	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, "/protected", "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateJWT(5, "alice", "customer", 1)
	require.NoError(t, err)
	w = doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":5`)
}

func TestRoleGates(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	r := setupAuthRouter()

	customer, err := utils.GenerateJWT(1, "cust", "customer", 1)
	require.NoError(t, err)
	staff, err := utils.GenerateJWT(2, "staff", "staff", 1)
	require.NoError(t, err)
	admin, err := utils.GenerateJWT(3, "admin", "admin", 1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", customer).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", staff).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/admin", admin).Code)

	assert.Equal(t, http.StatusForbidden, doRequest(r, "/staff", customer).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/staff", staff).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/staff", admin).Code)
}
