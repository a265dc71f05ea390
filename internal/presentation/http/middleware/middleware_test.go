package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
)

type stubResolver map[string]entity.Session

func (r stubResolver) SessionFromToken(token string) (*entity.Session, error) {
	s, ok := r[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &s, nil
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/", handlers...)
	return r
}

func serve(r *gin.Engine, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthAndRequireAdmin(t *testing.T) {
	resolver := stubResolver{
		"admin": {ID: "s1", CashierID: 1, Role: enum.RoleAdmin},
		"till":  {ID: "s2", CashierID: 2, Role: enum.RoleCashier},
	}

	r := newRouter(AuthMiddleware(resolver))
	assert.Equal(t, http.StatusUnauthorized, serve(r, ""))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "nope"))
	assert.Equal(t, http.StatusNoContent, serve(r, "till"))

	r = newRouter(AuthMiddleware(resolver), RequireAdmin())
	assert.Equal(t, http.StatusForbidden, serve(r, "till"))
	assert.Equal(t, http.StatusNoContent, serve(r, "admin"))
}

func TestRateLimiterBlocksBurst(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{RequestsPerMinute: 1, BurstSize: 2})
	defer rl.Stop()

	r := newRouter(rl.Middleware())
	assert.Equal(t, http.StatusNoContent, serve(r, ""))
	assert.Equal(t, http.StatusNoContent, serve(r, ""))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, ""))
}
