package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	config "github.com/ranieriiuri/eclesial-arrecadacoes/config"
	utils "github.com/ranieriiuri/eclesial-arrecadacoes/utils"
)

func newTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "email": c.GetString("email")})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := newTestRouter(cfg)

	t.Run("sem header retorna 401", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protegido", nil)
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token inválido retorna 401", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protegido", nil)
		req.Header.Set("Authorization", "Bearer lixo")
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token expirado retorna 401", func(t *testing.T) {
		token, err := utils.GenerateToken(cfg.JWTSecret, "u1", "a@b.c", "", -time.Minute)
		assert.NoError(t, err)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protegido", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token válido popula o contexto", func(t *testing.T) {
		token, err := utils.GenerateToken(cfg.JWTSecret, "u1", "a@b.c", "tesoureira", time.Hour)
		assert.NoError(t, err)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protegido", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"user_id":"u1"`)
		assert.Contains(t, rr.Body.String(), `"email":"a@b.c"`)
	})
}
