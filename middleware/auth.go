package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	config "github.com/ranieriiuri/eclesial-arrecadacoes/config"
	utils "github.com/ranieriiuri/eclesial-arrecadacoes/utils"
)

// AuthMiddleware validates the bearer token and stashes the caller's identity
// in the gin context ("user_id", "email", "cargo") for the controllers.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token ausente"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := utils.ValidateToken(cfg.JWTSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token inválido ou expirado"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("cargo", claims.Cargo)
		c.Next()
	}
}
