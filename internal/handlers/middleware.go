package handlers

import (
	"net/http"
	"strings"

	"spbu-service/internal/services"
	"spbu-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired validates the bearer token and stores the caller's identity
// in the request context. No data work happens on a missing session.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Sesi tidak ditemukan, silakan login", nil, http.StatusUnauthorized))
			return
		}

		token, err := jwt.Parse(authHeader[7:], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Sesi tidak valid, silakan login ulang", nil, http.StatusUnauthorized))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Sesi tidak valid, silakan login ulang", nil, http.StatusUnauthorized))
			return
		}

		userID, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		c.Set("user_id", userID)
		c.Set("user_email", email)
		c.Next()
	}
}

// ManagerOnly gates manager screens. The role comes from a fresh lookup, not
// the token claim; a failed lookup reads as "unknown" and is denied without
// retry. A denial audits ACCESS_DENIED with the attempted page and the
// observed role, then tells the client to sign out.
func ManagerOnly(auth *services.AuthService, audit *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		email := c.GetString("user_email")

		role, err := auth.GetRole(userID)
		if err != nil || role == "" {
			role = "unknown"
		}

		if role != "manajer" {
			audit.Log(email, services.ActionAccessDenied, map[string]interface{}{
				"attemptedPage": c.FullPath(),
				"userRole":      role,
			})
			c.AbortWithStatusJSON(http.StatusForbidden,
				common.NewErrorResponse("Akses ditolak. Anda bukan manajer.", gin.H{"signOut": true}, http.StatusForbidden))
			return
		}
		c.Next()
	}
}
