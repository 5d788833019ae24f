package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"tablebook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	auth usecase.AuthUseCase
}

const (
	ctxStaffIDKey   = "staff_id"
	ctxOutletIDKey  = "outlet_id"
	ctxStaffRoleKey = "staff_role"
)

func NewAuthMiddleware(auth usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.auth.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxStaffIDKey, claims.StaffID)
		c.Set(ctxOutletIDKey, claims.OutletID)
		c.Set(ctxStaffRoleKey, claims.Role)
		c.Next()
	}
}

func GetStaffID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxStaffIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetOutletID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxOutletIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetStaffRole(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxStaffRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
