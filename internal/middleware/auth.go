package middleware

import (
	"lexi_backend/internal/config"
	"lexi_backend/internal/model"
	"lexi_backend/internal/util"
	"lexi_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sessionToken reads the session cookie (plain or __Secure- prefixed), then
// falls back to an Authorization: Bearer header.
func sessionToken(c *gin.Context, cookieName string) string {
	for _, name := range []string{cookieName, util.SecureCookiePrefix + cookieName} {
		if v, err := c.Cookie(name); err == nil && v != "" {
			return v
		}
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// readSession returns nil for a missing or undecodable session. Expired,
// tampered and foreign tokens all look like no session at all.
func readSession(c *gin.Context, cfg *config.Config) *util.Claims {
	token := sessionToken(c, cfg.CookieName())
	if token == "" {
		return nil
	}
	claims, err := util.ParseJWT(token, cfg.JWT.Secret)
	if err != nil {
		logger.Log.Debug("session rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
		return nil
	}
	return claims
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := readSession(c, cfg)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

// TryAuthMiddleware attaches the session when there is one and never rejects.
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := readSession(c, cfg); claims != nil {
			c.Set(util.ContextUserKey, claims)
		}
		c.Next()
	}
}

// RoleMiddleware must run after AuthMiddleware.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		role := user.Role
		if !role.Valid() {
			role = model.RoleUser
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}
