package middleware

import (
	"lexi_backend/internal/config"
	"lexi_backend/internal/util"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	adminArea     = "/admin"
	dashboardArea = "/dashboard"
	loginPage     = "/login"
)

// underPrefix matches prefix itself and anything below it, but not
// siblings such as /administrator.
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func loginRedirect(c *gin.Context, reason string) {
	from := c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		from += "?" + c.Request.URL.RawQuery
	}
	q := url.Values{}
	q.Set("reason", reason)
	q.Set("from", from)
	c.Redirect(http.StatusFound, loginPage+"?"+q.Encode())
	c.Abort()
}

// RouteGuard keeps learners out of the admin area and admins out of the learner
// dashboard. Anonymous visitors of either area are sent to the login page.
func RouteGuard(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		switch {
		case underPrefix(path, adminArea):
			claims := readSession(c, cfg)
			if claims == nil {
				loginRedirect(c, "admin")
				return
			}
			if !claims.IsAdmin() {
				c.Redirect(http.StatusFound, dashboardArea)
				c.Abort()
				return
			}
			c.Set(util.ContextUserKey, claims)

		case underPrefix(path, dashboardArea):
			claims := readSession(c, cfg)
			if claims == nil {
				loginRedirect(c, "user")
				return
			}
			if claims.IsAdmin() {
				c.Redirect(http.StatusFound, adminArea)
				c.Abort()
				return
			}
			c.Set(util.ContextUserKey, claims)
		}

		c.Next()
	}
}
