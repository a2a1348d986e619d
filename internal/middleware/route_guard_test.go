package middleware

import (
	"lexi_backend/internal/model"
	"lexi_backend/internal/testutil"
	"lexi_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func guardedRouter() *gin.Engine {
	cfg := testutil.Config()
	r := gin.New()
	r.Use(RouteGuard(cfg))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/admin", ok)
	r.GET("/admin/quizzes", ok)
	r.GET("/administrator", ok)
	r.GET("/dashboard", ok)
	r.GET("/dashboard/history", ok)
	r.GET("/leaderboard", ok)
	return r
}

func sessionCookie(t *testing.T, role model.UserRole) *http.Cookie {
	t.Helper()
	u := &model.User{Name: "Tester", Email: "tester@example.com", Role: role}
	u.ID = 5
	return &http.Cookie{Name: "lexi.session-token", Value: testutil.Token(t, u)}
}

func serve(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouteGuardRedirectsAnonymousToLogin(t *testing.T) {
	r := guardedRouter()

	cases := []struct {
		path   string
		reason string
	}{
		{"/admin", "admin"},
		{"/admin/quizzes?page=2", "admin"},
		{"/dashboard", "user"},
		{"/dashboard/history", "user"},
	}
	for _, tc := range cases {
		w := serve(r, tc.path, nil)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", tc.path, w.Code)
		}
		loc, err := url.Parse(w.Header().Get("Location"))
		if err != nil {
			t.Fatalf("%s: bad location: %v", tc.path, err)
		}
		if loc.Path != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %s", tc.path, loc.Path)
		}
		if got := loc.Query().Get("reason"); got != tc.reason {
			t.Fatalf("%s: expected reason=%s, got %s", tc.path, tc.reason, got)
		}
		if got := loc.Query().Get("from"); got != tc.path {
			t.Fatalf("%s: expected from=%s, got %s", tc.path, tc.path, got)
		}
	}
}

func TestRouteGuardRoleRedirects(t *testing.T) {
	r := guardedRouter()
	user := sessionCookie(t, model.RoleUser)
	admin := sessionCookie(t, model.RoleAdmin)

	cases := []struct {
		name     string
		path     string
		cookie   *http.Cookie
		code     int
		location string
	}{
		{"user in admin area", "/admin/quizzes", user, http.StatusFound, "/dashboard"},
		{"admin in dashboard", "/dashboard", admin, http.StatusFound, "/admin"},
		{"user in dashboard", "/dashboard", user, http.StatusOK, ""},
		{"admin in admin area", "/admin", admin, http.StatusOK, ""},
		{"sibling path is not guarded", "/administrator", nil, http.StatusOK, ""},
		{"public page", "/leaderboard", nil, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, tc.path, tc.cookie)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			if tc.location != "" && w.Header().Get("Location") != tc.location {
				t.Fatalf("expected Location %s, got %s", tc.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestRouteGuardMissingRoleIsUser(t *testing.T) {
	r := guardedRouter()
	noRole := sessionCookie(t, "")

	if w := serve(r, "/admin", noRole); w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %d %s", w.Code, w.Header().Get("Location"))
	}
	if w := serve(r, "/dashboard", noRole); w.Code != http.StatusOK {
		t.Fatalf("expected dashboard access, got %d", w.Code)
	}
}

func TestRouteGuardTreatsBadTokenAsAnonymous(t *testing.T) {
	r := guardedRouter()

	u := &model.User{Name: "Old", Email: "old@example.com", Role: model.RoleAdmin}
	u.ID = 9
	expired, err := util.GenerateJWT(u, testutil.Secret, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	forged, err := util.GenerateJWT(u, "some-other-secret-some-other-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	for name, token := range map[string]string{"expired": expired, "forged": forged} {
		w := serve(r, "/admin", &http.Cookie{Name: "lexi.session-token", Value: token})
		loc, _ := url.Parse(w.Header().Get("Location"))
		if w.Code != http.StatusFound || loc.Path != "/login" {
			t.Fatalf("%s token: expected login redirect, got %d %s", name, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestRouteGuardAcceptsSecureCookieName(t *testing.T) {
	r := guardedRouter()
	c := sessionCookie(t, model.RoleUser)
	c.Name = util.SecureCookiePrefix + c.Name

	if w := serve(r, "/dashboard", c); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with __Secure- cookie, got %d", w.Code)
	}
}
