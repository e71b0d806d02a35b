package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/shared/auth"
)

var testSecret = []byte("test-secret")

func newAuthRouter(cfg AuthConfig, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(cfg))
	handlers := append(extra, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c), "guest": IsGuest(c)})
	})
	router.GET("/api/v1/assessment", handlers...)
	router.OPTIONS("/api/v1/assessment", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func bearer(t *testing.T, claims auth.Claims) string {
	t.Helper()
	token, err := auth.SignJWT(testSecret, claims)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return "Bearer " + token
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := newAuthRouter(AuthConfig{Secret: testSecret})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/assessment", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthBearerToken(t *testing.T) {
	router := newAuthRouter(AuthConfig{Secret: testSecret})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessment", nil)
	req.Header.Set("Authorization", bearer(t, auth.Claims{Sub: "user-1"}))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	bad := httptest.NewRequest(http.MethodGet, "/api/v1/assessment", nil)
	bad.Header.Set("Authorization", "Bearer nope")
	badResp := httptest.NewRecorder()
	router.ServeHTTP(badResp, bad)
	if badResp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", badResp.Code)
	}
}

func TestAuthGuestHeader(t *testing.T) {
	allowed := newAuthRouter(AuthConfig{Secret: testSecret, AllowGuests: true})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessment", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	allowed.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for guest, got %d", resp.Code)
	}

	denied := newAuthRouter(AuthConfig{Secret: testSecret})
	resp = httptest.NewRecorder()
	denied.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when guests disabled, got %d", resp.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	router := newAuthRouter(AuthConfig{Secret: testSecret, AllowGuests: true}, RequireAdmin([]string{" Admin@Example.com "}))

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"admin", func(r *http.Request) {
			r.Header.Set("Authorization", bearer(t, auth.Claims{Sub: "u1", Email: "admin@example.com"}))
		}, http.StatusOK},
		{"admin mixed case claim", func(r *http.Request) {
			r.Header.Set("Authorization", bearer(t, auth.Claims{Sub: "u1", Email: "ADMIN@example.com"}))
		}, http.StatusOK},
		{"other user", func(r *http.Request) {
			r.Header.Set("Authorization", bearer(t, auth.Claims{Sub: "u2", Email: "pat@example.com"}))
		}, http.StatusForbidden},
		{"no email", func(r *http.Request) {
			r.Header.Set("Authorization", bearer(t, auth.Claims{Sub: "u3"}))
		}, http.StatusForbidden},
		{"guest", func(r *http.Request) {
			r.Header.Set("X-Guest-Id", "g1")
		}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/assessment", nil)
			tc.setup(req)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHeaderEdgeCases(t *testing.T) {
	router := newAuthRouter(AuthConfig{Secret: testSecret, AllowGuests: true})
	token := bearer(t, auth.Claims{Sub: "user-1"})[len("Bearer "):]

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"lowercase scheme", "Authorization", "bearer " + token, http.StatusOK},
		{"basic scheme", "Authorization", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"empty bearer", "Authorization", "Bearer ", http.StatusUnauthorized},
		{"guest with slash", "X-Guest-Id", "../etc", http.StatusUnauthorized},
		{"guest with colon", "X-Guest-Id", "device:42", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/assessment", nil)
			req.Header.Set(tc.header, tc.value)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestAdminSetIgnoresGuests(t *testing.T) {
	admins := NewAdminSet([]string{" Ops@Example.com ", ""})
	if !admins.Allows(Identity{UserID: "u1", Email: "ops@example.com"}) {
		t.Fatalf("expected admin")
	}
	if admins.Allows(Identity{UserID: "guest:x", Email: "ops@example.com", Guest: true}) {
		t.Fatalf("guest must not be admin")
	}
	if admins.Allows(Identity{UserID: "u2"}) {
		t.Fatalf("missing email must not be admin")
	}
}
