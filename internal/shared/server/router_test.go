package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aerogap-backend/internal/quiz"
	"aerogap-backend/internal/shared/auth"
	"aerogap-backend/internal/shared/config"
)

const testSecret = "router-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Config: config.Config{
			JWTSecret:            testSecret,
			AllowGuests:          true,
			AdminEmails:          []string{"ops@example.com"},
			RateLimitRPS:         100,
			RateLimitBurst:       100,
			SubmitRateLimitRPS:   100,
			SubmitRateLimitBurst: 100,
		},
		QuizHandler: quiz.NewHandler(&quiz.Service{Repo: quiz.NewMemoryRepo()}),
	})
}

func bearer(t *testing.T, email string) string {
	t.Helper()
	token, err := auth.SignJWT([]byte(testSecret), auth.Claims{
		Sub:   "user-1",
		Email: email,
		Exp:   time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = serve(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestQuizQuestionsNeedNoIdentity(t *testing.T) {
	r := newTestRouter()
	w := serve(r, http.MethodGet, "/api/v1/quiz/questions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMeRequiresIdentity(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodGet, "/api/v1/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/me", map[string]string{"X-Guest-Id": "abc"})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "guest:abc", body["userId"])
	assert.Equal(t, true, body["isGuest"])
	assert.Equal(t, false, body["isAdmin"])

	w = serve(r, http.MethodGet, "/api/v1/me", map[string]string{"Authorization": bearer(t, "Ops@Example.com")})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ops@example.com", body["email"])
	assert.Equal(t, true, body["isAdmin"])
}

func TestAdminRoutesRequireAdminEmail(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{name: "anonymous", want: http.StatusUnauthorized},
		{name: "guest", headers: map[string]string{"X-Guest-Id": "abc"}, want: http.StatusForbidden},
		{name: "user", headers: map[string]string{"Authorization": bearer(t, "pat@example.com")}, want: http.StatusForbidden},
		{name: "admin", headers: map[string]string{"Authorization": bearer(t, "ops@example.com")}, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, "/api/v1/admin/quiz/submissions", tt.headers)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRateLimitGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got string
	handler := func(c *gin.Context) { got = rateLimitGroup(c) }
	r.POST("/api/v1/quiz/submissions/:id/full-review", handler)
	r.POST("/api/v1/analyze", handler)
	r.GET("/api/v1/documents", handler)

	cases := map[string]string{
		"POST /api/v1/quiz/submissions/s-1/full-review": submitRateLimitGroup,
		"POST /api/v1/analyze":                          "",
		"GET /api/v1/documents":                         "",
	}
	for route, want := range cases {
		parts := strings.SplitN(route, " ", 2)
		got = "unset"
		serve(r, parts[0], parts[1], nil)
		assert.Equal(t, want, got, route)
	}
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(""))
	assert.Equal(t, ":9000", Addr("9000"))
	assert.Equal(t, ":9000", Addr(":9000"))
}
