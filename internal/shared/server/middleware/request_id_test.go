package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDPropagatesOrReplaces(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/x", func(c *gin.Context) { seen = RequestIDFromContext(c) })

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "missing"},
		{name: "valid", incoming: "req-123_abc.def", keep: true},
		{name: "header injection", incoming: "abc\r\nX-Evil: 1"},
		{name: "too long", incoming: strings.Repeat("a", 200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.incoming != "" {
				req.Header[requestIDHeader] = []string{tt.incoming}
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, seen, resp.Header().Get(requestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
				return
			}
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
		})
	}
}
