package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET,POST,PUT,PATCH,DELETE,OPTIONS"
	corsHeaders = "Content-Type, Authorization, X-Guest-Id, X-Request-Id"
	corsExpose  = "X-Request-Id, Content-Disposition"
	corsMaxAge  = "600"
)

// originMatcher accepts exact origins, "*" and "https://*.example.com" style
// subdomain patterns.
type originMatcher struct {
	any      bool
	exact    map[string]struct{}
	prefixes []string
	suffixes []string
}

func newOriginMatcher(allowed []string) originMatcher {
	m := originMatcher{exact: map[string]struct{}{}}
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch {
		case o == "":
		case o == "*":
			m.any = true
		case strings.Contains(o, "://*."):
			scheme, host, _ := strings.Cut(o, "*")
			m.prefixes = append(m.prefixes, scheme)
			m.suffixes = append(m.suffixes, host)
		default:
			m.exact[o] = struct{}{}
		}
	}
	return m
}

func (m originMatcher) allows(origin string) bool {
	if m.any {
		return true
	}
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for i, suffix := range m.suffixes {
		prefix := m.prefixes[i]
		if !strings.HasPrefix(origin, prefix) || !strings.HasSuffix(origin, suffix) ||
			len(origin) <= len(prefix)+len(suffix) {
			continue
		}
		if sub := origin[len(prefix) : len(origin)-len(suffix)]; !strings.ContainsAny(sub, "/:@") {
			return true
		}
	}
	return false
}

// CORS answers preflight requests and sets CORS headers for allowed origins.
// Credentials are only allowed for explicitly listed origins.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	matcher := newOriginMatcher(allowedOrigins)

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" && matcher.allows(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if !matcher.any {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Expose-Headers", corsExpose)
			h.Set("Access-Control-Max-Age", corsMaxAge)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
