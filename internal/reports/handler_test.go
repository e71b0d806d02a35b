package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/assessments"
)

type stubResults struct {
	result assessment.Result
	err    error
}

func (s stubResults) Analyze(context.Context, string) (assessment.Result, error) {
	return s.result, s.err
}

func newTestRouter(h *Handler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("userEmail", userID+"@example.com")
		c.Next()
	})
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	h.RegisterAdminRoutes(api.Group("/admin"))
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHandlerDeliverFromSavedAssessmentAndDownload(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestService(t, mailer)
	h := NewHandler(svc, stubResults{result: testResult()})
	owner := newTestRouter(h, "user-1")

	resp := doJSON(owner, http.MethodPost, "/api/v1/reports", nil)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created struct {
		Report Report `json:"report"`
		Queued bool   `json:"queued"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.False(t, created.Queued)
	assert.True(t, created.Report.EmailSent)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].HTML, "user-1@example.com")

	resp = doJSON(owner, http.MethodGet, "/api/v1/reports/"+created.Report.ID+"/download", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, ContentTypePDF, resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "Acme_MRO_Report.pdf")
	assert.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF-")))

	other := newTestRouter(h, "user-2")
	resp = doJSON(other, http.MethodGet, "/api/v1/reports/"+created.Report.ID+"/download", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(other, http.MethodGet, "/api/v1/admin/reports/"+created.Report.ID+"/download", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(other, http.MethodGet, "/api/v1/admin/reports?limit=500", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var listed struct {
		Reports []Report `json:"reports"`
		Limit   int      `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed))
	assert.Len(t, listed.Reports, 1)
	assert.Equal(t, 200, listed.Limit)
}

func TestHandlerDeliverWithoutSavedAssessment(t *testing.T) {
	h := NewHandler(newTestService(t, nil), stubResults{err: assessments.ErrNotFound})
	resp := doJSON(newTestRouter(h, "user-1"), http.MethodPost, "/api/v1/reports", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandlerDeliverQueued(t *testing.T) {
	svc := newTestService(t, nil)
	svc.Queue = &recordingQueue{}
	h := NewHandler(svc, nil)

	resp := doJSON(newTestRouter(h, "user-1"), http.MethodPost, "/api/v1/reports", map[string]any{"analysisResult": testResult()})
	assert.Equal(t, http.StatusAccepted, resp.Code)
}

func TestHandlerRender(t *testing.T) {
	h := NewHandler(newTestService(t, nil), nil)
	r := newTestRouter(h, "user-1")

	resp := doJSON(r, http.MethodPost, "/api/v1/reports/render?format=xlsx", map[string]any{"analysisResult": testResult()})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, ContentTypeXLSX, resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "Acme_MRO_Report.xlsx")

	resp = doJSON(r, http.MethodPost, "/api/v1/reports/render?format=txt", map[string]any{"analysisResult": testResult()})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(r, http.MethodPost, "/api/v1/reports/render", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
