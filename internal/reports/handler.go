package reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/assessments"
	"aerogap-backend/internal/shared/server/middleware"
	"aerogap-backend/internal/shared/server/respond"
	"aerogap-backend/internal/shared/storage/object"
	"aerogap-backend/internal/shared/telemetry"
)

const maxBodyBytes = 1 << 20

// ResultSource produces the analysis result for a user's saved assessment.
type ResultSource interface {
	Analyze(ctx context.Context, userID string) (assessment.Result, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc     *Service
	Results ResultSource
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, results ResultSource) *Handler {
	return &Handler{Svc: svc, Results: results}
}

// RegisterRoutes attaches user report routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reports", h.deliver)
	rg.POST("/reports/render", h.render)
	rg.GET("/reports", h.listMine)
	rg.GET("/reports/:id/download", h.download)
}

// RegisterAdminRoutes attaches routes for administrators.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports", h.listAll)
	rg.GET("/reports/:id/download", h.adminDownload)
}

type reportRequest struct {
	AnalysisResult *assessment.Result `json:"analysisResult"`
}

// resolveResult uses the posted result when present and otherwise analyzes
// the caller's saved assessment.
func (h *Handler) resolveResult(c *gin.Context) (assessment.Result, bool) {
	var req reportRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return assessment.Result{}, false
	}
	if req.AnalysisResult != nil {
		return *req.AnalysisResult, true
	}
	if h.Results == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysisResult is required", nil)
		return assessment.Result{}, false
	}
	result, err := h.Results.Analyze(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, assessments.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no saved assessment", nil)
		case errors.Is(err, assessments.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze assessment", nil)
		}
		return assessment.Result{}, false
	}
	return result, true
}

func (h *Handler) deliver(c *gin.Context) {
	result, ok := h.resolveResult(c)
	if !ok {
		return
	}
	submittedBy := middleware.UserEmailFromContext(c)
	if submittedBy == "" {
		submittedBy = middleware.UserNameFromContext(c)
	}

	rep, queued, err := h.Svc.Request(c.Request.Context(), DeliverRequest{
		UserID:      middleware.UserIDFromContext(c),
		SubmittedBy: submittedBy,
		Result:      result,
	}, c.GetString("requestId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ReportIDKey, rep.ID)
	if queued {
		respond.JSON(c, http.StatusAccepted, gin.H{"report": rep, "queued": true})
		return
	}
	respond.Created(c, gin.H{"report": rep, "queued": false})
}

func (h *Handler) render(c *gin.Context) {
	result, ok := h.resolveResult(c)
	if !ok {
		return
	}
	data, contentType, fileName, err := h.Svc.Render(result, c.Query("format"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Attachment(c, fileName, contentType, data)
}

func (h *Handler) listMine(c *gin.Context) {
	reps, err := h.Svc.ListByUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"reports": reps})
}

func (h *Handler) listAll(c *gin.Context) {
	limit := 50
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	reps, err := h.Svc.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"reports": reps, "limit": limit, "offset": offset})
}

func (h *Handler) download(c *gin.Context) {
	h.stream(c, false)
}

func (h *Handler) adminDownload(c *gin.Context) {
	h.stream(c, true)
}

func (h *Handler) stream(c *gin.Context, admin bool) {
	id := c.Param("id")
	c.Set(middleware.ReportIDKey, id)

	rep, rc, err := h.Svc.Open(c.Request.Context(), id, middleware.UserIDFromContext(c), admin)
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		telemetry.Error("reports.download_failed", map[string]any{"report_id": id, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read report", nil)
		return
	}
	respond.Attachment(c, rep.FileName, ContentTypePDF, buf.Bytes())
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, object.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
	case errors.Is(err, ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be pdf or xlsx", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "report request failed", nil)
	}
}
