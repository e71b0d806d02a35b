package assessments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/shared/server/middleware"
	"aerogap-backend/internal/shared/server/respond"
)

const maxBodySize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches assessment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/assessment", h.load)
	rg.PUT("/assessment", h.save)
	rg.PATCH("/assessment", h.update)
	rg.DELETE("/assessment", h.delete)
	rg.POST("/assessment/analyze", h.analyzeSaved)
	rg.GET("/assessment/progress", h.progressSaved)
	rg.GET("/assessment/layout", h.layout)
	rg.POST("/analyze", h.analyze)
	rg.POST("/progress", h.progress)
}

type saveRequest struct {
	AssessmentData assessment.Data `json:"assessmentData"`
	CurrentStep    *int            `json:"currentStep"`
}

type dataRequest struct {
	AssessmentData assessment.Data `json:"assessmentData"`
}

func (h *Handler) load(c *gin.Context) {
	sess, err := h.Svc.Load(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to load assessment")
		return
	}
	respond.OK(c, sess)
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if !bind(c, &req) {
		return
	}
	step := 0
	if req.CurrentStep != nil {
		step = *req.CurrentStep
	}
	sess, err := h.Svc.Save(c.Request.Context(), middleware.UserIDFromContext(c), req.AssessmentData, step)
	if err != nil {
		h.fail(c, err, "failed to save assessment")
		return
	}
	respond.OK(c, sess)
}

func (h *Handler) update(c *gin.Context) {
	var req saveRequest
	if !bind(c, &req) {
		return
	}
	sess, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), req.AssessmentData, req.CurrentStep)
	if err != nil {
		h.fail(c, err, "failed to update assessment")
		return
	}
	respond.OK(c, sess)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c)); err != nil {
		h.fail(c, err, "failed to delete assessment")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) analyzeSaved(c *gin.Context) {
	result, err := h.Svc.Analyze(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to analyze assessment")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) progressSaved(c *gin.Context) {
	report, err := h.Svc.Progress(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to compute progress")
		return
	}
	respond.OK(c, report)
}

func (h *Handler) layout(c *gin.Context) {
	respond.OK(c, gin.H{"sections": h.Svc.evaluator().Layout()})
}

// analyze runs the engine on the posted answers without touching the saved session.
func (h *Handler) analyze(c *gin.Context) {
	var req dataRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.Svc.Analyzer.Analyze(c.Request.Context(), req.AssessmentData)
	if err != nil {
		h.fail(c, err, "failed to analyze assessment")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) progress(c *gin.Context) {
	var req dataRequest
	if !bind(c, &req) {
		return
	}
	respond.OK(c, h.Svc.evaluator().Summarize(req.AssessmentData))
}

func bind(c *gin.Context, dst any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	return true
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "assessment not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case c.Request.Context().Err() != nil:
		respond.Error(c, http.StatusRequestTimeout, "canceled", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
