package quiz

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public quiz routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quiz/questions", h.questions)
	rg.POST("/quiz/submissions", h.submit)
	rg.POST("/quiz/submissions/:id/full-review", h.fullReview)
}

// RegisterAdminRoutes attaches the lead listing for administrators.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/quiz/submissions", h.list)
}

func (h *Handler) questions(c *gin.Context) {
	respond.OK(c, gin.H{"questions": Questions()})
}

type submitRequest struct {
	Lead
	Answers Answers `json:"answers"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.Submit(c.Request.Context(), req.Lead, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store quiz submission", nil)
		}
		return
	}

	respond.Created(c, res)
}

func (h *Handler) fullReview(c *gin.Context) {
	sub, err := h.Svc.RequestFullReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "quiz submission not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update quiz submission", nil)
		}
		return
	}

	respond.OK(c, sub)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	subs, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list quiz submissions", nil)
		return
	}
	if subs == nil {
		subs = []Submission{}
	}

	respond.OK(c, gin.H{"submissions": subs, "limit": limit, "offset": offset})
}
