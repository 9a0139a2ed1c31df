package reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"review-backend/internal/shared/server/middleware"
	"review-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the reviews service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches review and rewrite routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.startReview)
	rg.GET("/reviews", h.listReviews)
	rg.GET("/reviews/:id", h.getReview)
	rg.POST("/rewrites", h.rewrite)
	rg.GET("/rewrites", h.listRewrites)
}

type submitRequest struct {
	Language string `json:"language"`
	Code     string `json:"code" binding:"required"`
	Share    bool   `json:"share"`
}

func (h *Handler) startReview(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "code is required", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	review, err := h.Svc.Create(ctx, userID, req.Language, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", "code is required", nil)
		case errors.Is(err, ErrCodeTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "code exceeds the size limit", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start review", nil)
		}
		return
	}

	c.Set("reviewId", review.ID)
	respond.JSON(c, http.StatusAccepted, gin.H{
		"reviewId": review.ID,
		"status":   review.Status,
	})
}

func (h *Handler) getReview(c *gin.Context) {
	reviewID := c.Param("id")
	if reviewID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "review id is required", nil)
		return
	}

	review, err := h.Svc.Get(c.Request.Context(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "review not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch review", nil)
		}
		return
	}
	if review.UserID != middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusNotFound, "not_found", "review not found", nil)
		return
	}

	resp := gin.H{
		"id":       review.ID,
		"status":   review.Status,
		"language": review.Language,
	}
	if review.Status == StatusCompleted {
		issues := review.Issues
		if issues == nil {
			issues = []Issue{}
		}
		resp["issues"] = issues
		resp["severityCounts"] = SeverityCounts(issues)
	}
	if review.Status == StatusFailed && review.ErrorMessage != nil {
		resp["error"] = *review.ErrorMessage
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) listReviews(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	limit, offset := pagination(c)

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list reviews", nil)
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, r := range items {
		item := gin.H{
			"reviewId":  r.ID,
			"language":  r.Language,
			"status":    r.Status,
			"createdAt": r.CreatedAt,
		}
		if r.Status == StatusCompleted {
			item["issueCount"] = len(r.Issues)
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) rewrite(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "code is required", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	rewrite, code, err := h.Svc.RewriteCode(ctx, RewriteInput{
		UserID:   userID,
		Language: req.Language,
		Code:     req.Code,
		Share:    req.Share,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", "code is required", nil)
		case errors.Is(err, ErrCodeTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "code exceeds the size limit", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "rewrite_failed", "failed to rewrite code", nil)
		}
		return
	}

	c.Set("rewriteId", rewrite.ID)
	resp := gin.H{
		"rewriteId": rewrite.ID,
		"language":  rewrite.Language,
		"code":      code,
	}
	if rewrite.GistURL != "" {
		resp["gistUrl"] = rewrite.GistURL
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) listRewrites(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	limit, offset := pagination(c)

	items, err := h.Svc.ListRewrites(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list rewrites", nil)
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, rw := range items {
		item := gin.H{
			"rewriteId": rw.ID,
			"language":  rw.Language,
			"createdAt": rw.CreatedAt,
		}
		if rw.GistURL != "" {
			item["gistUrl"] = rw.GistURL
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
