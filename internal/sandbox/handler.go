package sandbox

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"review-backend/internal/shared/server/respond"
)

// Handler exposes sandbox execution over HTTP.
type Handler struct {
	Client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/executions", h.execute)
}

type executeRequest struct {
	Language string `json:"language" binding:"required"`
	Version  string `json:"version"`
	Code     string `json:"code" binding:"required"`
	Stdin    string `json:"stdin"`
}

func (h *Handler) execute(c *gin.Context) {
	if h.Client == nil {
		respond.Error(c, http.StatusServiceUnavailable, "sandbox_unavailable", "code execution is not configured", nil)
		return
	}

	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "language and code are required", nil)
		return
	}

	result, err := h.Client.Execute(c.Request.Context(), ExecuteRequest{
		Language: req.Language,
		Version:  req.Version,
		Files:    []File{{Content: req.Code}},
		Stdin:    req.Stdin,
	})
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "execution_failed", "failed to execute code", nil)
		return
	}

	resp := gin.H{
		"language": result.Language,
		"version":  result.Version,
		"stdout":   result.Run.Stdout,
		"stderr":   result.Run.Stderr,
		"output":   result.Run.Output,
	}
	if result.Run.Code != nil {
		resp["exitCode"] = *result.Run.Code
	}
	if result.Compile != nil && result.Compile.Stderr != "" {
		resp["compileErrors"] = result.Compile.Stderr
	}

	respond.JSON(c, http.StatusOK, resp)
}
