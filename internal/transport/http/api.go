package http

import (
	"errors"
	"net/http"

	"factcheck-quiz-service/internal/app"
	"factcheck-quiz-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// APIHandler serves the JSON endpoint used by the browser extension.
type APIHandler struct {
	service *app.QuizService
}

func NewAPIHandler(service *app.QuizService) *APIHandler {
	return &APIHandler{service: service}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	domain.ClassificationResult
	InputText string `json:"input_text"`
}

// Analyze classifies the posted text without touching any browser session.
func (h *APIHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	result, err := h.service.Classify(c.Request.Context(), stripMarkup(req.Text))
	if errors.Is(err, domain.ErrEmptyText) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analyzeResponse{ClassificationResult: result, InputText: req.Text})
}
