package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Summarizer tóm tắt transcript, dịch sang ngôn ngữ đích nếu cần.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, targetLang string) (string, error)
}

type SummaryController struct {
	Pipeline Summarizer
}

func NewSummaryController(pipeline Summarizer) *SummaryController {
	return &SummaryController{Pipeline: pipeline}
}

type SummarizeRequest struct {
	Transcript string `json:"transcript"`
	TargetLang string `json:"target_lang"`
}

// POST /summarize
func (ctl *SummaryController) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transcript missing"})
		return
	}
	if req.Transcript == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transcript missing"})
		return
	}
	if req.TargetLang == "" {
		req.TargetLang = "en"
	}

	summary, err := ctl.Pipeline.Summarize(c.Request.Context(), req.Transcript, req.TargetLang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
