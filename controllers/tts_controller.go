package controllers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/e-learning-backend/services"
)

type SpeakRequest struct {
	Text         string  `json:"text" binding:"required"`
	Lang         string  `json:"lang"`
	SpeakingRate float64 `json:"speaking_rate"`
}

// POST /speak
// Đọc to câu trả lời / bản tóm tắt trong ngôn ngữ người học.
func SpeakHandler(c *gin.Context) {
	var req SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Lang == "" {
		req.Lang = services.PivotLanguage
	}

	audioContent, err := services.SynthesizeSpeech(c.Request.Context(), req.Text, req.Lang, req.SpeakingRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"lang":          req.Lang,
		"audio_content": base64.StdEncoding.EncodeToString(audioContent),
		"message":       "Text converted to speech successfully",
	})
}
