package controllers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/e-learning-backend/services"
)

// DoubtAnswerer là pipeline trả lời câu hỏi đa ngôn ngữ.
type DoubtAnswerer interface {
	Answer(ctx context.Context, doubt, transcript string) (services.DoubtResult, error)
}

// AudioTranscriber nhận dạng giọng nói của câu hỏi thu âm.
type AudioTranscriber interface {
	TranscribeAudio(ctx context.Context, data []byte, mimeType string) (string, error)
}

type DoubtController struct {
	Pipeline    DoubtAnswerer
	Transcriber AudioTranscriber
}

func NewDoubtController(pipeline DoubtAnswerer, transcriber AudioTranscriber) *DoubtController {
	return &DoubtController{Pipeline: pipeline, Transcriber: transcriber}
}

type AnswerDoubtRequest struct {
	Doubt      string `json:"doubt"`
	Transcript string `json:"transcript"`
}

// POST /answer_doubt
func (ctl *DoubtController) AnswerDoubt(c *gin.Context) {
	var req AnswerDoubtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Doubt or transcript missing"})
		return
	}
	if req.Doubt == "" || req.Transcript == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Doubt or transcript missing"})
		return
	}

	result, err := ctl.Pipeline.Answer(c.Request.Context(), req.Doubt, req.Transcript)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":            result.Answer,
		"original_language": result.OriginalLanguage,
	})
}

// POST /process_audio_doubt
// Câu hỏi thu âm: nhận dạng trước, có transcript bài giảng kèm theo thì
// chạy tiếp pipeline trả lời, không thì chỉ trả phần đã nhận dạng.
func (ctl *DoubtController) ProcessAudioDoubt(c *gin.Context) {
	audioFile, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
		return
	}

	transcript := c.PostForm("transcript")

	src, err := audioFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được file audio", "details": err.Error()})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được file audio", "details": err.Error()})
		return
	}

	mimeType := audioFile.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimeFromAudioExt(filepath.Ext(audioFile.Filename))
	}

	transcribedDoubt, err := ctl.Transcriber.TranscribeAudio(c.Request.Context(), data, mimeType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var answer *string
	originalLanguage := services.PivotLanguage

	if transcript != "" {
		result, err := ctl.Pipeline.Answer(c.Request.Context(), transcribedDoubt, transcript)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		answer = &result.Answer
		originalLanguage = result.OriginalLanguage
	}

	c.JSON(http.StatusOK, gin.H{
		"transcribed_doubt": transcribedDoubt,
		"answer":            answer,
		"original_language": originalLanguage,
	})
}

func mimeFromAudioExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".m4a", ".aac":
		return "audio/aac"
	default:
		return "audio/mp3"
	}
}
