package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Transcriber nhận dạng giọng nói bằng Gemini: video được tách audio bằng
// ffmpeg trước, audio gửi thẳng dạng inline.
type Transcriber struct {
	client  *genai.Client
	tempDir string
}

func NewTranscriber(g *GeminiService, tempDir string) *Transcriber {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Transcriber{client: g.client, tempDir: tempDir}
}

// ExtractAudio tách track audio của video ra file MP3 mono 16kHz (đủ cho
// nhận dạng giọng nói, giữ dung lượng nhỏ để gửi inline).
func (t *Transcriber) ExtractAudio(videoPath, audioPath string) error {
	err := ffmpeg.Input(videoPath).
		Output(audioPath, ffmpeg.KwArgs{
			"vn":     "",
			"acodec": "libmp3lame",
			"ac":     1,
			"ar":     16000,
			"b:a":    "64k",
		}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg không tách được audio: %v", err)
	}
	return nil
}

// TranscribeAudioFile đọc file audio và nhận dạng toàn bộ nội dung nói.
func (t *Transcriber) TranscribeAudioFile(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("không đọc được file audio: %v", err)
	}
	return t.TranscribeAudio(ctx, data, mimeFromExt(filepath.Ext(audioPath)))
}

// TranscribeAudio nhận dạng giọng nói từ dữ liệu audio thô.
func (t *Transcriber) TranscribeAudio(ctx context.Context, data []byte, mimeType string) (string, error) {
	model := t.client.GenerativeModel(geminiModel)

	prompt := "Transcribe this recording verbatim. " +
		"Return only the spoken text, without timestamps, speaker labels or commentary."

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("lỗi Gemini nhận dạng audio: %v", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini không trả kết quả nhận dạng")
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}

// TempDir trả về thư mục chứa file trung gian của transcriber.
func (t *Transcriber) TempDir() string {
	return t.tempDir
}

func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".m4a", ".aac":
		return "audio/aac"
	default:
		return "audio/mp3"
	}
}
