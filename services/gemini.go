package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiService giữ một client duy nhất, tạo lúc khởi động và inject vào
// pipeline (không dùng biến global để còn thay fake khi test).
type GeminiService struct {
	client *genai.Client
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return nil, fmt.Errorf("không thể tạo Gemini client: %v", err)
	}
	return &GeminiService{client: client}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

// AnswerDoubt sinh câu trả lời (tiếng Anh) từ câu hỏi + ngữ cảnh đã truy xuất.
// Lỗi sinh KHÔNG được nuốt, trả thẳng lên orchestrator.
func (s *GeminiService) AnswerDoubt(ctx context.Context, question, context string) (string, error) {
	prompt := fmt.Sprintf(
		"Answer the question based on the video content.\nContext: %s\n\nQuestion: %s\nAnswer:",
		context, question,
	)
	return s.generate(ctx, prompt, 150)
}

// SummarizeTranscript sinh bản tóm tắt chi tiết của transcript.
func (s *GeminiService) SummarizeTranscript(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following video transcript in detail:\n%s\n\nSummary:",
		transcript,
	)
	return s.generate(ctx, prompt, 200)
}

func (s *GeminiService) generate(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	model := s.client.GenerativeModel(geminiModel)
	model.SetMaxOutputTokens(maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("lỗi Gemini xử lý: %v", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini không trả kết quả hợp lệ")
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}
