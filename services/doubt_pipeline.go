package services

import (
	"context"
)

// Detector nhận dạng ngôn ngữ của câu hỏi.
type Detector interface {
	Detect(text string) string
}

// Bridge dịch hai chiều qua ngôn ngữ trục.
type Bridge interface {
	ToEnglish(text, sourceLang string) string
	FromEnglish(text, targetLang string) string
}

// ContextRetriever thu hẹp transcript về ngữ cảnh liên quan.
type ContextRetriever interface {
	Retrieve(ctx context.Context, transcript, question string, k int) (string, error)
}

// Generator sinh câu trả lời và bản tóm tắt (tiếng Anh).
type Generator interface {
	AnswerDoubt(ctx context.Context, question, context string) (string, error)
	SummarizeTranscript(ctx context.Context, transcript string) (string, error)
}

// DoubtResult là kết quả trả cho người học: câu trả lời trong đúng ngôn
// ngữ của câu hỏi gốc.
type DoubtResult struct {
	Answer           string `json:"answer"`
	OriginalLanguage string `json:"original_language"`
}

// DoubtService ghép nối nhận dạng ngôn ngữ -> dịch về tiếng Anh -> truy
// xuất ngữ cảnh -> sinh trả lời -> dịch ngược. Stateless giữa các request,
// nên chạy song song thoải mái.
type DoubtService struct {
	Detector  Detector
	Bridge    Bridge
	Retriever ContextRetriever
	Generator Generator
}

func NewDoubtService(detector Detector, bridge Bridge, retriever ContextRetriever, generator Generator) *DoubtService {
	return &DoubtService{
		Detector:  detector,
		Bridge:    bridge,
		Retriever: retriever,
		Generator: generator,
	}
}

// Answer trả lời một câu hỏi dựa trên transcript, trong ngôn ngữ của người
// hỏi. Lỗi truy xuất/sinh trả thẳng lên; lỗi dịch đã được Bridge nuốt sẵn.
func (s *DoubtService) Answer(ctx context.Context, doubt, transcript string) (DoubtResult, error) {
	detectedLang := s.Detector.Detect(doubt)

	englishDoubt := doubt
	if detectedLang != PivotLanguage {
		englishDoubt = s.Bridge.ToEnglish(doubt, detectedLang)
	}

	contextText, err := s.Retriever.Retrieve(ctx, transcript, englishDoubt, defaultTopK)
	if err != nil {
		return DoubtResult{}, err
	}

	englishAnswer, err := s.Generator.AnswerDoubt(ctx, englishDoubt, contextText)
	if err != nil {
		return DoubtResult{}, err
	}

	answer := englishAnswer
	if detectedLang != PivotLanguage {
		answer = s.Bridge.FromEnglish(englishAnswer, detectedLang)
	}

	return DoubtResult{Answer: answer, OriginalLanguage: detectedLang}, nil
}

// Summarize tóm tắt transcript rồi dịch sang targetLang nếu cần.
func (s *DoubtService) Summarize(ctx context.Context, transcript, targetLang string) (string, error) {
	summary, err := s.Generator.SummarizeTranscript(ctx, transcript)
	if err != nil {
		return "", err
	}
	if targetLang != "" && targetLang != PivotLanguage {
		summary = s.Bridge.FromEnglish(summary, targetLang)
	}
	return summary, nil
}
