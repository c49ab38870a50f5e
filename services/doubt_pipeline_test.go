package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeDetector struct{ lang string }

func (f fakeDetector) Detect(text string) string { return f.lang }

// fakeBridge đánh dấu chiều dịch để test kiểm tra pipeline gọi đúng chỗ.
type fakeBridge struct {
	toEnglishCalls   int
	fromEnglishCalls int
}

func (f *fakeBridge) ToEnglish(text, sourceLang string) string {
	f.toEnglishCalls++
	return "[en]" + text
}

func (f *fakeBridge) FromEnglish(text, targetLang string) string {
	f.fromEnglishCalls++
	return "[" + targetLang + "]" + text
}

type fakeRetriever struct {
	gotQuestion string
	gotK        int
	context     string
	err         error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, transcript, question string, k int) (string, error) {
	f.gotQuestion = question
	f.gotK = k
	return f.context, f.err
}

type fakeGenerator struct {
	gotQuestion string
	gotContext  string
	answer      string
	summary     string
	err         error
}

func (f *fakeGenerator) AnswerDoubt(ctx context.Context, question, context string) (string, error) {
	f.gotQuestion = question
	f.gotContext = context
	return f.answer, f.err
}

func (f *fakeGenerator) SummarizeTranscript(ctx context.Context, transcript string) (string, error) {
	return f.summary, f.err
}

func TestAnswer_NonEnglishBridgesBothWays(t *testing.T) {
	bridge := &fakeBridge{}
	retriever := &fakeRetriever{context: "relevant chunk"}
	generator := &fakeGenerator{answer: "light becomes energy"}
	s := NewDoubtService(fakeDetector{lang: "es"}, bridge, retriever, generator)

	result, err := s.Answer(context.Background(), "¿Cómo funciona?", "some transcript")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	if result.OriginalLanguage != "es" {
		t.Errorf("OriginalLanguage = %q, want %q", result.OriginalLanguage, "es")
	}
	if result.Answer != "[es]light becomes energy" {
		t.Errorf("Answer = %q, want translated back to es", result.Answer)
	}
	if bridge.toEnglishCalls != 1 || bridge.fromEnglishCalls != 1 {
		t.Errorf("bridge calls = %d/%d, want 1/1", bridge.toEnglishCalls, bridge.fromEnglishCalls)
	}
	// Câu hỏi đã dịch mới được dùng để truy xuất và sinh trả lời
	if !strings.HasPrefix(retriever.gotQuestion, "[en]") {
		t.Errorf("retriever got %q, want translated question", retriever.gotQuestion)
	}
	if !strings.HasPrefix(generator.gotQuestion, "[en]") {
		t.Errorf("generator got %q, want translated question", generator.gotQuestion)
	}
	if generator.gotContext != "relevant chunk" {
		t.Errorf("generator context = %q, want retrieved chunk", generator.gotContext)
	}
	if retriever.gotK != defaultTopK {
		t.Errorf("retriever k = %d, want %d", retriever.gotK, defaultTopK)
	}
}

func TestAnswer_EnglishSkipsBridge(t *testing.T) {
	bridge := &fakeBridge{}
	generator := &fakeGenerator{answer: "plain answer"}
	s := NewDoubtService(fakeDetector{lang: "en"}, bridge, &fakeRetriever{context: "ctx"}, generator)

	result, err := s.Answer(context.Background(), "what is this", "transcript")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	if result.Answer != "plain answer" || result.OriginalLanguage != "en" {
		t.Errorf("result = %+v, want untranslated english answer", result)
	}
	if bridge.toEnglishCalls != 0 || bridge.fromEnglishCalls != 0 {
		t.Errorf("bridge called %d/%d times for english input", bridge.toEnglishCalls, bridge.fromEnglishCalls)
	}
}

func TestAnswer_RetrieverErrorPropagates(t *testing.T) {
	retriever := &fakeRetriever{err: fmt.Errorf("embed quota exceeded")}
	s := NewDoubtService(fakeDetector{lang: "en"}, &fakeBridge{}, retriever, &fakeGenerator{})

	if _, err := s.Answer(context.Background(), "q", "t"); err == nil {
		t.Fatal("expected retriever error to propagate")
	}
}

func TestAnswer_GeneratorErrorPropagates(t *testing.T) {
	generator := &fakeGenerator{err: fmt.Errorf("model unavailable")}
	s := NewDoubtService(fakeDetector{lang: "hi"}, &fakeBridge{}, &fakeRetriever{}, generator)

	if _, err := s.Answer(context.Background(), "q", "t"); err == nil {
		t.Fatal("expected generator error to propagate")
	}
}

func TestSummarize_TranslatesToTarget(t *testing.T) {
	bridge := &fakeBridge{}
	generator := &fakeGenerator{summary: "lecture covers photosynthesis"}
	s := NewDoubtService(fakeDetector{lang: "en"}, bridge, &fakeRetriever{}, generator)

	got, err := s.Summarize(context.Background(), "transcript", "hi")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got != "[hi]lecture covers photosynthesis" {
		t.Errorf("Summarize = %q, want hindi translation", got)
	}
}

func TestSummarize_EnglishTargetSkipsBridge(t *testing.T) {
	bridge := &fakeBridge{}
	generator := &fakeGenerator{summary: "english summary"}
	s := NewDoubtService(fakeDetector{lang: "en"}, bridge, &fakeRetriever{}, generator)

	for _, target := range []string{"en", ""} {
		got, err := s.Summarize(context.Background(), "transcript", target)
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if got != "english summary" {
			t.Errorf("Summarize(target=%q) = %q, want untranslated summary", target, got)
		}
	}
	if bridge.fromEnglishCalls != 0 {
		t.Errorf("bridge called %d times for english target", bridge.fromEnglishCalls)
	}
}

func TestSummarize_GeneratorErrorPropagates(t *testing.T) {
	generator := &fakeGenerator{err: fmt.Errorf("model unavailable")}
	s := NewDoubtService(fakeDetector{lang: "en"}, &fakeBridge{}, &fakeRetriever{}, generator)

	if _, err := s.Summarize(context.Background(), "transcript", "es"); err == nil {
		t.Fatal("expected generator error to propagate")
	}
}
