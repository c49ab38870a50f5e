package services

import (
	"testing"

	"github.com/pemistahl/lingua-go"
)

type fakeStatDetector struct {
	lang lingua.Language
	ok   bool
}

func (f fakeStatDetector) DetectLanguageOf(text string) (lingua.Language, bool) {
	return f.lang, f.ok
}

func TestDetect_ScriptIndicators(t *testing.T) {
	detector := NewLanguageDetectorWith(fakeStatDetector{lang: lingua.English, ok: true})

	tests := []struct {
		name string
		text string
		want string
	}{
		{"hindi devanagari", "यह क्या है बताओ", "hi"},
		{"telugu", "ఇది ఏమిటి చెప్పండి", "te"},
		{"tamil", "இது என்ன சொல்லுங்கள்", "ta"},
		{"kannada", "ಇದು ಏನು ಹೇಳಿ", "kn"},
		{"malayalam", "ഇത് എന്താണ് പറയൂ", "ml"},
		{"bengali", "এটা কী বলুন", "bn"},
		{"punjabi gurmukhi", "ਇਹ ਕੀ ਹੈ ਦੱਸੋ", "pa"},
		{"gujarati", "આ શું છે કહો", "gu"},
		{"odia", "ଏହା କଣ କୁହନ୍ତୁ", "or"},
		// Một ký tự lạc giữa câu tiếng Anh vẫn quyết định kết quả
		{"stray devanagari in english", "What does क mean here", "hi"},
		{"stray tamil in english", "Explain the word அறிவு for me", "ta"},
		// Devanagari đứng trước Telugu trong thứ tự ưu tiên
		{"priority hi over te", "abc क అ", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detector.Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect_ShortTextDefaultsToEnglish(t *testing.T) {
	// Fallback trả tiếng Tây Ban Nha nhưng text ngắn thì không được gọi tới
	detector := NewLanguageDetectorWith(fakeStatDetector{lang: lingua.Spanish, ok: true})

	tests := []string{"", "  ", "hi", "यह", " a b c  "}
	for _, text := range tests {
		if got := detector.Detect(text); got != "en" {
			t.Errorf("Detect(%q) = %q, want %q", text, got, "en")
		}
	}
}

func TestDetect_StatisticalFallback(t *testing.T) {
	detector := NewLanguageDetectorWith(fakeStatDetector{lang: lingua.Spanish, ok: true})

	got := detector.Detect("¿Cómo funciona la fotosíntesis?")
	if got != "es" {
		t.Errorf("Detect = %q, want %q", got, "es")
	}
}

func TestDetect_FallbackFailureDefaultsToEnglish(t *testing.T) {
	detector := NewLanguageDetectorWith(fakeStatDetector{ok: false})

	if got := detector.Detect("zzz qqq xxx vvv"); got != "en" {
		t.Errorf("Detect = %q, want %q", got, "en")
	}

	// Không có fallback cũng không được panic
	detector = NewLanguageDetectorWith(nil)
	if got := detector.Detect("zzz qqq xxx vvv"); got != "en" {
		t.Errorf("Detect = %q, want %q", got, "en")
	}
}
