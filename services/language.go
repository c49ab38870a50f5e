package services

import (
	"log"
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"
)

const PivotLanguage = "en"

// scriptIndicator ánh xạ một bảng chữ cái sang mã ngôn ngữ.
// Thứ tự trong slice là thứ tự ưu tiên: chỉ cần MỘT ký tự thuộc bảng chữ
// là chọn luôn ngôn ngữ đó, không đếm tần suất. Hạn chế đã biết: một từ
// mượn duy nhất trong câu tiếng Anh cũng quyết định kết quả.
type scriptIndicator struct {
	Code  string
	Table *unicode.RangeTable
}

var scriptIndicators = []scriptIndicator{
	{"hi", unicode.Devanagari},
	{"te", unicode.Telugu},
	{"ta", unicode.Tamil},
	{"kn", unicode.Kannada},
	{"ml", unicode.Malayalam},
	{"bn", unicode.Bengali},
	{"pa", unicode.Gurmukhi},
	{"gu", unicode.Gujarati},
	{"or", unicode.Oriya},
	// mr dùng chung Devanagari nên không bao giờ thắng được hi ở trên;
	// giữ nguyên thứ tự này để không đổi hành vi phân loại.
	{"mr", unicode.Devanagari},
}

// statisticalDetector là phần giao với lingua-go, tách interface để test
// không phải dựng detector thật (khởi tạo khá nặng).
type statisticalDetector interface {
	DetectLanguageOf(text string) (lingua.Language, bool)
}

type LanguageDetector struct {
	fallback statisticalDetector
}

// NewLanguageDetector dựng detector thống kê một lần lúc khởi động.
func NewLanguageDetector() *LanguageDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
	return &LanguageDetector{fallback: detector}
}

func NewLanguageDetectorWith(fallback statisticalDetector) *LanguageDetector {
	return &LanguageDetector{fallback: fallback}
}

// Detect trả về mã ngôn ngữ của đoạn text, mặc định "en" khi không đủ tín
// hiệu hoặc khi nhận dạng thất bại.
func (d *LanguageDetector) Detect(text string) string {
	if countSignalRunes(text) < 5 {
		return PivotLanguage
	}

	// Ưu tiên bảng chữ cái: gặp ký tự nào khớp là trả về ngay
	for _, ind := range scriptIndicators {
		for _, r := range text {
			if unicode.Is(ind.Table, r) {
				return ind.Code
			}
		}
	}

	// Không khớp bảng chữ nào -> nhận dạng thống kê toàn văn bản
	if d.fallback != nil {
		if lang, ok := d.fallback.DetectLanguageOf(text); ok {
			return strings.ToLower(lang.IsoCode639_1().String())
		}
	}

	log.Printf("Không nhận dạng được ngôn ngữ, mặc định %q", PivotLanguage)
	return PivotLanguage
}

// Đếm ký tự không phải khoảng trắng
func countSignalRunes(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
