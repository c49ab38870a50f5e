package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Translator dịch hai chiều qua ngôn ngữ trục (tiếng Anh) bằng endpoint
// dịch công khai của Google (cùng endpoint GoogleTranslator hay dùng).
// Chính sách lỗi: dịch thất bại KHÔNG được làm hỏng pipeline, luôn trả
// lại nguyên văn bản đầu vào và chỉ ghi log.
type Translator struct {
	baseURL  string
	client   *http.Client
	detector *LanguageDetector
}

func NewTranslator(detector *LanguageDetector) *Translator {
	return &Translator{
		baseURL:  "https://translate.googleapis.com/translate_a/single",
		client:   &http.Client{Timeout: 15 * time.Second},
		detector: detector,
	}
}

// NewTranslatorWith cho phép trỏ sang server giả trong test.
func NewTranslatorWith(baseURL string, client *http.Client, detector *LanguageDetector) *Translator {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Translator{baseURL: baseURL, client: client, detector: detector}
}

// ToEnglish dịch text về ngôn ngữ trục. sourceLang rỗng thì tự nhận dạng.
func (t *Translator) ToEnglish(text, sourceLang string) string {
	if text == "" {
		return ""
	}
	if sourceLang == "" {
		sourceLang = t.detector.Detect(text)
	}
	if sourceLang == PivotLanguage {
		return text
	}

	translated, err := t.translate(text, sourceLang, PivotLanguage)
	if err != nil || translated == "" {
		log.Printf("Lỗi dịch %s->%s, giữ nguyên văn bản: %v", sourceLang, PivotLanguage, err)
		return text
	}
	return translated
}

// FromEnglish dịch từ ngôn ngữ trục sang targetLang.
func (t *Translator) FromEnglish(text, targetLang string) string {
	if text == "" {
		return ""
	}
	if targetLang == PivotLanguage {
		return text
	}

	translated, err := t.translate(text, PivotLanguage, targetLang)
	if err != nil || translated == "" {
		log.Printf("Lỗi dịch %s->%s, giữ nguyên văn bản: %v", PivotLanguage, targetLang, err)
		return text
	}
	return translated
}

func (t *Translator) translate(text, source, target string) (string, error) {
	params := url.Values{}
	params.Add("client", "gtx")
	params.Add("sl", source)
	params.Add("tl", target)
	params.Add("dt", "t")
	params.Add("q", text)

	reqURL := fmt.Sprintf("%s?%s", t.baseURL, params.Encode())
	resp, err := t.client.Get(reqURL)
	if err != nil {
		return "", fmt.Errorf("lỗi gọi translate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translate lỗi %d: %s", resp.StatusCode, string(body))
	}

	// Response dạng [[[bản dịch, gốc, ...], ...], ...]
	var raw []interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("lỗi đọc JSON từ translate: %v", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("translate không trả về kết quả")
	}

	segments, ok := raw[0].([]interface{})
	if !ok {
		return "", fmt.Errorf("format translate không hợp lệ")
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]interface{})
		if !ok || len(parts) == 0 {
			continue
		}
		if piece, ok := parts[0].(string); ok {
			sb.WriteString(piece)
		}
	}

	return sb.String(), nil
}
