package services

import (
	"regexp"
	"strings"
)

var (
	rePageNumber   = regexp.MustCompile(`(?im)^\s*(trang|page)[^\S\n]*\d+\s*$`)
	reSpecialLines = regexp.MustCompile(`(?m)^[\s\W\d]+$`)
	reMultiSpace   = regexp.MustCompile(`[ \t]{2,}`)
	reMultiNewLine = regexp.MustCompile(`\n{2,}`)
)

// NormalizeTranscript làm sạch transcript trước khi lưu: bỏ số trang, dòng
// rác chỉ có ký hiệu, khoảng trắng thừa. Giữ nguyên nội dung nói.
func NormalizeTranscript(text string) string {
	cleaned := text

	cleaned = rePageNumber.ReplaceAllString(cleaned, "")
	cleaned = reSpecialLines.ReplaceAllString(cleaned, "")
	cleaned = reMultiSpace.ReplaceAllString(cleaned, " ")
	cleaned = reMultiNewLine.ReplaceAllString(cleaned, "\n")

	return strings.TrimSpace(cleaned)
}
