package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Bài giảng có thể nộp kèm transcript soạn sẵn (pdf/docx/txt) thay vì chạy
// nhận dạng giọng nói lại từ đầu.
type TranscriptFileType string

const (
	TranscriptPDF  TranscriptFileType = "pdf"
	TranscriptDOCX TranscriptFileType = "docx"
	TranscriptTXT  TranscriptFileType = "txt"
)

// TranscriptFileTypeFromExt ánh xạ phần mở rộng file sang loại transcript.
func TranscriptFileTypeFromExt(ext string) (TranscriptFileType, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return TranscriptPDF, nil
	case ".docx":
		return TranscriptDOCX, nil
	case ".txt":
		return TranscriptTXT, nil
	default:
		return "", errors.New("định dạng transcript không hỗ trợ (chỉ nhận pdf, docx, txt)")
	}
}

// ExtractTranscript đọc file transcript upload thành plain text đã chuẩn hoá.
func ExtractTranscript(fileHeader *multipart.FileHeader, fileType TranscriptFileType) (string, error) {
	var (
		text string
		err  error
	)
	switch fileType {
	case TranscriptPDF:
		f, openErr := fileHeader.Open()
		if openErr != nil {
			return "", openErr
		}
		defer f.Close()
		text, err = extractTextFromPDF(f)
	case TranscriptDOCX:
		text, err = extractTextFromDOCX(fileHeader)
	case TranscriptTXT:
		text, err = extractTextFromTXT(fileHeader)
	default:
		return "", errors.New("loại transcript không được hỗ trợ")
	}
	if err != nil {
		return "", err
	}
	return NormalizeTranscript(text), nil
}

func extractTextFromPDF(file multipart.File) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", fmt.Errorf("lỗi đọc file PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("không thể tạo reader PDF: %w", err)
	}

	var textBuilder bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func extractTextFromDOCX(fileHeader *multipart.FileHeader) (string, error) {
	// Lưu ra file tạm vì zip cần random access
	tmpFile, err := os.CreateTemp("", "transcript-*.docx")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	if _, err := io.Copy(tmpFile, src); err != nil {
		return "", err
	}

	// .docx là file zip, nội dung nằm trong word/document.xml
	r, err := zip.OpenReader(tmpFile.Name())
	if err != nil {
		return "", err
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("file docx không có word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	// Trích text trong các tag <w:t>
	var buf bytes.Buffer
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "t" { // <w:t>
				var text string
				if err := decoder.DecodeElement(&text, &se); err == nil {
					buf.WriteString(text + " ")
				}
			}
		}
	}

	return strings.TrimSpace(buf.String()), nil
}

func extractTextFromTXT(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return "", err
	}

	return buf.String(), nil
}
