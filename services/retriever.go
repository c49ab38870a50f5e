package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Tham số cắt chunk cố định cho transcript bài giảng
const (
	chunkSeparator = "\n"
	chunkSize      = 500
	chunkOverlap   = 50
	defaultTopK    = 3
)

// Embedder là phần giao với model embedding, tách interface để test dùng fake.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Retriever thu hẹp transcript về các chunk liên quan nhất với câu hỏi.
// Index vector chỉ sống trong một lần gọi, không cache giữa các request.
type Retriever struct {
	embedder Embedder
}

func NewRetriever(embedder Embedder) *Retriever {
	return &Retriever{embedder: embedder}
}

type scoredChunk struct {
	index int
	text  string
	score float64
}

// Retrieve trả về top-k chunk (nối bằng xuống dòng, xếp theo độ tương đồng
// giảm dần). Ngữ cảnh này, không phải transcript đầy đủ, là thứ đưa vào
// model sinh, nên độ dài luôn bị chặn dù transcript dài bao nhiêu.
func (r *Retriever) Retrieve(ctx context.Context, transcript, question string, k int) (string, error) {
	if k <= 0 {
		k = defaultTopK
	}

	chunks := SplitTranscript(transcript)
	if len(chunks) == 0 {
		return "", nil
	}

	chunkVectors, err := r.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return "", fmt.Errorf("không embed được transcript: %v", err)
	}
	questionVector, err := r.embedder.EmbedText(ctx, question)
	if err != nil {
		return "", fmt.Errorf("không embed được câu hỏi: %v", err)
	}

	scored := make([]scoredChunk, len(chunks))
	for i, chunk := range chunks {
		scored[i] = scoredChunk{
			index: i,
			text:  chunk,
			score: cosineSimilarity(questionVector, chunkVectors[i]),
		}
	}

	// Sort ổn định: điểm bằng nhau thì chunk đứng trước trong transcript thắng
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if k > len(scored) {
		k = len(scored)
	}

	parts := make([]string, k)
	for i := 0; i < k; i++ {
		parts[i] = scored[i].text
	}
	return strings.Join(parts, "\n"), nil
}

// SplitTranscript cắt transcript thành chunk ~500 ký tự theo dòng, hai chunk
// liên tiếp chồng nhau ~50 ký tự để không cắt đứt ý ở ranh giới.
func SplitTranscript(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, chunkSeparator)

	// Dòng dài quá cỡ chunk thì cắt cứng theo cửa sổ trượt có overlap
	var pieces []string
	for _, line := range lines {
		if len(line) <= chunkSize {
			pieces = append(pieces, line)
			continue
		}
		step := chunkSize - chunkOverlap
		for start := 0; start < len(line); start += step {
			end := start + chunkSize
			if end >= len(line) {
				pieces = append(pieces, line[start:])
				break
			}
			pieces = append(pieces, line[start:end])
		}
	}

	// Gom dòng thành chunk, giữ lại đuôi chunk trước làm overlap
	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, chunkSeparator))

		// Đuôi <=50 ký tự của chunk vừa đóng trở thành phần mở đầu chunk sau
		var overlap []string
		overlapLen := 0
		for i := len(current) - 1; i >= 0; i-- {
			add := len(current[i])
			if overlapLen > 0 {
				add++ // separator
			}
			if overlapLen+add > chunkOverlap {
				break
			}
			overlap = append([]string{current[i]}, overlap...)
			overlapLen += add
		}
		current = overlap
		currentLen = overlapLen
	}

	for _, piece := range pieces {
		add := len(piece)
		if currentLen > 0 {
			add++ // separator
		}
		if currentLen+add > chunkSize && currentLen > 0 {
			flush()
			add = len(piece)
			if currentLen > 0 {
				add++
			}
		}
		current = append(current, piece)
		currentLen += add
	}
	if len(current) > 0 {
		// Chỉ còn mỗi phần overlap thì đã nằm trong chunk trước rồi
		joined := strings.Join(current, chunkSeparator)
		if len(chunks) == 0 || !strings.HasSuffix(chunks[len(chunks)-1], joined) {
			chunks = append(chunks, joined)
		}
	}

	return chunks
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
