package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// fakeEmbedder gán vector theo từ khóa để điều khiển thứ hạng trong test.
type fakeEmbedder struct {
	vectorFor func(text string) []float32
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vectorFor(t)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return f.vectorFor(text), nil
}

type failingEmbedder struct{}

func (failingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, fmt.Errorf("embedding service down")
}

func (failingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("embedding service down")
}

func TestSplitTranscript_ShortText(t *testing.T) {
	got := SplitTranscript("a short transcript")
	if len(got) != 1 || got[0] != "a short transcript" {
		t.Errorf("SplitTranscript = %v, want single chunk with full text", got)
	}

	if got := SplitTranscript("   "); got != nil {
		t.Errorf("SplitTranscript(blank) = %v, want nil", got)
	}
}

func TestSplitTranscript_ChunkSizeAndOverlap(t *testing.T) {
	// 40 dòng ~80 ký tự -> nhiều chunk
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("line %02d %s", i, strings.Repeat("x", 70)))
	}
	text := strings.Join(lines, "\n")

	chunks := SplitTranscript(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk) > chunkSize {
			t.Errorf("chunk %d has %d chars, exceeds %d", i, len(chunk), chunkSize)
		}
	}

	// Không dòng nào được rơi rụng
	joined := strings.Join(chunks, "\n")
	for _, line := range lines {
		if !strings.Contains(joined, line) {
			t.Errorf("line %q missing from chunks", line[:12])
		}
	}
}

func TestSplitTranscript_LongLineHardSplit(t *testing.T) {
	line := strings.Repeat("b", 1200)
	chunks := SplitTranscript(line)

	if len(chunks) < 3 {
		t.Fatalf("expected >=3 chunks for 1200-char line, got %d", len(chunks))
	}

	// Hai chunk liên tiếp chồng nhau đúng 50 ký tự
	step := chunkSize - chunkOverlap
	if len(chunks[0]) != chunkSize {
		t.Errorf("first chunk = %d chars, want %d", len(chunks[0]), chunkSize)
	}
	total := 0
	for i, c := range chunks {
		if i < len(chunks)-1 {
			total += step
		} else {
			total += len(c)
		}
	}
	if total != 1200 {
		t.Errorf("chunks cover %d chars after removing overlap, want 1200", total)
	}
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	embedder := &fakeEmbedder{vectorFor: func(text string) []float32 {
		if strings.Contains(text, "photosynthesis") {
			return []float32{1, 0}
		}
		return []float32{0, 1}
	}}
	r := NewRetriever(embedder)

	filler := strings.Repeat("y", 300)
	transcript := strings.Join([]string{
		"intro about the course " + filler,
		"photosynthesis converts light into energy " + filler,
		"closing remarks " + filler,
	}, "\n")

	got, err := r.Retrieve(context.Background(), transcript, "how does photosynthesis work", 1)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !strings.Contains(got, "photosynthesis converts light") {
		t.Errorf("Retrieve = %q, want photosynthesis chunk ranked first", got[:40])
	}
	if strings.Contains(got, "closing remarks") {
		t.Errorf("Retrieve returned more than k=1 chunks")
	}
}

func TestRetrieve_Deterministic(t *testing.T) {
	embedder := &fakeEmbedder{vectorFor: func(text string) []float32 {
		v := float32(len(text)%7) + 1
		return []float32{v, 1 / v}
	}}
	r := NewRetriever(embedder)

	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, fmt.Sprintf("topic %d %s", i, strings.Repeat("z", 60+i)))
	}
	transcript := strings.Join(lines, "\n")

	first, err := r.Retrieve(context.Background(), transcript, "question", 3)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	second, err := r.Retrieve(context.Background(), transcript, "question", 3)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if first != second {
		t.Errorf("Retrieve not deterministic:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestRetrieve_TiesKeepOriginalOrder(t *testing.T) {
	// Mọi chunk cùng điểm -> giữ thứ tự xuất hiện trong transcript
	embedder := &fakeEmbedder{vectorFor: func(text string) []float32 {
		return []float32{1, 1}
	}}
	r := NewRetriever(embedder)

	filler := strings.Repeat("w", 300)
	transcript := strings.Join([]string{
		"first " + filler,
		"second " + filler,
		"third " + filler,
	}, "\n")

	got, err := r.Retrieve(context.Background(), transcript, "anything", 2)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	firstIdx := strings.Index(got, "first")
	secondIdx := strings.Index(got, "second")
	if firstIdx == -1 || secondIdx == -1 || firstIdx > secondIdx {
		t.Errorf("tie-break broke original order: %q", got[:20])
	}
	if strings.Contains(got, "third") {
		t.Errorf("expected k=2 chunks only")
	}
}

func TestRetrieve_DefaultK(t *testing.T) {
	embedder := &fakeEmbedder{vectorFor: func(text string) []float32 {
		return []float32{1, 1}
	}}
	r := NewRetriever(embedder)

	filler := strings.Repeat("v", 300)
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, fmt.Sprintf("part%d %s", i, filler))
	}

	got, err := r.Retrieve(context.Background(), strings.Join(lines, "\n"), "q", 0)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if n := len(strings.Split(got, "\n")); n != defaultTopK {
		t.Errorf("default k returned %d chunks, want %d", n, defaultTopK)
	}
}

func TestRetrieve_EmbedderFailurePropagates(t *testing.T) {
	r := NewRetriever(failingEmbedder{})
	if _, err := r.Retrieve(context.Background(), "some transcript text", "q", 3); err == nil {
		t.Fatal("expected error from failing embedder")
	}
}

func TestRetrieve_EmptyTranscript(t *testing.T) {
	r := NewRetriever(failingEmbedder{})
	got, err := r.Retrieve(context.Background(), "", "q", 3)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if got != "" {
		t.Errorf("Retrieve on empty transcript = %q, want empty", got)
	}
}
