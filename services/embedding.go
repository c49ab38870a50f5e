package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

const embeddingModel = "text-embedding-004"

// GeminiEmbedder tính vector embedding cho chunk và câu hỏi, dùng chung
// client với GeminiService.
type GeminiEmbedder struct {
	client *genai.Client
}

func NewGeminiEmbedder(g *GeminiService) *GeminiEmbedder {
	return &GeminiEmbedder{client: g.client}
}

// EmbedTexts embed một lô text trong một request batch.
func (e *GeminiEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := e.client.EmbeddingModel(embeddingModel)
	batch := em.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("lỗi embed batch: %v", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed trả về %d vector cho %d text", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// EmbedText embed một text đơn (câu hỏi).
func (e *GeminiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	em := e.client.EmbeddingModel(embeddingModel)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("lỗi embed text: %v", err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("embed không trả về vector")
	}
	return resp.Embedding.Values, nil
}
