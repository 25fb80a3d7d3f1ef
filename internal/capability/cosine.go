package capability

import (
	"context"
	"fmt"
	"math"
)

// CosineScorer 基于 TextEmbedder 的余弦相似度实现
type CosineScorer struct {
	embedder TextEmbedder
}

// NewCosineScorer 创建余弦相似度计算器
func NewCosineScorer(embedder TextEmbedder) (*CosineScorer, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder不能为空")
	}
	return &CosineScorer{embedder: embedder}, nil
}

// Similarity 一次请求里嵌入两段文本并计算余弦相似度
func (s *CosineScorer) Similarity(ctx context.Context, text1, text2 string) (float64, error) {
	vectors, err := s.embedder.EmbedStrings(ctx, []string{text1, text2})
	if err != nil {
		return 0, fmt.Errorf("计算相似度时向量化失败: %w", err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("相似度计算需要2个向量，实际返回 %d 个", len(vectors))
	}
	return CosineSimilarity(vectors[0], vectors[1]), nil
}

// CosineSimilarity 计算两个向量的余弦相似度，零向量或维度不一致时返回0
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
