package capability

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"

	"resume-match-go/internal/types"
)

// 外部模型能力统一以构造注入的接口形态消费，核心逻辑不持有任何全局单例，
// 测试时可以用确定性的假实现替换。

// EntityTagger 命名实体识别能力
type EntityTagger interface {
	// TagEntities 对文本做实体标注，返回按出现顺序排列的span列表
	TagEntities(ctx context.Context, text string) ([]types.EntitySpan, error)
}

// TextEmbedder 文本向量化能力 (符合 cloudwego/eino 规范)
type TextEmbedder interface {
	// EmbedStrings 将一批文本转换为向量表示
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)

	// GetDimensions 返回嵌入向量的维度
	GetDimensions() int
}

// SimilarityScorer 两段文本的语义相似度，返回值在 [-1,1]
type SimilarityScorer interface {
	Similarity(ctx context.Context, text1, text2 string) (float64, error)
}

// Reranker 交叉编码器重排序能力，返回 query/candidate 对的相关性分数 [0,1]
type Reranker interface {
	Rerank(ctx context.Context, query, candidate string) (float64, error)
}

// VectorCache 可选的向量缓存，由存储层实现
type VectorCache interface {
	GetVector(ctx context.Context, textMD5 string) ([]float64, bool, error)
	SetVector(ctx context.Context, textMD5 string, vector []float64) error
}
