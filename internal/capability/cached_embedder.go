package capability

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"

	"resume-match-go/internal/logger"
	"resume-match-go/pkg/utils"
)

// CachedEmbedder 用向量缓存包装一个 TextEmbedder
// 缓存以文本MD5为键；缓存层故障只记日志并回退到直接调用，不影响结果
type CachedEmbedder struct {
	inner TextEmbedder
	cache VectorCache
}

// NewCachedEmbedder 创建带缓存的向量化器，cache为nil时直接返回inner
func NewCachedEmbedder(inner TextEmbedder, cache VectorCache) TextEmbedder {
	if cache == nil {
		return inner
	}
	return &CachedEmbedder{inner: inner, cache: cache}
}

// GetDimensions 返回底层向量化器的维度
func (c *CachedEmbedder) GetDimensions() int {
	return c.inner.GetDimensions()
}

// EmbedStrings 先查缓存，只把未命中的文本发给底层服务
func (c *CachedEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		key := utils.CalculateMD5([]byte(text))
		vector, found, err := c.cache.GetVector(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Msg("读取向量缓存失败，回退到直接调用")
			found = false
		}
		if found {
			vectors[i] = vector
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.EmbedStrings(ctx, missing, opts...)
	if err != nil {
		return nil, err
	}

	for j, idx := range missingIdx {
		vectors[idx] = fresh[j]
		key := utils.CalculateMD5([]byte(missing[j]))
		if err := c.cache.SetVector(ctx, key, fresh[j]); err != nil {
			logger.Warn().Err(err).Msg("写入向量缓存失败")
		}
	}

	return vectors, nil
}
