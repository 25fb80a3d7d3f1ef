package capability

import (
	"context"

	"resume-match-go/pkg/ratelimit"

	"github.com/cloudwego/eino/components/embedding"
)

// RateLimitedEmbedder 对嵌入服务调用做令牌桶限流与重试的代理
type RateLimitedEmbedder struct {
	inner  TextEmbedder
	bucket *ratelimit.TokenBucket
}

// NewRateLimitedEmbedder 创建限流代理，qpm<=0时直接返回原始embedder
func NewRateLimitedEmbedder(inner TextEmbedder, qpm int) TextEmbedder {
	if qpm <= 0 {
		return inner
	}
	return &RateLimitedEmbedder{
		inner:  inner,
		bucket: ratelimit.NewTokenBucket(qpm, 0),
	}
}

// EmbedStrings 经限流与退避重试后调用内层embedder
func (r *RateLimitedEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	var vectors [][]float64
	err := r.bucket.RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = r.inner.EmbedStrings(ctx, texts, opts...)
		return embedErr
	})
	return vectors, err
}

// GetDimensions 透传内层维度
func (r *RateLimitedEmbedder) GetDimensions() int {
	return r.inner.GetDimensions()
}
