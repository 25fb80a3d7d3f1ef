package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

// retryableSubstrings 可重试错误的消息特征
// 面向嵌入/NER等HTTP能力服务的瞬时故障
var retryableSubstrings = []string{
	"timeout",
	"deadline exceeded",
	"connection reset",
	"connection refused",
	"EOF",
	"no such host",
	"429",
	"rate limit",
	"502 Bad Gateway",
	"503 Service Unavailable",
}

// TokenBucket 按QPM限流的令牌桶，附带对可重试错误的指数退避
type TokenBucket struct {
	mu         sync.Mutex
	ratePerSec float64   // 每秒补充的令牌数
	capacity   float64   // 桶容量
	tokens     float64   // 当前可用令牌
	lastRefill time.Time // 上次补充时刻

	baseBackoff time.Duration // 首次重试的退避时长
	maxRetries  int
}

// NewTokenBucket 创建令牌桶
// capacity 不指定时取QPM的一半，保证突发窗口不超过半分钟配额
func NewTokenBucket(qpm int, capacity int) *TokenBucket {
	if capacity <= 0 {
		capacity = qpm / 2
		if capacity <= 0 {
			capacity = 1
		}
	}

	return &TokenBucket{
		ratePerSec:  float64(qpm) / 60.0,
		capacity:    float64(capacity),
		tokens:      float64(capacity),
		lastRefill:  time.Now(),
		baseBackoff: time.Second,
		maxRetries:  3,
	}
}

// WithRetryPolicy 覆盖默认重试策略
func (tb *TokenBucket) WithRetryPolicy(baseBackoff time.Duration, maxRetries int) *TokenBucket {
	tb.baseBackoff = baseBackoff
	tb.maxRetries = maxRetries
	return tb
}

// refill 按流逝时间补充令牌，调用方需持锁
func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	tb.tokens += elapsed * tb.ratePerSec
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
}

// Allow 非阻塞地尝试消耗一个令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Wait 阻塞直到取得一个令牌或上下文取消
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mu.Lock()
		tb.refill()
		if tb.tokens >= 1.0 {
			tb.tokens -= 1.0
			tb.mu.Unlock()
			return nil
		}
		// 距下一个令牌可用的时间
		wait := time.Duration((1.0 - tb.tokens) / tb.ratePerSec * float64(time.Second))
		tb.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// RetryWithBackoff 在限流约束下执行fn，对可重试错误做指数退避
// 不可重试的错误立即返回
func (tb *TokenBucket) RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error

	for attempt := 0; attempt <= tb.maxRetries; attempt++ {
		if err = tb.Wait(ctx); err != nil {
			return err
		}

		if err = fn(); err == nil {
			return nil
		}

		if !isRetryableError(err) || attempt >= tb.maxRetries {
			return err
		}

		backoff := tb.baseBackoff * time.Duration(1<<uint(attempt))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return err
}

// isRetryableError 按错误消息特征判断是否值得重试
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, substr := range retryableSubstrings {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
