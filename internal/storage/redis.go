package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound Redis中键不存在时返回，包装 redis.Nil
var ErrNotFound = redis.Nil

// Redis 键值存储访问层：嵌入向量缓存与JD文本缓存
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 建立Redis连接并挂载OpenTelemetry钩子
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opt.MinIdleConns = cfg.MinIdleConns
	}

	client := redis.NewClient(opt)

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("启用Redis追踪失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &Redis{Client: client, config: cfg}, nil
}

// Close 关闭连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

// GetVector 按文本MD5取缓存的嵌入向量，未命中返回 found=false
func (r *Redis) GetVector(ctx context.Context, textMD5 string) ([]float64, bool, error) {
	key := fmt.Sprintf(constants.KeyEmbeddingVector, textMD5)
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var vector []float64
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, false, fmt.Errorf("反序列化缓存向量失败: %w", err)
	}
	return vector, true, nil
}

// SetVector 按文本MD5缓存嵌入向量，带固定过期时间
func (r *Redis) SetVector(ctx context.Context, textMD5 string, vector []float64) error {
	key := fmt.Sprintf(constants.KeyEmbeddingVector, textMD5)
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("序列化向量失败: %w", err)
	}
	return r.Client.Set(ctx, key, data, constants.EmbeddingCacheDuration).Err()
}

// SetJobDescriptionText 缓存JD原文，供异步任务与重复请求复用
func (r *Redis) SetJobDescriptionText(ctx context.Context, jobMD5, text string) error {
	key := fmt.Sprintf(constants.KeyJobDescriptionText, jobMD5)
	return r.Client.Set(ctx, key, text, constants.JDCacheDuration).Err()
}

// GetJobDescriptionText 取缓存的JD原文，未命中返回 found=false
func (r *Redis) GetJobDescriptionText(ctx context.Context, jobMD5 string) (string, bool, error) {
	key := fmt.Sprintf(constants.KeyJobDescriptionText, jobMD5)
	text, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return text, true, nil
}
