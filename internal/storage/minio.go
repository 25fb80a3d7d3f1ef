package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

// MinIO 对象存储访问层，归档匹配结果JSON
type MinIO struct {
	client        *minio.Client
	resultsBucket string
}

// NewMinIO 创建MinIO客户端并确保结果桶存在
// 配置了过期天数时给桶挂生命周期规则
func NewMinIO(ctx context.Context, cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("minio配置不能为空")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio端点不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{client: client, resultsBucket: cfg.ResultsBucket}
	if err := m.ensureBucket(ctx, cfg); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MinIO) ensureBucket(ctx context.Context, cfg *config.MinIOConfig) error {
	exists, err := m.client.BucketExists(ctx, m.resultsBucket)
	if err != nil {
		return fmt.Errorf("检查桶 %s 失败: %w", m.resultsBucket, err)
	}
	if !exists {
		err = m.client.MakeBucket(ctx, m.resultsBucket, minio.MakeBucketOptions{Region: cfg.Location})
		if err != nil {
			return fmt.Errorf("创建桶 %s 失败: %w", m.resultsBucket, err)
		}
		logger.Info().Str("bucket", m.resultsBucket).Msg("已创建匹配结果桶")
	}

	if cfg.ResultExpireDays > 0 {
		lc := lifecycle.NewConfiguration()
		lc.Rules = []lifecycle.Rule{
			{
				ID:         "expire-match-results",
				Status:     "Enabled",
				Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(cfg.ResultExpireDays)},
			},
		}
		if err := m.client.SetBucketLifecycle(ctx, m.resultsBucket, lc); err != nil {
			// 生命周期失败不阻塞启动，仅告警
			logger.Warn().Err(err).Str("bucket", m.resultsBucket).Msg("设置桶生命周期失败")
		}
	}
	return nil
}

// MatchResultObjectName 匹配结果对象命名：{resumeMD5}_vs_{jobMD5}_match.json
func MatchResultObjectName(resumeMD5, jobMD5 string) string {
	return fmt.Sprintf("%s_vs_%s_match.json", resumeMD5, jobMD5)
}

// SaveMatchResultJSON 把匹配结果序列化后归档到结果桶
func (m *MinIO) SaveMatchResultJSON(ctx context.Context, resumeMD5, jobMD5 string, result *types.MatchResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("序列化匹配结果失败: %w", err)
	}

	objectName := MatchResultObjectName(resumeMD5, jobMD5)
	_, err = m.client.PutObject(ctx, m.resultsBucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("上传匹配结果 %s 失败: %w", objectName, err)
	}
	return objectName, nil
}

// GetMatchResultJSON 取归档的匹配结果
func (m *MinIO) GetMatchResultJSON(ctx context.Context, resumeMD5, jobMD5 string) (*types.MatchResult, error) {
	objectName := MatchResultObjectName(resumeMD5, jobMD5)
	object, err := m.client.GetObject(ctx, m.resultsBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取匹配结果 %s 失败: %w", objectName, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("读取匹配结果 %s 失败: %w", objectName, err)
	}

	var result types.MatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("解析匹配结果 %s 失败: %w", objectName, err)
	}
	return &result, nil
}
