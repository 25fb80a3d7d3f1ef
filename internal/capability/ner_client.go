package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// NERClient 调用外部NER标注服务，实现 EntityTagger
type NERClient struct {
	baseURL       string
	minConfidence float64
	httpClient    *http.Client
}

// NewNERClient 创建NER客户端
func NewNERClient(cfg config.NERConfig) (*NERClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("NER服务地址不能为空")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &NERClient{
		baseURL:       cfg.BaseURL,
		minConfidence: cfg.MinConfidence,
		httpClient:    &http.Client{Timeout: timeout},
	}, nil
}

// nerRequest NER服务请求结构
type nerRequest struct {
	Text string `json:"text"`
}

// nerResponse NER服务响应结构
type nerResponse struct {
	Entities []struct {
		Text       string  `json:"text"`
		Kind       string  `json:"kind"`
		Confidence float64 `json:"confidence"`
	} `json:"entities"`
	Error string `json:"error,omitempty"`
}

// TagEntities 请求外部服务对文本做实体标注
// 低于配置置信度阈值的span被过滤掉
func (c *NERClient) TagEntities(ctx context.Context, text string) ([]types.EntitySpan, error) {
	payload, err := json.Marshal(nerRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("序列化NER请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("构建NER请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用NER服务失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取NER响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NER服务返回错误状态 %d: %s", resp.StatusCode, string(body))
	}

	var parsed nerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析NER响应失败: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("NER服务返回API错误: %s", parsed.Error)
	}

	spans := make([]types.EntitySpan, 0, len(parsed.Entities))
	for _, entity := range parsed.Entities {
		if entity.Confidence < c.minConfidence {
			continue
		}
		spans = append(spans, types.EntitySpan{
			Text:       entity.Text,
			Kind:       types.EntityKind(entity.Kind),
			Confidence: entity.Confidence,
		})
	}

	logger.Debug().
		Int("spans", len(spans)).
		Int("filtered", len(parsed.Entities)-len(spans)).
		Msg("NER标注完成")

	return spans, nil
}
