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
)

// RerankerClient 调用外部交叉编码器服务，实现 Reranker
type RerankerClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewRerankerClient 创建重排序客户端
func NewRerankerClient(cfg config.RerankerConfig) (*RerankerClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("reranker服务地址不能为空")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &RerankerClient{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// rerankRequest 重排序请求结构
type rerankRequest struct {
	Model    string `json:"model,omitempty"`
	Query    string `json:"query"`
	Document string `json:"document"`
}

// rerankResponse 重排序响应结构
type rerankResponse struct {
	Score float64 `json:"score"`
	Error string  `json:"error,omitempty"`
}

// Rerank 计算 query/candidate 对的相关性分数 [0,1]
func (c *RerankerClient) Rerank(ctx context.Context, query, candidate string) (float64, error) {
	payload, err := json.Marshal(rerankRequest{
		Model:    c.model,
		Query:    query,
		Document: candidate,
	})
	if err != nil {
		return 0, fmt.Errorf("序列化rerank请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("构建rerank请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("调用rerank服务失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("读取rerank响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rerank服务返回错误状态 %d: %s", resp.StatusCode, string(body))
	}

	var parsed rerankResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("解析rerank响应失败: %w", err)
	}
	if parsed.Error != "" {
		return 0, fmt.Errorf("rerank服务返回API错误: %s", parsed.Error)
	}

	return parsed.Score, nil
}
