package handler

import (
	"context"
	"errors"
	"fmt"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"
)

// MatchHandler 匹配接口处理器，协调解析与评分流程
type MatchHandler struct {
	cfg     *config.Config
	storage *storage.Storage
	proc    *processor.MatchProcessor
}

// NewMatchHandler 创建匹配处理器
func NewMatchHandler(cfg *config.Config, storage *storage.Storage, proc *processor.MatchProcessor) *MatchHandler {
	return &MatchHandler{
		cfg:     cfg,
		storage: storage,
		proc:    proc,
	}
}

// MatchRequest 单次匹配请求
type MatchRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// MatchResponse 单次匹配响应
type MatchResponse struct {
	MatchUUID string             `json:"match_uuid"`
	Result    *types.MatchResult `json:"result"`
}

// HandleMatch 处理单次简历与JD匹配
func (h *MatchHandler) HandleMatch(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	outcome, err := h.proc.Match(ctx, req.ResumeText, req.JobDescription)
	if err != nil {
		return nil, err
	}
	return &MatchResponse{
		MatchUUID: outcome.MatchUUID,
		Result:    outcome.Result,
	}, nil
}

// ParseResumeRequest 简历解析请求
type ParseResumeRequest struct {
	ResumeText string `json:"resume_text"`
}

// HandleParseResume 只解析简历不评分
func (h *MatchHandler) HandleParseResume(ctx context.Context, req *ParseResumeRequest) (*types.Resume, error) {
	return h.proc.ParseResumeText(ctx, req.ResumeText)
}

// ParseJobRequest JD解析请求
type ParseJobRequest struct {
	JobDescription string `json:"job_description"`
}

// HandleParseJob 只解析JD不评分
func (h *MatchHandler) HandleParseJob(ctx context.Context, req *ParseJobRequest) (*types.JobRequirement, error) {
	return h.proc.ParseJobText(ctx, req.JobDescription)
}

// BatchMatchRequest 批量匹配请求
type BatchMatchRequest struct {
	ResumeTexts    []string `json:"resume_texts"`
	JobDescription string   `json:"job_description"`
}

// BatchMatchResponse 同步批量匹配响应
type BatchMatchResponse struct {
	Items []processor.BatchItemResult `json:"items"`
}

// HandleBatchMatch 同步批量匹配：多份简历对同一JD
func (h *MatchHandler) HandleBatchMatch(ctx context.Context, req *BatchMatchRequest) (*BatchMatchResponse, error) {
	if len(req.ResumeTexts) == 0 {
		return nil, fmt.Errorf("简历列表不能为空")
	}
	items, err := h.proc.MatchBatch(ctx, req.ResumeTexts, req.JobDescription)
	if err != nil {
		return nil, err
	}
	return &BatchMatchResponse{Items: items}, nil
}

// AsyncMatchResponse 异步批量匹配响应
type AsyncMatchResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// HandleAsyncMatch 把批量匹配任务投递到消息队列
func (h *MatchHandler) HandleAsyncMatch(ctx context.Context, req *BatchMatchRequest) (*AsyncMatchResponse, error) {
	if len(req.ResumeTexts) == 0 {
		return nil, fmt.Errorf("简历列表不能为空")
	}
	taskID, err := h.proc.SubmitMatchTask(ctx, req.ResumeTexts, req.JobDescription)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("task_id", taskID).Int("resumes", len(req.ResumeTexts)).Msg("异步匹配任务已提交")
	return &AsyncMatchResponse{TaskID: taskID, Status: "QUEUED"}, nil
}

// FeedbackRequest 匹配反馈请求
type FeedbackRequest struct {
	MatchUUID string `json:"match_uuid"`
	Useful    bool   `json:"useful"`
	Comment   string `json:"comment"`
}

// ErrFeedbackUnavailable 未配置MySQL时反馈能力不可用
var ErrFeedbackUnavailable = errors.New("反馈存储未配置")

// ErrMatchNotFound 匹配记录不存在
var ErrMatchNotFound = errors.New("匹配记录不存在")

// HandleFeedback 记录HR对一次匹配结果的反馈
func (h *MatchHandler) HandleFeedback(ctx context.Context, req *FeedbackRequest) error {
	if h.storage == nil || h.storage.MySQL == nil {
		return ErrFeedbackUnavailable
	}
	if req.MatchUUID == "" {
		return fmt.Errorf("match_uuid不能为空")
	}

	feedback := &models.FeedbackRecord{
		MatchUUID: req.MatchUUID,
		Useful:    req.Useful,
		Comment:   req.Comment,
	}
	err := h.storage.MySQL.CreateFeedback(ctx, feedback)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return ErrMatchNotFound
	}
	return err
}

// HandleGetMatch 按UUID查询历史匹配记录
func (h *MatchHandler) HandleGetMatch(ctx context.Context, matchUUID string) (*models.MatchRecord, error) {
	if h.storage == nil || h.storage.MySQL == nil {
		return nil, ErrFeedbackUnavailable
	}
	record, err := h.storage.MySQL.GetMatchRecord(ctx, matchUUID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	return record, err
}

// HandleListMatches 分页列出历史匹配记录
func (h *MatchHandler) HandleListMatches(ctx context.Context, limit, offset int) ([]models.MatchRecord, error) {
	if h.storage == nil || h.storage.MySQL == nil {
		return nil, ErrFeedbackUnavailable
	}
	return h.storage.MySQL.ListMatchRecords(ctx, limit, offset)
}

// ErrArchiveUnavailable 未配置MinIO时归档能力不可用
var ErrArchiveUnavailable = errors.New("结果归档存储未配置")

// HandleGetArchivedResult 按简历与JD的MD5取归档的匹配结果JSON
func (h *MatchHandler) HandleGetArchivedResult(ctx context.Context, resumeMD5, jobMD5 string) (*types.MatchResult, error) {
	if h.storage == nil || h.storage.MinIO == nil {
		return nil, ErrArchiveUnavailable
	}
	if resumeMD5 == "" || jobMD5 == "" {
		return nil, fmt.Errorf("resume_md5与job_md5不能为空")
	}
	result, err := h.storage.MinIO.GetMatchResultJSON(ctx, resumeMD5, jobMD5)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	return result, err
}
