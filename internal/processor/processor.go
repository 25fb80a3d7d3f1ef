package processor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/normalizer"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/scorer"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
	"resume-match-go/pkg/utils"

	"resume-match-go/internal/logger"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var processorTracer = otel.Tracer("resume-match-go/processor")

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	Parser     *parser.ResumeParser
	Normalizer *normalizer.Normalizer
	Scorer     *scorer.MatchScorer
	Reranker   *matcher.MatchReranker

	// 存储层依赖，可为 nil（纯计算模式）
	Storage *storage.Storage
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	// MatchTimeout 单次匹配的硬超时
	MatchTimeout time.Duration
	// PersistResults 是否把匹配结果写入MySQL/MinIO
	PersistResults bool
	// EventExchange / EventRoutingKey 匹配完成事件的出站路由
	// 为空时不写发件箱事件
	EventExchange   string
	EventRoutingKey string
}

// ComponentOpt 组件选项，仅改变 Components 内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项，仅改变 Settings 内的字段
type SettingOpt func(*Settings)

// WithStorage 设置存储层
func WithStorage(s *storage.Storage) ComponentOpt {
	return func(c *Components) {
		c.Storage = s
	}
}

// WithReranker 设置重排器
func WithReranker(r *matcher.MatchReranker) ComponentOpt {
	return func(c *Components) {
		c.Reranker = r
	}
}

// WithMatchTimeout 设置单次匹配超时
func WithMatchTimeout(d time.Duration) SettingOpt {
	return func(s *Settings) {
		if d > 0 {
			s.MatchTimeout = d
		}
	}
}

// WithPersistence 控制匹配结果是否落库
func WithPersistence(enabled bool) SettingOpt {
	return func(s *Settings) {
		s.PersistResults = enabled
	}
}

// WithEventRouting 设置匹配完成事件的交换机与路由键
func WithEventRouting(exchange, routingKey string) SettingOpt {
	return func(s *Settings) {
		s.EventExchange = exchange
		s.EventRoutingKey = routingKey
	}
}

// MatchProcessor 匹配流程编排：解析、规范化、评分、重排、持久化
type MatchProcessor struct {
	components Components
	settings   Settings
}

// NewMatchProcessor 创建匹配处理器
func NewMatchProcessor(p *parser.ResumeParser, n *normalizer.Normalizer, s *scorer.MatchScorer, compOpts []ComponentOpt, setOpts []SettingOpt) *MatchProcessor {
	components := Components{
		Parser:     p,
		Normalizer: n,
		Scorer:     s,
	}
	for _, opt := range compOpts {
		opt(&components)
	}

	settings := Settings{
		MatchTimeout:   constants.DefaultMatchTimeout,
		PersistResults: true,
	}
	for _, opt := range setOpts {
		opt(&settings)
	}

	return &MatchProcessor{components: components, settings: settings}
}

// MatchOutcome 单次匹配的完整产出
type MatchOutcome struct {
	MatchUUID string                `json:"match_uuid"`
	Resume    *types.Resume         `json:"resume"`
	Job       *types.JobRequirement `json:"job"`
	Result    *types.MatchResult    `json:"result"`
}

// ParseResumeText 解析并规范化一份简历文本
func (p *MatchProcessor) ParseResumeText(ctx context.Context, resumeText string) (*types.Resume, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResumeText
	}

	ctx, span := processorTracer.Start(ctx, "processor.ParseResumeText")
	defer span.End()

	resume, err := p.components.Parser.ParseResume(ctx, resumeText)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, newProcessError("", "parse_resume", ErrParseResumeFailed, err.Error())
	}
	if p.components.Normalizer != nil {
		p.components.Normalizer.Apply(resume)
	}
	return resume, nil
}

// ParseJobText 解析一份JD文本
// 文本先做首尾去空白，再以其MD5为键查Redis缓存：命中复用缓存原文，未命中则回填
func (p *MatchProcessor) ParseJobText(ctx context.Context, jobText string) (*types.JobRequirement, error) {
	jobText = strings.TrimSpace(jobText)
	if jobText == "" {
		return nil, ErrEmptyJobText
	}

	ctx, span := processorTracer.Start(ctx, "processor.ParseJobText")
	defer span.End()

	if redis := p.redis(); redis != nil {
		jobMD5 := utils.MD5OfString(jobText)
		cached, found, err := redis.GetJobDescriptionText(ctx, jobMD5)
		switch {
		case err != nil:
			logger.Debug().Err(err).Msg("查询JD缓存失败，忽略")
		case found:
			jobText = cached
		default:
			if err := redis.SetJobDescriptionText(ctx, jobMD5, jobText); err != nil {
				logger.Debug().Err(err).Msg("缓存JD原文失败，忽略")
			}
		}
	}

	return parser.ParseJobDescription(jobText), nil
}

// Match 执行一次简历与JD的完整匹配
// 解析与评分受 MatchTimeout 约束，持久化失败不影响返回结果
func (p *MatchProcessor) Match(ctx context.Context, resumeText, jobText string) (*MatchOutcome, error) {
	matchUUID := newMatchUUID()

	ctx, cancel := context.WithTimeout(ctx, p.settings.MatchTimeout)
	defer cancel()

	ctx, span := processorTracer.Start(ctx, "processor.Match",
		trace.WithAttributes(
			attribute.String("match.uuid", matchUUID),
			attribute.String("match.resume_snippet", tracing.SafeResumeContent(resumeText)),
			attribute.String("match.job_snippet", tracing.SafeJobContent(jobText)),
		))
	defer span.End()

	resume, err := p.ParseResumeText(ctx, resumeText)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	job, err := p.ParseJobText(ctx, jobText)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	result := p.components.Scorer.Score(ctx, resume, job)

	if p.components.Reranker != nil {
		result.RankedMatches = p.components.Reranker.RankHighlights(ctx, resume, job)
	}

	span.SetAttributes(
		attribute.Float64("match.overall_score", result.OverallScore),
		attribute.Int("match.required_skills", len(job.RequiredSkills)),
	)

	outcome := &MatchOutcome{
		MatchUUID: matchUUID,
		Resume:    resume,
		Job:       job,
		Result:    result,
	}

	if p.settings.PersistResults {
		p.persistOutcome(ctx, resumeText, jobText, outcome)
	}

	return outcome, nil
}

// persistOutcome 尽力而为地落库与归档，失败仅记日志
func (p *MatchProcessor) persistOutcome(ctx context.Context, resumeText, jobText string, outcome *MatchOutcome) {
	resumeMD5 := utils.MD5OfString(resumeText)
	jobMD5 := utils.MD5OfString(jobText)

	if db := p.mysql(); db != nil {
		record := &models.MatchRecord{
			MatchUUID:       outcome.MatchUUID,
			ResumeMD5:       resumeMD5,
			JobMD5:          jobMD5,
			JobTitle:        outcome.Job.Title,
			CandidateName:   outcome.Resume.Name,
			OverallScore:    outcome.Result.OverallScore,
			SkillScore:      outcome.Result.SkillScore,
			ExperienceScore: outcome.Result.ExperienceScore,
			EducationScore:  outcome.Result.EducationScore,
			SemanticScore:   outcome.Result.SemanticScore,
			ExperienceYears: outcome.Result.CalculatedExperienceYears,
			Details:         utils.MarshalToJSONColumn(outcome.Result.Details),
		}
		event := p.buildCompletionEvent(outcome)
		if err := db.CreateMatchRecordWithEvent(ctx, record, event); err != nil {
			logger.Warn().Err(err).Str("match_uuid", outcome.MatchUUID).Msg("匹配记录落库失败")
		}
	}

	if m := p.minio(); m != nil {
		if _, err := m.SaveMatchResultJSON(ctx, resumeMD5, jobMD5, outcome.Result); err != nil {
			logger.Warn().Err(err).Str("match_uuid", outcome.MatchUUID).Msg("匹配结果归档失败")
		}
	}
}

// matchCompletedEvent 匹配完成事件的消息体
type matchCompletedEvent struct {
	MatchUUID    string  `json:"match_uuid"`
	JobTitle     string  `json:"job_title"`
	OverallScore float64 `json:"overall_score"`
}

// buildCompletionEvent 构造写入发件箱的匹配完成事件，未配置路由时返回nil
func (p *MatchProcessor) buildCompletionEvent(outcome *MatchOutcome) *models.OutboxMessage {
	if p.settings.EventExchange == "" || p.settings.EventRoutingKey == "" {
		return nil
	}
	payload, err := json.Marshal(matchCompletedEvent{
		MatchUUID:    outcome.MatchUUID,
		JobTitle:     outcome.Job.Title,
		OverallScore: outcome.Result.OverallScore,
	})
	if err != nil {
		return nil
	}
	return &models.OutboxMessage{
		AggregateID:      outcome.MatchUUID,
		EventType:        "match.completed",
		Payload:          string(payload),
		TargetExchange:   p.settings.EventExchange,
		TargetRoutingKey: p.settings.EventRoutingKey,
		Status:           models.OutboxStatusPending,
	}
}

// BatchItemResult 批量匹配中单份简历的结果或错误
type BatchItemResult struct {
	ItemID    string             `json:"item_id"`
	MatchUUID string             `json:"match_uuid,omitempty"`
	Result    *types.MatchResult `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// MatchBatch 把多份简历与同一JD匹配
// JD只解析一次，单份简历失败不影响其余简历
func (p *MatchProcessor) MatchBatch(ctx context.Context, resumeTexts []string, jobText string) ([]BatchItemResult, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, ErrEmptyJobText
	}

	ctx, span := processorTracer.Start(ctx, "processor.MatchBatch",
		trace.WithAttributes(attribute.Int("batch.size", len(resumeTexts))))
	defer span.End()

	job, err := p.ParseJobText(ctx, jobText)
	if err != nil {
		return nil, err
	}

	results := make([]BatchItemResult, 0, len(resumeTexts))
	for _, resumeText := range resumeTexts {
		item := BatchItemResult{ItemID: newMatchUUID()}

		resume, err := p.ParseResumeText(ctx, resumeText)
		if err != nil {
			item.Error = err.Error()
			results = append(results, item)
			continue
		}

		itemCtx, cancel := context.WithTimeout(ctx, p.settings.MatchTimeout)
		result := p.components.Scorer.Score(itemCtx, resume, job)
		if p.components.Reranker != nil {
			result.RankedMatches = p.components.Reranker.RankHighlights(itemCtx, resume, job)
		}
		cancel()

		item.MatchUUID = item.ItemID
		item.Result = result

		if p.settings.PersistResults {
			p.persistOutcome(ctx, resumeText, jobText, &MatchOutcome{
				MatchUUID: item.MatchUUID,
				Resume:    resume,
				Job:       job,
				Result:    result,
			})
		}

		results = append(results, item)
	}

	return results, nil
}

// SubmitMatchTask 把批量匹配任务发布到消息队列，返回任务ID
func (p *MatchProcessor) SubmitMatchTask(ctx context.Context, resumeTexts []string, jobText string) (string, error) {
	if strings.TrimSpace(jobText) == "" {
		return "", ErrEmptyJobText
	}
	mq := p.rabbitmq()
	if mq == nil {
		return "", ErrQueueUnavailable
	}

	task := &storage.MatchTaskMessage{
		TaskID:         newMatchUUID(),
		ResumeTexts:    resumeTexts,
		JobDescription: jobText,
		SubmittedAt:    time.Now(),
	}
	if err := mq.PublishMatchTask(ctx, task); err != nil {
		return "", newProcessError(task.TaskID, "publish_task", ErrPublishTaskFailed, err.Error())
	}
	return task.TaskID, nil
}

// HandleMatchTask 消费端处理一条批量匹配任务
func (p *MatchProcessor) HandleMatchTask(ctx context.Context, task *storage.MatchTaskMessage) error {
	results, err := p.MatchBatch(ctx, task.ResumeTexts, task.JobDescription)
	if err != nil {
		return err
	}
	failed := 0
	for _, item := range results {
		if item.Error != "" {
			failed++
		}
	}
	logger.Info().
		Str("task_id", task.TaskID).
		Int("total", len(results)).
		Int("failed", failed).
		Msg("批量匹配任务完成")
	return nil
}

func (p *MatchProcessor) redis() *storage.Redis {
	if p.components.Storage == nil {
		return nil
	}
	return p.components.Storage.Redis
}

func (p *MatchProcessor) mysql() *storage.MySQL {
	if p.components.Storage == nil {
		return nil
	}
	return p.components.Storage.MySQL
}

func (p *MatchProcessor) minio() *storage.MinIO {
	if p.components.Storage == nil {
		return nil
	}
	return p.components.Storage.MinIO
}

func (p *MatchProcessor) rabbitmq() *storage.RabbitMQ {
	if p.components.Storage == nil {
		return nil
	}
	return p.components.Storage.RabbitMQ
}

// newMatchUUID 生成时间有序的UUIDv7，失败时退回随机UUID
func newMatchUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Must(uuid.NewV4()).String()
	}
	return id.String()
}
