package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var mysqlTracer = otel.Tracer("resume-match-go/storage/mysql")

// ErrRecordNotFound 查询不到记录时返回
var ErrRecordNotFound = gorm.ErrRecordNotFound

// MySQL 关系库访问层，保存匹配记录与反馈
type MySQL struct {
	db *gorm.DB
}

// NewMySQL 建立MySQL连接并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mysql配置不能为空")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	gormLogger := logger.Default.LogMode(logger.Warn)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 100
	}
	lifetime := time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err := db.AutoMigrate(&models.MatchRecord{}, &models.FeedbackRecord{}, &models.OutboxMessage{}); err != nil {
		return nil, fmt.Errorf("自动迁移表结构失败: %w", err)
	}

	return &MySQL{db: db}, nil
}

// DB 暴露底层gorm连接，测试与迁移脚本使用
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭连接池
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateMatchRecord 写入一条匹配记录
func (m *MySQL) CreateMatchRecord(ctx context.Context, record *models.MatchRecord) error {
	ctx, span := mysqlTracer.Start(ctx, "mysql.CreateMatchRecord")
	defer span.End()
	span.SetAttributes(attribute.String("match.uuid", record.MatchUUID))

	if err := m.db.WithContext(ctx).Create(record).Error; err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return fmt.Errorf("写入匹配记录失败: %w", err)
	}
	return nil
}

// CreateMatchRecordWithEvent 在同一事务内写入匹配记录与发件箱事件
// 事件由 MessageRelay 异步发布，保证落库与发消息的最终一致
func (m *MySQL) CreateMatchRecordWithEvent(ctx context.Context, record *models.MatchRecord, event *models.OutboxMessage) error {
	ctx, span := mysqlTracer.Start(ctx, "mysql.CreateMatchRecordWithEvent")
	defer span.End()
	span.SetAttributes(attribute.String("match.uuid", record.MatchUUID))

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if event != nil {
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return fmt.Errorf("写入匹配记录与事件失败: %w", err)
	}
	return nil
}

// GetMatchRecord 按UUID查询匹配记录
func (m *MySQL) GetMatchRecord(ctx context.Context, matchUUID string) (*models.MatchRecord, error) {
	ctx, span := mysqlTracer.Start(ctx, "mysql.GetMatchRecord")
	defer span.End()
	span.SetAttributes(attribute.String("match.uuid", matchUUID))

	var record models.MatchRecord
	err := m.db.WithContext(ctx).Where("match_uuid = ?", matchUUID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("查询匹配记录失败: %w", err)
	}
	return &record, nil
}

// ListMatchRecords 按创建时间倒序分页列出匹配记录
func (m *MySQL) ListMatchRecords(ctx context.Context, limit, offset int) ([]models.MatchRecord, error) {
	ctx, span := mysqlTracer.Start(ctx, "mysql.ListMatchRecords")
	defer span.End()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []models.MatchRecord
	err := m.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("列出匹配记录失败: %w", err)
	}
	return records, nil
}

// CreateFeedback 写入一条匹配反馈，要求对应的匹配记录存在
func (m *MySQL) CreateFeedback(ctx context.Context, feedback *models.FeedbackRecord) error {
	ctx, span := mysqlTracer.Start(ctx, "mysql.CreateFeedback")
	defer span.End()
	span.SetAttributes(attribute.String("match.uuid", feedback.MatchUUID))

	var count int64
	if err := m.db.WithContext(ctx).Model(&models.MatchRecord{}).
		Where("match_uuid = ?", feedback.MatchUUID).Count(&count).Error; err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return fmt.Errorf("校验匹配记录失败: %w", err)
	}
	if count == 0 {
		return ErrRecordNotFound
	}

	if err := m.db.WithContext(ctx).Create(feedback).Error; err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return fmt.Errorf("写入反馈失败: %w", err)
	}
	return nil
}
