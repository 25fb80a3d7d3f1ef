package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/capability"
	"resume-match-go/internal/config"
	appCoreLogger "resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/normalizer"
	"resume-match-go/internal/outbox"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/scorer"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

var (
	version     = "1.0.0"        //nolint:gochecknoglobals
	serviceName = "resume-match" //nolint:gochecknoglobals
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		appCoreLogger.Init(appCoreLogger.Config{Level: "info", Format: "pretty"})
		appCoreLogger.Fatal().Err(err).Msg("加载配置失败")
	}
	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.InitTracerProvider(ctx, &cfg.Tracing)
	if err != nil {
		glog.Fatalf("初始化追踪失败: %v", err)
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := shutdownTracing(shutdownCtx); err != nil {
			glog.Warnf("关闭追踪失败: %v", err)
		}
	}()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	matchProcessor, err := buildProcessor(cfg, storageManager)
	if err != nil {
		glog.Fatalf("初始化匹配处理器失败: %v", err)
	}
	glog.Info("匹配处理器初始化成功")

	var messageRelay *outbox.MessageRelay
	if storageManager.MySQL != nil && storageManager.RabbitMQ != nil {
		messageRelay = outbox.NewMessageRelay(storageManager.MySQL.DB(), storageManager.RabbitMQ)
		messageRelay.Start()
		glog.Info("发件箱中继已启动")
	}

	if storageManager.RabbitMQ != nil {
		go func() {
			glog.Infof("启动批量匹配任务消费者，队列: %s", cfg.RabbitMQ.MatchTaskQueue)
			err := storageManager.RabbitMQ.StartMatchTaskConsumer(ctx, matchProcessor.HandleMatchTask)
			if err != nil && ctx.Err() == nil {
				glog.Fatalf("批量匹配任务消费者退出: %v", err)
			}
		}()
	}

	matchHandler := handler.NewMatchHandler(cfg, storageManager, matchProcessor)

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))

	router.RegisterRoutes(h, cfg, matchHandler)
	glog.Info("HTTP路由注册成功")

	go func() {
		glog.Infof("HTTP服务器启动中，监听地址: %s", cfg.Server.Address)
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")
	cancel()
	if messageRelay != nil {
		messageRelay.Stop()
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化zerolog全局日志并桥接到Hertz
func initLogger(cfg *config.Config) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	appCoreLogger.Logger = appCoreLogger.Logger.With().
		Str("app", serviceName).
		Str("version", version).
		Logger()

	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
}

// buildProcessor 组装解析、规范化、评分与重排组件
func buildProcessor(cfg *config.Config, storageManager *storage.Storage) (*processor.MatchProcessor, error) {
	var embedder capability.TextEmbedder
	if cfg.Embedding.APIKey != "" {
		client, err := capability.NewEmbeddingClient(cfg.Embedding)
		if err != nil {
			return nil, err
		}
		embedder = capability.NewRateLimitedEmbedder(client, cfg.Embedding.RequestsPerMinute)
		if storageManager != nil && storageManager.Redis != nil {
			embedder = capability.NewCachedEmbedder(embedder, storageManager.Redis)
			glog.Info("嵌入向量Redis缓存已启用")
		}
	} else {
		glog.Warn("未配置嵌入服务API密钥，语义匹配能力降级")
	}

	var similarity capability.SimilarityScorer
	if embedder != nil {
		cosine, err := capability.NewCosineScorer(embedder)
		if err != nil {
			return nil, err
		}
		similarity = cosine
	}

	var tagger capability.EntityTagger
	if cfg.NER.BaseURL != "" {
		nerClient, err := capability.NewNERClient(cfg.NER)
		if err != nil {
			return nil, err
		}
		tagger = nerClient
		glog.Info("NER客户端初始化成功")
	} else {
		glog.Warn("未配置NER服务，联系人提取仅依赖标签与启发式")
	}

	norm, err := normalizer.NewNormalizer(cfg.Ontology.SkillsPath, cfg.Ontology.JobTitlesPath)
	if err != nil {
		return nil, err
	}

	resumeParser := parser.NewResumeParser(tagger)
	skillMatcher := matcher.NewSkillMatcher(similarity, cfg.Matching.SemanticThreshold)
	matchScorer := scorer.NewMatchScorer(skillMatcher, similarity, scorer.Weights{
		Skills:     cfg.Matching.SkillsWeight,
		Experience: cfg.Matching.ExperienceWeight,
		Education:  cfg.Matching.EducationWeight,
		Semantic:   cfg.Matching.SemanticWeight,
	})

	compOpts := []processor.ComponentOpt{
		processor.WithStorage(storageManager),
	}
	if cfg.Reranker.Enabled && cfg.Reranker.BaseURL != "" {
		rerankClient, err := capability.NewRerankerClient(cfg.Reranker)
		if err != nil {
			return nil, err
		}
		compOpts = append(compOpts, processor.WithReranker(matcher.NewMatchReranker(rerankClient)))
		glog.Info("重排客户端初始化成功")
	}

	setOpts := []processor.SettingOpt{
		processor.WithMatchTimeout(time.Duration(cfg.Matching.MatchTimeoutSeconds) * time.Second),
	}
	if cfg.RabbitMQ.MatchEventsExchange != "" && cfg.RabbitMQ.MatchResultRoutingKey != "" {
		setOpts = append(setOpts, processor.WithEventRouting(cfg.RabbitMQ.MatchEventsExchange, cfg.RabbitMQ.MatchResultRoutingKey))
	}

	return processor.NewMatchProcessor(resumeParser, norm, matchScorer, compOpts, setOpts), nil
}
