package router

import (
	"context"
	"errors"
	"strconv"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/config"
	"resume-match-go/internal/processor"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
)

// RegisterRoutes 注册 API 路由
// 配置了 server.api_key 时，除健康检查外的接口启用 keyauth 鉴权
func RegisterRoutes(h *server.Hertz, cfg *config.Config, matchHandler *handler.MatchHandler) {
	h.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")
	if cfg.Server.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
			keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
				return key == cfg.Server.APIKey, nil
			}),
		))
	}

	api.POST("/match", func(c context.Context, ctx *app.RequestContext) {
		var req handler.MatchRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式非法"})
			return
		}

		resp, err := matchHandler.HandleMatch(c, &req)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/match/batch", func(c context.Context, ctx *app.RequestContext) {
		var req handler.BatchMatchRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式非法"})
			return
		}

		resp, err := matchHandler.HandleBatchMatch(c, &req)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/match/async", func(c context.Context, ctx *app.RequestContext) {
		var req handler.BatchMatchRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式非法"})
			return
		}

		resp, err := matchHandler.HandleAsyncMatch(c, &req)
		if err != nil {
			if errors.Is(err, processor.ErrQueueUnavailable) {
				ctx.JSON(consts.StatusServiceUnavailable, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusAccepted, resp)
	})

	api.GET("/match/:uuid", func(c context.Context, ctx *app.RequestContext) {
		record, err := matchHandler.HandleGetMatch(c, ctx.Param("uuid"))
		if err != nil {
			if errors.Is(err, handler.ErrMatchNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, record)
	})

	api.GET("/match/archive", func(c context.Context, ctx *app.RequestContext) {
		resumeMD5 := ctx.Query("resume_md5")
		jobMD5 := ctx.Query("job_md5")

		result, err := matchHandler.HandleGetArchivedResult(c, resumeMD5, jobMD5)
		if err != nil {
			switch {
			case errors.Is(err, handler.ErrMatchNotFound):
				ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			case errors.Is(err, handler.ErrArchiveUnavailable):
				ctx.JSON(consts.StatusServiceUnavailable, utils.H{"error": err.Error()})
			default:
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	api.GET("/matches", func(c context.Context, ctx *app.RequestContext) {
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

		records, err := matchHandler.HandleListMatches(c, limit, offset)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"matches": records})
	})

	api.POST("/parse/resume", func(c context.Context, ctx *app.RequestContext) {
		var req handler.ParseResumeRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式非法"})
			return
		}

		resume, err := matchHandler.HandleParseResume(c, &req)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resume)
	})

	api.POST("/parse/jd", func(c context.Context, ctx *app.RequestContext) {
		var req handler.ParseJobRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式非法"})
			return
		}

		job, err := matchHandler.HandleParseJob(c, &req)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, job)
	})

	api.POST("/feedback", func(c context.Context, ctx *app.RequestContext) {
		var req handler.FeedbackRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式非法"})
			return
		}

		if err := matchHandler.HandleFeedback(c, &req); err != nil {
			switch {
			case errors.Is(err, handler.ErrMatchNotFound):
				ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			case errors.Is(err, handler.ErrFeedbackUnavailable):
				ctx.JSON(consts.StatusServiceUnavailable, utils.H{"error": err.Error()})
			default:
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"status": "recorded"})
	})
}

// statusForError 把处理器错误映射为HTTP状态码
func statusForError(err error) int {
	switch {
	case errors.Is(err, processor.ErrEmptyResumeText),
		errors.Is(err, processor.ErrEmptyJobText):
		return consts.StatusBadRequest
	default:
		return consts.StatusInternalServerError
	}
}
