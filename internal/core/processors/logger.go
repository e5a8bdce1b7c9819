package processors

import (
	"time"

	"go.uber.org/zap"

	"resptx/internal/core"
)

// AccessLogger 是一个记录响应日志的处理器
type AccessLogger struct {
	name     string
	priority int
}

// NewAccessLogger 创建一个新的响应日志处理器
func NewAccessLogger() *AccessLogger {
	return &AccessLogger{
		name:     "access-logger",
		priority: 1000, // 必须最后执行，才能看到转换结果
	}
}

// Name 返回处理器名称
func (a *AccessLogger) Name() string {
	return a.name
}

// Priority 返回处理器优先级
func (a *AccessLogger) Priority() int {
	return a.priority
}

// OnResponseHeaders 记录响应开始
func (a *AccessLogger) OnResponseHeaders(ctx *core.ResponseContext, headers core.HeaderAccessor) {
	// request_id、method、path 已经在创建 ctx.Log 时通过 With() 注入
	ctx.Log.Info("Response Started", zap.Int("status", ctx.StatusCode))
}

// OnResponseBody 在最后一个分块到达时记录响应完成
func (a *AccessLogger) OnResponseBody(ctx *core.ResponseContext, body core.BodyAccessor, endOfStream bool) core.Action {
	if !endOfStream {
		return core.ActionContinue
	}

	fields := []zap.Field{
		zap.Duration("latency", time.Since(ctx.StartTime)),
		zap.Int("status", ctx.StatusCode),
	}
	if v, ok := ctx.GetMetadata(MetadataGeneration); ok {
		fields = append(fields, zap.Any("generation", v))
	}
	if v, ok := ctx.GetMetadata(MetadataBodyTransformed); ok {
		fields = append(fields, zap.Any("body_transformed", v))
	}
	if v, ok := ctx.GetMetadata(MetadataBodySkipReason); ok {
		fields = append(fields, zap.Any("body_skip_reason", v))
	}

	ctx.Log.Info("Response Finished", fields...)
	return core.ActionContinue
}
