package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig 描述可选的滚动日志文件
type RotationConfig struct {
	Filename   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// New 创建一个新的 zap logger实例
// level: 日志级别 (debug, info, warn, error)
// 返回配置好的 logger 和可能的错误
func New(level string) (*zap.Logger, error) {
	return NewWithCallerSkip(level, 0)
}

// NewWithCallerSkip 创建一个新的 zap logger实例，并设置 caller skip
// level: 日志级别 (debug, info, warn, error)
// skip: 跳过的调用栈层数
// 返回配置好的 logger 和可能的错误
func NewWithCallerSkip(level string, skip int) (*zap.Logger, error) {
	config := productionConfig(level)

	// 创建 logger
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// 添加 caller skip，如果 skip > 0
	if skip > 0 {
		logger = logger.WithOptions(zap.AddCallerSkip(skip))
	}

	return logger, nil
}

// NewWithRotation 创建同时输出到 stdout 和滚动文件的 logger
// rotation 为 nil 或 Filename 为空时等同于 New
func NewWithRotation(level string, rotation *RotationConfig) (*zap.Logger, error) {
	if rotation == nil || rotation.Filename == "" {
		return New(level)
	}

	config := productionConfig(level)
	encoder := zapcore.NewJSONEncoder(config.EncoderConfig)

	file := &lumberjack.Logger{
		Filename:   rotation.Filename,
		MaxSize:    rotation.MaxSize,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAge,
		Compress:   rotation.Compress,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), config.Level),
		zapcore.NewCore(encoder, zapcore.AddSync(file), config.Level),
	)

	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

func productionConfig(level string) zap.Config {
	// 使用生产配置（JSON编码）
	config := zap.NewProductionConfig()

	// 设置日志级别
	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// 配置输出到 stdout
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	// 自定义时间格式
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// 保持 caller 信息启用
	config.DisableCaller = false

	return config
}
