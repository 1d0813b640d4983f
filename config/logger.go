package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger 全局zap日志实例
	Logger *zap.Logger
	// Sugar 全局sugared logger，用于格式化输出
	Sugar *zap.SugaredLogger
)

// SetupLogger 初始化日志配置
// 日志级别通过 LOG_LEVEL 控制: "debug", "info", "warn", "error" (默认: "info")
func SetupLogger() error {
	var zapLevel zapcore.Level
	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// 输出到标准输出（便于Docker和日志收集器捕获）
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	baseLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	baseLogger = baseLogger.With(zap.String("service_name", "house-hub-api"))
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		baseLogger = baseLogger.With(zap.String("hostname", hostname))
	}

	Logger = baseLogger
	Sugar = baseLogger.Sugar()
	return nil
}

// Info 记录信息级别的日志
func Info(format string, v ...interface{}) {
	logger().Infof(format, v...)
}

// Warning 记录警告级别的日志
func Warning(format string, v ...interface{}) {
	logger().Warnf(format, v...)
}

// Error 记录错误级别的日志
func Error(format string, v ...interface{}) {
	logger().Errorf(format, v...)
}

// Debug 记录调试级别的日志
func Debug(format string, v ...interface{}) {
	logger().Debugf(format, v...)
}

// logger 返回可用的sugared logger，未初始化时退回Nop以避免空指针
func logger() *zap.SugaredLogger {
	if Sugar == nil {
		Sugar = zap.NewNop().Sugar()
	}
	return Sugar
}
