package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log 全局日志实例
var Log *zap.Logger

// Init 初始化 zap 日志
// debug 模式使用开发配置（彩色、人类可读），否则 JSON 生产配置
func Init(debug bool) {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Log = l
}

// Sync 刷新缓冲日志，进程退出前调用
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
