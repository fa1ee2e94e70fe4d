package cmd

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bootstrapLogger startup console logger
// bootstrapLogger 启动期控制台日志器
// 配置加载完成前主日志器尚不存在，启动过程的输出全部走这里
var bootstrapLogger *zap.Logger

func init() {
	// 控制台彩色输出，时间用 ISO8601
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	consoleWriter := zapcore.Lock(os.Stderr)

	// DEBUG 环境变量打开调试级别
	level := zapcore.InfoLevel
	if os.Getenv("DEBUG") != "" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(consoleEncoder, consoleWriter, level)
	bootstrapLogger = zap.New(core, zap.AddCaller())
}

// BootstrapLogger gets the startup console logger
// BootstrapLogger 获取启动期控制台日志器
func BootstrapLogger() *zap.Logger {
	return bootstrapLogger
}
