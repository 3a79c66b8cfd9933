// Package obs contains observability utilities such as logging.
package obs

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fairyhunter13/product-stock-services/internal/config"
)

// Logger is the global structured logger used by the services.
//
// It discards everything until InitLogger is called.
var Logger = zap.NewNop().Sugar()

// InitLogger builds the global Logger. Production mode writes JSON at info
// level, development mode writes console output at debug level. When
// cfg.File is set, JSON lines are also written to a rotated file.
func InitLogger(cfg config.LogConfig) {
	var zapConfig zap.Config
	if cfg.Mode == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var stdoutEncoder zapcore.Encoder
	if cfg.Mode == "development" {
		stdoutEncoder = zapcore.NewConsoleEncoder(zapConfig.EncoderConfig)
	} else {
		stdoutEncoder = zapcore.NewJSONEncoder(zapConfig.EncoderConfig)
	}
	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEncoder, zapcore.AddSync(os.Stdout), zapConfig.Level),
	}
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotated),
			zapConfig.Level,
		))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(l)
	Logger = l.Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
