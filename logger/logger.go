package logger

import (
	"os"

	"go.uber.org/zap"
)

// Log is a no-op until Init runs, so library code can log
// unconditionally.
var Log = zap.NewNop().Sugar()

func Init() {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("TYCOON_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
