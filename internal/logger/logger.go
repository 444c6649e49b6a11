package logger

import (
	"log"

	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	logger = l.Sugar()
}

func Fatal(msg string, keysAndValues ...any) {
	logger.Fatalw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	logger.Errorw(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	logger.Warnw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	logger.Infow(msg, keysAndValues...)
}

func Debug(msg string, keysAndValues ...any) {
	logger.Debugw(msg, keysAndValues...)
}
