package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

// Init configures the process-wide JSON logger. Safe to call more than once.
func Init() {
	once.Do(func() {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	})
}

func Info(event string, fields map[string]interface{}) {
	logger().Info(event, args(fields)...)
}

func Warn(event string, fields map[string]interface{}) {
	logger().Warn(event, args(fields)...)
}

func Error(event string, err error, fields map[string]interface{}) {
	attrs := args(fields)
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	logger().Error(event, attrs...)
}

func InfoWithUser(userID, event string, fields map[string]interface{}) {
	logger().Info(event, append(args(fields), "user_id", userID)...)
}

func WarnWithUser(userID, event string, fields map[string]interface{}) {
	logger().Warn(event, append(args(fields), "user_id", userID)...)
}

func logger() *slog.Logger {
	Init()
	return log
}

func args(fields map[string]interface{}) []any {
	out := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
