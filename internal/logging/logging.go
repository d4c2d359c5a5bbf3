// internal/logging/logging.go
//
// 建構全程序共用的 slog.Logger：
// 以 charmbracelet/log 作為 handler，開發環境降到 Debug 等級，
// LogFormat 可切換 text / json 輸出。
package logging

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// New 依環境與輸出格式建立 logger。
func New(env, format string) *slog.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "atmbank",
	}
	if env == "development" {
		opts.Level = log.DebugLevel
	}
	if format == "json" {
		opts.Formatter = log.JSONFormatter
	}
	handler := log.NewWithOptions(os.Stderr, opts)
	return slog.New(handler)
}
