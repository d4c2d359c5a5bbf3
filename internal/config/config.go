// internal/config/config.go
//
// 環境變數設定：以 envconfig 解析（前綴 ATMBANK_），
// 並支援開發環境的 .env 檔（godotenv）。
package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config 為整個程序的設定。
type Config struct {
	Env       string `envconfig:"ENV" default:"development"`
	Addr      string `envconfig:"ADDR" default:":8080"`
	DataFile  string `envconfig:"DATA_FILE" default:"accounts.json"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load 讀取設定：先嘗試載入 .env（可選指定路徑），再解析環境變數。
// 找不到 .env 僅記 Warn，不視為錯誤。
func Load(logger *slog.Logger, envFilePath ...string) (*Config, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("ATMBANK", &cfg); err != nil {
		return nil, err
	}
	logger.Info("config loaded",
		"env", cfg.Env,
		"addr", cfg.Addr,
		"data_file", cfg.DataFile,
	)
	return &cfg, nil
}
