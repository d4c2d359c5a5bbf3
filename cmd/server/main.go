// cmd/server/main.go

// 帳戶總帳服務：提供開戶、登入、存提款、轉帳與紀錄查詢的 HTTP API。
// 此檔案負責組裝各模組（config, logging, storage, ledger, server）
// 並啟動 HTTP 伺服器；結束時（SIGINT/SIGTERM）做最後一次狀態保存。

package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"atmbank/internal/config"
	"atmbank/internal/ledger"
	"atmbank/internal/logging"
	"atmbank/internal/server"
	"atmbank/internal/storage"

	"github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// 先以預設 logger 讀設定，再依設定重建正式 logger
	logger := logging.New("development", "text")
	cfg, err := config.Load(logger)
	if err != nil {
		return err
	}
	logger = logging.New(cfg.Env, cfg.LogFormat)

	// 持久化層：明確路徑注入，啟動時載入既有帳戶表（不存在則空表）
	store := storage.NewStore(cfg.DataFile)
	l, err := ledger.New(store, logger)
	if err != nil {
		return err
	}

	s := server.NewServer(l, logger)

	// 監聽 SIGINT/SIGTERM，結束前保存狀態。
	// 每次變更後本就會持久化，這裡只是最後一道保險。
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		_ = l.Flush()
		os.Exit(0)
	}()

	logger.Info("ledger server running", "addr", cfg.Addr, "data_file", cfg.DataFile)
	return http.ListenAndServe(cfg.Addr, s.Router())
}
