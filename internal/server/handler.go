// internal/server/handler.go
//
// Package server 提供 HTTP 介面，作為 ledger 模組的應用層。
// 每個 handler 僅負責：
//  1. 接收、解析並以 validator 驗證 HTTP 請求
//  2. 呼叫 ledger 層執行商業邏輯
//  3. 回傳標準化 JSON 回應
//
// 會話模型讓「離線副本 + 顯式寫回」的契約在傳輸層收口：
// 登入時產生 token 綁定副本，存提款 handler 在同一請求內完成
// 副本變更與 UpdateAccount 寫回，杜絕「忘記寫回」這一類錯誤。
//
// 分層維持：ledger 純商業邏輯、server 傳輸層、storage 持久化。
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"atmbank/internal/ledger"

	"github.com/go-playground/validator/v10"
)

// sessionHeader 為會話 token 的標頭名稱。
const sessionHeader = "X-Session-Token"

// Server 為 HTTP 層核心結構：
// - Ledger：注入的商業邏輯層。
// - sessions：登入會話表。
// - validate：請求結構驗證器。
type Server struct {
	Ledger   *ledger.Ledger
	sessions *sessionManager
	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer 建立新的 HTTP 伺服器。
func NewServer(l *ledger.Ledger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Ledger:   l,
		sessions: newSessionManager(),
		validate: validator.New(),
		logger:   logger,
	}
}

// bind 解析請求 JSON 並以 validator 驗證；失敗時直接輸出 400 並回傳 false。
func (s *Server) bind(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return false
	}
	return true
}

// session 取出請求所屬的帳戶副本；token 缺失或無效時輸出 401 並回傳 nil。
func (s *Server) session(w http.ResponseWriter, r *http.Request) *ledger.Account {
	token := r.Header.Get(sessionHeader)
	if token == "" {
		writeErr(w, errors.New("missing session token"), http.StatusUnauthorized)
		return nil
	}
	a, ok := s.sessions.get(token)
	if !ok {
		writeErr(w, errors.New("invalid session token"), http.StatusUnauthorized)
		return nil
	}
	return a
}

// statusOf 將領域錯誤映射為 HTTP 狀態碼。
func statusOf(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficient):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrDestNotFound), errors.Is(err, ledger.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrSameAccount):
		return http.StatusBadRequest
	default:
		// 儲存層故障等非預期錯誤
		return http.StatusInternalServerError
	}
}

// register 處理 POST /accounts → 開戶。
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		AccountNumber string `json:"account_number" validate:"required"`
		PIN           string `json:"pin" validate:"required"`
	}
	if !s.bind(w, r, &req) {
		return
	}
	if err := s.Ledger.AddAccount(req.AccountNumber, req.PIN); err != nil {
		writeErr(w, err, statusOf(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"account_number": req.AccountNumber})
}

// login 處理 POST /login → 驗證帳號密碼，成功時配發會話 token。
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		AccountNumber string `json:"account_number" validate:"required"`
		PIN           string `json:"pin" validate:"required"`
	}
	if !s.bind(w, r, &req) {
		return
	}
	a, err := s.Ledger.Authenticate(req.AccountNumber, req.PIN)
	if err != nil {
		writeErr(w, err, statusOf(err))
		return
	}
	token := s.sessions.create(a)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// logout 處理 POST /logout → 移除會話。
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if token := r.Header.Get(sessionHeader); token != "" {
		s.sessions.drop(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// deposit 處理 POST /session/deposit → 存款後立即寫回並持久化。
func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a := s.session(w, r)
	if a == nil {
		return
	}
	var req struct {
		Amount int64 `json:"amount" validate:"required,gt=0"`
	}
	if !s.bind(w, r, &req) {
		return
	}
	a.Deposit(req.Amount)
	if err := s.Ledger.UpdateAccount(a); err != nil {
		writeErr(w, err, statusOf(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": a.Balance()})
}

// withdraw 處理 POST /session/withdraw → 依提款策略扣款（含管理費）。
func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a := s.session(w, r)
	if a == nil {
		return
	}
	var req struct {
		Amount int64 `json:"amount" validate:"required,gt=0"`
	}
	if !s.bind(w, r, &req) {
		return
	}
	if !a.Withdraw(req.Amount) {
		writeErr(w, ledger.ErrInsufficient, http.StatusConflict)
		return
	}
	if err := s.Ledger.UpdateAccount(a); err != nil {
		writeErr(w, err, statusOf(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": a.Balance()})
}

// transfer 處理 POST /session/transfer → 轉帳到指定帳號。
// 成功後回傳來源帳戶最新餘額。
func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a := s.session(w, r)
	if a == nil {
		return
	}
	var req struct {
		To     string `json:"to" validate:"required"`
		Amount int64  `json:"amount" validate:"required,gt=0"`
	}
	if !s.bind(w, r, &req) {
		return
	}
	if err := s.Ledger.Transfer(a, req.To, req.Amount); err != nil {
		writeErr(w, err, statusOf(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "transfer success",
		"balance": a.Balance(),
	})
}

// balance 處理 GET /session/balance → 查詢會話帳戶餘額。
func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a := s.session(w, r)
	if a == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": a.Balance()})
}

// history 處理 GET /session/history → 查詢會話帳戶交易紀錄。
func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a := s.session(w, r)
	if a == nil {
		return
	}
	writeJSON(w, http.StatusOK, a.History())
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
