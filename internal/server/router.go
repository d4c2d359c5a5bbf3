// internal/server/router.go
//
// HTTP 路由註冊。與 handler.go 分離：
//   - handler.go 定義「如何處理請求」
//   - router.go 定義「請求如何被導向」
//   - main.go 組裝整體應用（注入 Ledger、Storage、Logger）
//
// 採明確路由註冊（非反射式），確保高可讀性與低魔法性。
package server

import "net/http"

// Router 建立並回傳整個 HTTP 處理鏈。
// 所有端點同時掛在根路徑與 /api/v1/ 下；
// 若未來有 /api/v2，只需額外建立一組 mux。
func (s *Server) Router() http.Handler {
	v1 := http.NewServeMux()

	// 健康檢查：可供監控或 Docker liveness probe 使用。
	v1.HandleFunc("/health", s.health)

	// 開戶與登入：
	//   - POST /accounts → 開戶
	//   - POST /login    → 登入，取得會話 token
	//   - POST /logout   → 登出
	v1.HandleFunc("/accounts", s.register)
	v1.HandleFunc("/login", s.login)
	v1.HandleFunc("/logout", s.logout)

	// 會話操作（需 X-Session-Token）：
	//   - POST /session/deposit
	//   - POST /session/withdraw
	//   - POST /session/transfer
	//   - GET  /session/balance
	//   - GET  /session/history
	v1.HandleFunc("/session/deposit", s.deposit)
	v1.HandleFunc("/session/withdraw", s.withdraw)
	v1.HandleFunc("/session/transfer", s.transfer)
	v1.HandleFunc("/session/balance", s.balance)
	v1.HandleFunc("/session/history", s.history)

	handler := s.logRequests(v1)

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", handler))
	root.Handle("/", handler)
	return root
}

// logRequests 為簡單的請求日誌 middleware。
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path)
	})
}
