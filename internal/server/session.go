// internal/server/session.go
//
// 會話管理：登入成功後，離線帳戶副本 (detached Account) 被放進
// token → Account 的對應表，後續操作憑 token 取回同一份副本。
// token 以 UUID 產生，僅存在於記憶體，程序結束即失效。
package server

import (
	"sync"

	"atmbank/internal/ledger"

	"github.com/google/uuid"
)

type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*ledger.Account
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*ledger.Account)}
}

// create 為帳戶副本配發新 token。
func (m *sessionManager) create(a *ledger.Account) string {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = a
	return token
}

// get 依 token 取回會話中的帳戶副本。
func (m *sessionManager) get(token string) (*ledger.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.sessions[token]
	return a, ok
}

// drop 登出：移除會話。未寫回的變更隨副本一併丟棄。
func (m *sessionManager) drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
