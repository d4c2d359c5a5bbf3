// internal/server/response.go
//
// 統一 HTTP 回應格式。
// 成功回應使用標準 JSON 編碼；錯誤回應一律輸出 {"error": "..."} 結構，
// 讓各 handler 的回傳行為保持一致、方便客戶端解析。
package server

import (
	"encoding/json"
	"net/http"
)

// writeJSON 統一輸出成功回應。
// 所有成功路徑皆應透過此函式回傳，以維持一致格式。
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr 統一輸出錯誤回應：{"error": err.Error()} 加上對應狀態碼。
func writeErr(w http.ResponseWriter, err error, code int) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
