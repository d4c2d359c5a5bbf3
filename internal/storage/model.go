// internal/storage/model.go
//
// 定義「資料持久化層 (storage layer)」的結構模型。
// 此層僅保存帳戶表的序列化格式，不涉入任何商業邏輯。
//
// 磁碟格式固定為一個 JSON 物件：帳號字串 → {pin, balance, history}。
// 整表讀取、整表寫入；格式不含 schema 版本欄位，
// 結構不相容的檔案會在載入時直接回報錯誤。
package storage

// Record 為單一帳戶在儲存層的序列化格式。
// 不含方法與同步鎖，僅保存資料狀態。
type Record struct {
	PIN     string   `json:"pin"`     // 登入密碼（明碼比對，屬設計取捨）
	Balance int64    `json:"balance"` // 餘額，以最小貨幣單位儲存，恆非負
	History []string `json:"history"` // 交易紀錄，保序、只增不刪
}

// Table 為整個帳戶表：帳號 → 帳戶紀錄。
// 帳號為唯一鍵；每次成功變更後整表重寫。
type Table map[string]Record
