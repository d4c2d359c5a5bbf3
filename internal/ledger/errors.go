// internal/ledger/errors.go
//
// 集中定義「領域錯誤（domain errors）」。
// 這些錯誤屬於商業邏輯層級（非系統錯誤）：餘額不足、帳號重複、目標不存在等
// 皆以錯誤值回傳且不改變任何狀態；上層（HTTP handler 或 CLI）再轉換成
// 適當的呈現方式。檔案讀寫失敗則不屬於此類，會以原始錯誤直接往外傳。
package ledger

import "errors"

var (
	// ErrAccountExists 代表開戶時帳號已被使用。
	ErrAccountExists = errors.New("account already exists")

	// ErrAuthFailed 代表登入失敗。
	// 帳號不存在與密碼錯誤刻意不做區分，呼叫端只會看到同一種失敗。
	ErrAuthFailed = errors.New("authentication failed")

	// ErrAccountNotFound 代表寫回時帳戶紀錄已不存在。
	ErrAccountNotFound = errors.New("account not found")

	// ErrDestNotFound 代表轉帳目標帳號不存在。
	ErrDestNotFound = errors.New("destination account not found")

	// ErrInsufficient 代表餘額不足（含手續費不足的情況），提款或轉帳失敗。
	ErrInsufficient = errors.New("insufficient balance")

	// ErrSameAccount 代表轉帳來源與目標帳號相同。
	ErrSameAccount = errors.New("from and to are same")
)
