// Package ledger 定義核心領域模型與業務規則：
// 帳戶、提款策略與總帳（帳戶表）。不含任何 HTTP 或儲存細節。
//
// Account 為「離線副本 (detached copy)」：由 Ledger.Authenticate 取得，
// 對它做的存提款只改變副本本身，必須經 Ledger.UpdateAccount 寫回
// 權威帳戶表後才會生效並持久化。
package ledger

import "fmt"

// Account 表示一個帳戶在單一會話中的狀態副本。
// 餘額以 int64 最小貨幣單位儲存，恆為非負；
// 歷史為保序、只增不刪的描述字串序列。
type Account struct {
	number  string
	pin     string
	balance int64
	history []string
	policy  WithdrawPolicy
}

// NewAccount 以既有狀態建構帳戶副本。history 由呼叫端讓渡所有權。
func NewAccount(number, pin string, balance int64, history []string, policy WithdrawPolicy) *Account {
	return &Account{number: number, pin: pin, balance: balance, history: history, policy: policy}
}

// Number 回傳帳號（建立後不可變）。
func (a *Account) Number() string { return a.number }

// Balance 回傳目前餘額；純讀取，無副作用。
func (a *Account) Balance() int64 { return a.balance }

// History 回傳交易歷史的拷貝，避免呼叫端改寫內部切片。
func (a *Account) History() []string {
	out := make([]string, len(a.history))
	copy(out, a.history)
	return out
}

// Deposit 存款：無條件成功（金額正值由呼叫端先行驗證）。
// 於同一步驟更新餘額並追加歷史，確保兩者一致。
func (a *Account) Deposit(amount int64) {
	a.balance += amount
	a.history = append(a.history, fmt.Sprintf("Deposit %d", amount))
}

// Withdraw 依帳戶的提款策略扣款：總額 = 金額 + 策略管理費。
// 若總額超過餘額則回傳 false 且狀態完全不變——
// 即使餘額足以支付提款金額本身，仍可能因管理費而失敗。
// 成功時扣除總額、追加歷史並回傳 true。
func (a *Account) Withdraw(amount int64) bool {
	total := amount + a.policy.Fee
	if total > a.balance {
		return false
	}
	a.balance -= total
	a.history = append(a.history, a.policy.entry(amount))
	return true
}

// AddHistory 追加任意歷史描述，不影響餘額。
// 供 Ledger 記錄轉帳兩側的「轉出／收到」註記使用。
func (a *Account) AddHistory(text string) {
	a.history = append(a.history, text)
}
