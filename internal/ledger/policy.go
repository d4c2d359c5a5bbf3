// internal/ledger/policy.go
//
// 提款策略 (WithdrawPolicy) 以「帶值標籤」表達，而非介面多型：
// Flat 只扣提款金額；FeeBased 額外收取固定管理費。
// 策略於帳戶建構時選定，之後不可變。
package ledger

import "fmt"

// AdminFee 為固定管理費（最小貨幣單位），不可由設定調整。
const AdminFee int64 = 2000

// WithdrawPolicy 描述一種提款規則。Fee 為 0 即為 Flat 變體。
type WithdrawPolicy struct {
	Fee int64
}

// FlatWithdrawal 回傳不收費的基本提款策略。
func FlatWithdrawal() WithdrawPolicy { return WithdrawPolicy{} }

// FeeWithdrawal 回傳收取固定管理費的提款策略。
// 本系統所有實際帳戶皆使用 FeeWithdrawal(AdminFee)。
func FeeWithdrawal(fee int64) WithdrawPolicy { return WithdrawPolicy{Fee: fee} }

// entry 產生該策略對應的提款歷史描述；收費變體需分別記錄金額與管理費。
func (p WithdrawPolicy) entry(amount int64) string {
	if p.Fee > 0 {
		return fmt.Sprintf("Withdraw %d (admin fee %d)", amount, p.Fee)
	}
	return fmt.Sprintf("Withdraw %d", amount)
}
