// internal/ledger/ledger_test.go
//
// Ledger 模組的單元與整合測試。
// 覆蓋：開戶、登入、離線副本與寫回、轉帳協定（含手續費缺口）、
// 每次變更後的持久化，以及重啟後的狀態還原。
// 測試皆使用 t.TempDir() 下的獨立資料檔，不汙染本機環境。
package ledger

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"atmbank/internal/storage"
)

// newTestLedger 建立掛在暫存資料檔上的 Ledger。
func newTestLedger(t *testing.T) (*Ledger, *storage.Store) {
	t.Helper()
	store := storage.NewStore(filepath.Join(t.TempDir(), "accounts.json"))
	l, err := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	return l, store
}

// auth 為小工具：登入並於失敗時立即中止測試。
func auth(t *testing.T, l *Ledger, number, pin string) *Account {
	t.Helper()
	a, err := l.Authenticate(number, pin)
	if err != nil {
		t.Fatalf("Authenticate(%s) err=%v", number, err)
	}
	return a
}

// TestAddAccount 驗證開戶與帳號唯一性。
func TestAddAccount(t *testing.T) {
	l, store := newTestLedger(t)

	if err := l.AddAccount("A", "1111"); err != nil {
		t.Fatal(err)
	}
	// ❌ 帳號重複
	if err := l.AddAccount("A", "9999"); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("want ErrAccountExists, got %v", err)
	}

	// 開戶後立即持久化：餘額 0、空歷史
	table, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := table["A"]
	if !ok || rec.PIN != "1111" || rec.Balance != 0 || len(rec.History) != 0 {
		t.Fatalf("persisted record unexpected: %+v", rec)
	}
}

// TestAuthenticate 驗證登入：密碼需完全相符；
// 帳號不存在與密碼錯誤皆回傳同一種失敗，且不回傳帳戶。
func TestAuthenticate(t *testing.T) {
	l, _ := newTestLedger(t)
	_ = l.AddAccount("A", "1111")

	if a, err := l.Authenticate("A", "2222"); !errors.Is(err, ErrAuthFailed) || a != nil {
		t.Fatalf("wrong pin: want ErrAuthFailed and nil account, got %v %v", a, err)
	}
	if a, err := l.Authenticate("nobody", "1111"); !errors.Is(err, ErrAuthFailed) || a != nil {
		t.Fatalf("unknown number: want ErrAuthFailed and nil account, got %v %v", a, err)
	}

	a := auth(t, l, "A", "1111")
	if a.Number() != "A" || a.Balance() != 0 {
		t.Fatalf("account unexpected: number=%s balance=%d", a.Number(), a.Balance())
	}
}

// TestDetachedCopy 驗證登入取得的是離線副本：
// 副本上的變更在 UpdateAccount 之前不影響權威表。
func TestDetachedCopy(t *testing.T) {
	l, _ := newTestLedger(t)
	_ = l.AddAccount("A", "1111")

	a := auth(t, l, "A", "1111")
	a.Deposit(500)

	// 尚未寫回 → 重新登入看到的仍是 0
	if fresh := auth(t, l, "A", "1111"); fresh.Balance() != 0 {
		t.Fatalf("stored balance changed before write-back: %d", fresh.Balance())
	}

	if err := l.UpdateAccount(a); err != nil {
		t.Fatal(err)
	}
	if fresh := auth(t, l, "A", "1111"); fresh.Balance() != 500 {
		t.Fatalf("stored balance after write-back=%d want=500", fresh.Balance())
	}
}

// TestUpdateAccountUnknown 驗證寫回不存在的帳戶會回報錯誤。
func TestUpdateAccountUnknown(t *testing.T) {
	l, _ := newTestLedger(t)
	ghost := NewAccount("X", "0000", 0, nil, FlatWithdrawal())
	if err := l.UpdateAccount(ghost); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

// TestScenario 完整走一次標準情境：
// 開戶 A/1111 → 存 100000 → 提 5000（扣 7000）→
// 轉 10000 給不存在的 B（失敗、無變更）→ 轉 10000 給 C（A 扣 12000、C 收 10000）。
func TestScenario(t *testing.T) {
	l, store := newTestLedger(t)
	_ = l.AddAccount("A", "1111")

	a := auth(t, l, "A", "1111")
	a.Deposit(100000)
	if err := l.UpdateAccount(a); err != nil {
		t.Fatal(err)
	}
	if a.Balance() != 100000 {
		t.Fatalf("balance=%d want=100000", a.Balance())
	}
	if h := a.History(); len(h) != 1 || h[0] != "Deposit 100000" {
		t.Fatalf("history unexpected: %v", h)
	}

	// 提款 5000 → 實扣 5000 + 2000
	if !a.Withdraw(5000) {
		t.Fatal("withdraw should succeed")
	}
	if err := l.UpdateAccount(a); err != nil {
		t.Fatal(err)
	}
	if a.Balance() != 93000 {
		t.Fatalf("balance=%d want=93000", a.Balance())
	}
	if h := a.History(); len(h) != 2 || h[1] != "Withdraw 5000 (admin fee 2000)" {
		t.Fatalf("history unexpected: %v", h)
	}

	// ❌ 目標不存在 → 失敗且無任何變更
	if err := l.Transfer(a, "B", 10000); !errors.Is(err, ErrDestNotFound) {
		t.Fatalf("want ErrDestNotFound, got %v", err)
	}
	if a.Balance() != 93000 || len(a.History()) != 2 {
		t.Fatalf("failed transfer must not change state: balance=%d history=%v",
			a.Balance(), a.History())
	}

	// ✅ 轉給 C：來源走收費提款（扣 12000），收款側直接入帳、不收費
	_ = l.AddAccount("C", "2222")
	if err := l.Transfer(a, "C", 10000); err != nil {
		t.Fatal(err)
	}
	if a.Balance() != 81000 {
		t.Fatalf("source balance=%d want=81000", a.Balance())
	}
	h := a.History()
	if len(h) != 4 || h[2] != "Withdraw 10000 (admin fee 2000)" || h[3] != "Transfer 10000 to C" {
		t.Fatalf("source history unexpected: %v", h)
	}

	c := auth(t, l, "C", "2222")
	if c.Balance() != 10000 {
		t.Fatalf("dest balance=%d want=10000", c.Balance())
	}
	if ch := c.History(); len(ch) != 1 || ch[0] != "Received 10000 from A" {
		t.Fatalf("dest history unexpected: %v", ch)
	}

	// 重啟：由同一個資料檔重建 Ledger，狀態需完全一致
	l2, err := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if got := auth(t, l2, "A", "1111").Balance(); got != 81000 {
		t.Fatalf("restored A balance=%d want=81000", got)
	}
	if got := auth(t, l2, "C", "2222"); got.Balance() != 10000 || got.History()[0] != "Received 10000 from A" {
		t.Fatalf("restored C unexpected: balance=%d history=%v", got.Balance(), got.History())
	}
}

// TestTransferFeeGap 驗證檢核缺口的修正：
// 餘額足以支付轉帳金額、但不足以支付「金額＋管理費」時，
// 轉帳必須回報 ErrInsufficient，且兩側狀態（含持久化檔）完全不變。
func TestTransferFeeGap(t *testing.T) {
	l, store := newTestLedger(t)
	_ = l.AddAccount("A", "1111")
	_ = l.AddAccount("B", "2222")

	a := auth(t, l, "A", "1111")
	a.Deposit(10500)
	if err := l.UpdateAccount(a); err != nil {
		t.Fatal(err)
	}

	// 10000 <= 10500 通過直接比較，但 10000 + 2000 > 10500
	if err := l.Transfer(a, "B", 10000); !errors.Is(err, ErrInsufficient) {
		t.Fatalf("want ErrInsufficient, got %v", err)
	}
	if a.Balance() != 10500 {
		t.Fatalf("source balance changed: %d", a.Balance())
	}
	table, _ := store.Load()
	if table["A"].Balance != 10500 || table["B"].Balance != 0 {
		t.Fatalf("persisted balances changed: A=%d B=%d",
			table["A"].Balance, table["B"].Balance)
	}
}

// TestTransferInsufficient 驗證金額直接超過餘額時的拒絕。
func TestTransferInsufficient(t *testing.T) {
	l, _ := newTestLedger(t)
	_ = l.AddAccount("A", "1111")
	_ = l.AddAccount("B", "2222")

	a := auth(t, l, "A", "1111")
	if err := l.Transfer(a, "B", 1); !errors.Is(err, ErrInsufficient) {
		t.Fatalf("want ErrInsufficient, got %v", err)
	}
}

// TestTransferSameAccount 驗證不得轉帳給自己：
// 離線副本模型下自我轉帳會在寫回時覆寫入帳結果，因此一律拒絕。
func TestTransferSameAccount(t *testing.T) {
	l, _ := newTestLedger(t)
	_ = l.AddAccount("A", "1111")

	a := auth(t, l, "A", "1111")
	a.Deposit(50000)
	_ = l.UpdateAccount(a)

	if err := l.Transfer(a, "A", 1000); !errors.Is(err, ErrSameAccount) {
		t.Fatalf("want ErrSameAccount, got %v", err)
	}
}

// TestTransferAllOrNothing 驗證成功轉帳的兩側變更會一起出現在持久化檔中。
// 已知限制：程序若恰於扣款與入帳之間被強制中止，最後寫出的檔案
// 可能兩側皆未反映（整批遺失），不存在只反映單側的中間檔。
// 此處僅驗證正常流程下的全有行為。
func TestTransferAllOrNothing(t *testing.T) {
	l, store := newTestLedger(t)
	_ = l.AddAccount("A", "1111")
	_ = l.AddAccount("B", "2222")

	a := auth(t, l, "A", "1111")
	a.Deposit(50000)
	_ = l.UpdateAccount(a)

	if err := l.Transfer(a, "B", 20000); err != nil {
		t.Fatal(err)
	}

	table, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	// 來源扣 20000 + 2000，目標收 20000，需同時成立
	if table["A"].Balance != 28000 {
		t.Fatalf("persisted A=%d want=28000", table["A"].Balance)
	}
	if table["B"].Balance != 20000 {
		t.Fatalf("persisted B=%d want=20000", table["B"].Balance)
	}
}
