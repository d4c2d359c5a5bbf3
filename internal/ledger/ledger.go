// internal/ledger/ledger.go
//
// Ledger 為聚合根 (Aggregate Root)：持有全系統帳戶的權威表，
// 負責開戶、登入、寫回與跨帳戶轉帳，並將持久化委派給注入的 storage.Store。
// 採單一互斥鎖序列化所有讀寫，確保跨帳戶操作原子完成。
//
// 持久化契約：每次成功的變更操作（開戶、寫回、轉帳）後，
// 立即把整個帳戶表寫入檔案——不做批次、不寫 WAL。
// 檔案層錯誤不在此層攔截，直接回傳給呼叫端。
package ledger

import (
	"fmt"
	"log/slog"
	"sync"

	"atmbank/internal/storage"
)

// record 為帳戶在總帳表中的權威狀態（非離線副本）。
type record struct {
	pin     string
	balance int64
	history []string
}

// Ledger 管理帳號 → 帳戶紀錄的權威對應表。
// - mu：序列化所有讀寫。
// - store：建構時注入的持久化層。
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*record
	store    *storage.Store
	logger   *slog.Logger
}

// New 建立 Ledger 並從 store 載入既有狀態。
// 檔案不存在時以空表啟動；讀取或解析失敗則回傳錯誤。
func New(store *storage.Store, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	table, err := store.Load()
	if err != nil {
		return nil, err
	}
	accounts := make(map[string]*record, len(table))
	for number, rec := range table {
		accounts[number] = &record{pin: rec.PIN, balance: rec.Balance, history: rec.History}
	}
	logger.Info("ledger loaded", "accounts", len(accounts), "file", store.Path())
	return &Ledger{accounts: accounts, store: store, logger: logger}, nil
}

// save 於臨界區內將目前帳戶表整表寫入檔案。
// 歷史切片逐一拷貝，確保寫出的表與內部狀態彼此獨立。
func (l *Ledger) save() error {
	t := make(storage.Table, len(l.accounts))
	for number, r := range l.accounts {
		h := make([]string, len(r.history))
		copy(h, r.history)
		t[number] = storage.Record{PIN: r.pin, Balance: r.balance, History: h}
	}
	return l.store.Save(t)
}

// AddAccount 開戶：帳號已存在回傳 ErrAccountExists，
// 否則以餘額 0、空歷史建立紀錄並立即持久化。
func (l *Ledger) AddAccount(number, pin string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[number]; ok {
		return ErrAccountExists
	}
	l.accounts[number] = &record{pin: pin, history: []string{}}
	if err := l.save(); err != nil {
		return err
	}
	l.logger.Info("account created", "number", number)
	return nil
}

// Authenticate 登入：帳號存在且密碼完全相符時，
// 回傳以儲存狀態填充的離線帳戶副本（收費提款策略）；否則回傳 ErrAuthFailed。
// 副本上的變更在 UpdateAccount 寫回前不影響權威表。
func (l *Ledger) Authenticate(number, pin string) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.accounts[number]
	if !ok || r.pin != pin {
		l.logger.Warn("authentication rejected", "number", number)
		return nil, ErrAuthFailed
	}
	h := make([]string, len(r.history))
	copy(h, r.history)
	return NewAccount(number, pin, r.balance, h, FeeWithdrawal(AdminFee)), nil
}

// UpdateAccount 寫回：把副本目前的餘額與歷史覆寫進權威表後整表持久化。
// 對離線副本做過 Deposit/Withdraw 之後必須呼叫本方法，變更才會生效。
func (l *Ledger) UpdateAccount(a *Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.updateLocked(a)
}

func (l *Ledger) updateLocked(a *Account) error {
	r, ok := l.accounts[a.Number()]
	if !ok {
		return ErrAccountNotFound
	}
	r.balance = a.Balance()
	r.history = a.History()
	if err := l.save(); err != nil {
		return err
	}
	l.logger.Info("account updated", "number", a.Number(), "balance", r.balance)
	return nil
}

// Transfer 為唯一的跨帳戶操作，依序：
//  1. 檢核目標帳號存在（不存在 → ErrDestNotFound，無任何變更）。
//  2. 以來源目前餘額做直接比較檢核（不足 → ErrInsufficient，無任何變更）。
//  3. 透過來源帳戶的提款策略扣款（手續費在此一併收取），
//     並於來源追加「轉出」註記。
//  4. 直接把目標紀錄的餘額加上轉帳金額（收款側不經存款策略、不收費），
//     並追加「收到」註記。
//  5. 寫回來源副本（含持久化），再整表持久化一次。
//
// 步驟 2 的檢核不含手續費，因此可能通過後仍在步驟 3 因
// 「金額 + 管理費 > 餘額」而失敗；此時回傳 ErrInsufficient 且狀態完全不變，
// 不會出現靜默的假成功。
func (l *Ledger) Transfer(from *Account, toNumber string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if toNumber == from.Number() {
		return ErrSameAccount
	}
	to, ok := l.accounts[toNumber]
	if !ok {
		return ErrDestNotFound
	}
	if amount > from.Balance() {
		return ErrInsufficient
	}
	if !from.Withdraw(amount) {
		// 餘額夠付金額但不夠付手續費
		return ErrInsufficient
	}
	from.AddHistory(fmt.Sprintf("Transfer %d to %s", amount, toNumber))

	to.balance += amount
	to.history = append(to.history, fmt.Sprintf("Received %d from %s", amount, from.Number()))

	if err := l.updateLocked(from); err != nil {
		return err
	}
	if err := l.save(); err != nil {
		return err
	}
	l.logger.Info("transfer completed", "from", from.Number(), "to", toNumber, "amount", amount)
	return nil
}

// Flush 將目前帳戶表整表持久化。
// 每次變更後本就會自動保存，此方法供程式結束前做最後一次保險寫入。
func (l *Ledger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save()
}
