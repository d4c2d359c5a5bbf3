// internal/storage/store.go
//
// 提供帳戶表 (Table) 的 JSON 序列化與反序列化實作。
// 採「原子寫入」策略 (atomic write)：先寫入 .tmp 檔，再以 rename() 取代原檔，
// 避免中途寫入失敗導致檔案損壞。
//
// 設計理念：
// - Store 以建構時注入的明確路徑運作，不使用任何程序層級全域狀態。
// - 檔案不存在視為「空表」而非錯誤（首次啟動的正常情境）。
// - 未來若要改成 DB backend，只需替換本層實作。
package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Store 負責單一檔案的整表載入與保存。
type Store struct {
	path string
}

// NewStore 以指定檔案路徑建立 Store。
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path 回傳此 Store 對應的檔案路徑。
func (s *Store) Path() string { return s.path }

// Load 讀取整個帳戶表。
// 檔案不存在 → 回傳空表（非錯誤）；格式錯誤或讀取失敗 → 回傳錯誤給上層。
func (s *Store) Load() (Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var t Table
	if err := json.NewDecoder(f).Decode(&t); err != nil {
		return nil, err
	}
	return t, nil
}

// Save 將整個帳戶表序列化為 JSON 檔案，並採原子方式寫入。
// 流程：寫入 path+".tmp" 暫存檔 → 寫入完成後以 os.Rename() 取代正式檔案。
// 寫入中斷（停電或程式崩潰）時原檔不會損壞。
func (s *Store) Save(t Table) error {
	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	// 使用縮排格式輸出，方便人工檢視或除錯
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	// 原子替換
	return os.Rename(tmp, s.path)
}
