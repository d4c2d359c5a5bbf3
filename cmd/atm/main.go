// cmd/atm/main.go

// 互動式終端 ATM：直接掛上本機帳戶總帳（與 server 共用同一個資料檔格式）。
// 流程對應實體 ATM：登入 → 主選單（查餘額、存款、提款、轉帳、紀錄）→ 登出。
// 所有金額輸入先經解析與正值驗證，才會呼叫核心操作。

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"atmbank/internal/config"
	"atmbank/internal/ledger"
	"atmbank/internal/storage"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	title   = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

var errBadAmount = errors.New("amount must be a positive integer")

type app struct {
	bank   *ledger.Ledger
	reader *bufio.Reader
}

func main() {
	if err := run(); err != nil {
		failure.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 互動介面不輸出日誌
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := config.Load(quiet)
	if err != nil {
		return err
	}
	bank, err := ledger.New(storage.NewStore(cfg.DataFile), quiet)
	if err != nil {
		return err
	}

	a := &app{bank: bank, reader: bufio.NewReader(os.Stdin)}
	return a.loginScreen()
}

// loginScreen 為未登入狀態的主迴圈。
func (a *app) loginScreen() error {
	for {
		title.Println("\n=== ATM ===")
		fmt.Println("1) Login")
		fmt.Println("2) Register")
		fmt.Println("3) Exit")

		switch a.readLine("> ") {
		case "1":
			number := a.readLine("Account number: ")
			pin := a.readPIN("PIN: ")
			acc, err := a.bank.Authenticate(number, pin)
			if err != nil {
				failure.Println("login failed")
				continue
			}
			a.menu(acc)
		case "2":
			number := a.readLine("Account number: ")
			pin := a.readPIN("PIN: ")
			if err := a.bank.AddAccount(number, pin); err != nil {
				failure.Printf("register failed: %v\n", err)
				continue
			}
			success.Println("account created")
		case "3":
			return nil
		default:
			failure.Println("unknown option")
		}
	}
}

// menu 為已登入會話的主選單；acc 為離線副本，
// 每次存提款後立即透過 UpdateAccount 寫回。
func (a *app) menu(acc *ledger.Account) {
	for {
		title.Printf("\n=== Account %s ===\n", acc.Number())
		fmt.Println("1) Balance")
		fmt.Println("2) Deposit")
		fmt.Println("3) Withdraw")
		fmt.Println("4) Transfer")
		fmt.Println("5) History")
		fmt.Println("6) Logout")

		switch a.readLine("> ") {
		case "1":
			fmt.Printf("Balance: %d\n", acc.Balance())
		case "2":
			amt, err := a.readAmount("Amount: ")
			if err != nil {
				failure.Println(err)
				continue
			}
			acc.Deposit(amt)
			if err := a.bank.UpdateAccount(acc); err != nil {
				failure.Printf("save failed: %v\n", err)
				continue
			}
			success.Printf("deposited %d, balance %d\n", amt, acc.Balance())
		case "3":
			amt, err := a.readAmount("Amount: ")
			if err != nil {
				failure.Println(err)
				continue
			}
			if !acc.Withdraw(amt) {
				failure.Printf("insufficient balance (admin fee %d applies)\n", ledger.AdminFee)
				continue
			}
			if err := a.bank.UpdateAccount(acc); err != nil {
				failure.Printf("save failed: %v\n", err)
				continue
			}
			success.Printf("withdrew %d, balance %d\n", amt, acc.Balance())
		case "4":
			to := a.readLine("Destination account: ")
			amt, err := a.readAmount("Amount: ")
			if err != nil {
				failure.Println(err)
				continue
			}
			if err := a.bank.Transfer(acc, to, amt); err != nil {
				failure.Printf("transfer failed: %v\n", err)
				continue
			}
			success.Printf("transferred %d to %s, balance %d\n", amt, to, acc.Balance())
		case "5":
			entries := acc.History()
			if len(entries) == 0 {
				fmt.Println("(no transactions)")
				continue
			}
			for i, e := range entries {
				fmt.Printf("%3d. %s\n", i+1, e)
			}
		case "6":
			return
		default:
			failure.Println("unknown option")
		}
	}
}

func (a *app) readLine(prompt string) string {
	fmt.Print(prompt)
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// readPIN 在終端機下隱藏輸入；stdin 非終端機時退回一般讀取。
func (a *app) readPIN(prompt string) string {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// readAmount 解析並驗證金額：必須為正整數，否則回傳 errBadAmount。
// 核心操作不做此驗證，由介面層負責。
func (a *app) readAmount(prompt string) (int64, error) {
	raw := a.readLine(prompt)
	amt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || amt <= 0 {
		return 0, errBadAmount
	}
	return amt, nil
}
