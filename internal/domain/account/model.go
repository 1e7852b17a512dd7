package account

import (
	"strings"
	"time"

	"github.com/darisadam/bankist-server/internal/pkg/crypto"
	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementTypeDeposit    MovementType = "deposit"
	MovementTypeWithdrawal MovementType = "withdrawal"
)

// Account is a mock account: its movement history plus display metadata.
// Movements and MovementsDates are index aligned.
type Account struct {
	Owner          string            `json:"owner"`
	UserName       string            `json:"user_name"`
	Movements      []decimal.Decimal `json:"movements"`
	MovementsDates []time.Time       `json:"movements_dates"`
	InterestRate   decimal.Decimal   `json:"interest_rate"`
	PINHash        string            `json:"-"`
	Currency       string            `json:"currency"`
	Locale         string            `json:"locale"`
}

// CheckPIN compares pin with the account's PIN.
func (a *Account) CheckPIN(pin int) bool {
	return crypto.CheckPIN(pin, a.PINHash)
}

// FirstName returns the first word of Owner.
func (a *Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Clone returns a deep copy, safe to read after the repository lock is released.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Movements = append([]decimal.Decimal(nil), a.Movements...)
	cp.MovementsDates = append([]time.Time(nil), a.MovementsDates...)
	return &cp
}

// TypeOf classifies a movement. Zero counts as a deposit.
func TypeOf(amount decimal.Decimal) MovementType {
	if amount.IsNegative() {
		return MovementTypeWithdrawal
	}
	return MovementTypeDeposit
}
