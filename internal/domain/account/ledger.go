package account

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrLedgerMisaligned = errors.New("movements and dates are not aligned")
)

// DeriveUserName builds the login identifier from the initials of each word
// of owner, lower-cased: "Jonas Schmedtmann" -> "js".
func DeriveUserName(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// DeriveUserNames sets UserName on every account. It runs once when the
// account set is built; later changes to Owner are not reflected.
func DeriveUserNames(accounts []*Account) {
	for _, acc := range accounts {
		acc.UserName = DeriveUserName(acc.Owner)
	}
}

// FindByUserName returns the first account whose UserName equals name.
func FindByUserName(accounts []*Account, name string) (*Account, error) {
	for _, acc := range accounts {
		if acc.UserName == name {
			return acc, nil
		}
	}
	return nil, ErrAccountNotFound
}

// AppendMovement is the only mutator of ledger history. The amount and its
// timestamp land at the same index.
func AppendMovement(acc *Account, amount decimal.Decimal, at time.Time) {
	acc.Movements = append(acc.Movements, amount)
	acc.MovementsDates = append(acc.MovementsDates, at)
}

// Validate checks the alignment invariant.
func Validate(acc *Account) error {
	if len(acc.Movements) != len(acc.MovementsDates) {
		return fmt.Errorf("%w: %s has %d movements and %d dates",
			ErrLedgerMisaligned, acc.Owner, len(acc.Movements), len(acc.MovementsDates))
	}
	return nil
}

// MovementOrder returns ledger indices in presentation order: ascending by
// amount when sorted, ledger order otherwise. The account is not modified.
func MovementOrder(acc *Account, sorted bool) []int {
	order := make([]int, len(acc.Movements))
	for i := range order {
		order[i] = i
	}
	if sorted {
		sort.SliceStable(order, func(i, j int) bool {
			return acc.Movements[order[i]].LessThan(acc.Movements[order[j]])
		})
	}
	return order
}

// HasMovementAtLeast reports whether any movement is >= threshold.
func HasMovementAtLeast(acc *Account, threshold decimal.Decimal) bool {
	for _, mov := range acc.Movements {
		if mov.GreaterThanOrEqual(threshold) {
			return true
		}
	}
	return false
}
