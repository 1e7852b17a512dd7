package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/shopspring/decimal"
)

// AccountRepository holds the active account set. Reads return deep copies.
type AccountRepository interface {
	List() []*account.Account
	FindByUserName(userName string) (*account.Account, error)
	AppendMovement(userName string, amount decimal.Decimal, at time.Time) error
	Transfer(from, to string, amount decimal.Decimal, at time.Time) error
	Remove(userName string) error
	Count() int
}

type accountRepository struct {
	mu       sync.RWMutex
	accounts []*account.Account
}

func NewAccountRepository(accounts []*account.Account) AccountRepository {
	return &accountRepository{accounts: accounts}
}

func (r *accountRepository) List() []*account.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*account.Account, len(r.accounts))
	for i, acc := range r.accounts {
		out[i] = acc.Clone()
	}
	return out
}

func (r *accountRepository) FindByUserName(userName string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, err := account.FindByUserName(r.accounts, userName)
	if err != nil {
		return nil, err
	}
	return acc.Clone(), nil
}

func (r *accountRepository) AppendMovement(userName string, amount decimal.Decimal, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, err := account.FindByUserName(r.accounts, userName)
	if err != nil {
		return fmt.Errorf("failed to append movement: %w", err)
	}

	account.AppendMovement(acc, amount, at)
	return nil
}

// Transfer appends -amount to from and +amount to to under one lock.
// Either both legs are written or neither.
func (r *accountRepository) Transfer(from, to string, amount decimal.Decimal, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sender, err := account.FindByUserName(r.accounts, from)
	if err != nil {
		return fmt.Errorf("source account: %w", err)
	}
	receiver, err := account.FindByUserName(r.accounts, to)
	if err != nil {
		return fmt.Errorf("destination account: %w", err)
	}

	account.AppendMovement(sender, amount.Neg(), at)
	account.AppendMovement(receiver, amount, at)
	return nil
}

func (r *accountRepository) Remove(userName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, acc := range r.accounts {
		if acc.UserName == userName {
			r.accounts = append(r.accounts[:i:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("failed to close account: %w", account.ErrAccountNotFound)
}

func (r *accountRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
