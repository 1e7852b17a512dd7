package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupRepository(t *testing.T) AccountRepository {
	t.Helper()
	accounts, err := account.NewAccounts(account.DefaultSeeds(), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAccountRepository(accounts)
}

func TestFindByUserName_ReturnsCopy(t *testing.T) {
	repo := setupRepository(t)

	acc, err := repo.FindByUserName("js")
	require.NoError(t, err)
	assert.Equal(t, "Jonas Schmedtmann", acc.Owner)

	acc.Movements = nil

	again, err := repo.FindByUserName("js")
	require.NoError(t, err)
	assert.Len(t, again.Movements, 8)
}

func TestFindByUserName_NotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.FindByUserName("xx")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAppendMovement(t *testing.T) {
	repo := setupRepository(t)
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.AppendMovement("jd", decimal.NewFromInt(1000), at))

	acc, err := repo.FindByUserName("jd")
	require.NoError(t, err)
	assert.Len(t, acc.Movements, 9)
	assert.Len(t, acc.MovementsDates, 9)
	assert.True(t, acc.Movements[8].Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, at, acc.MovementsDates[8])

	err = repo.AppendMovement("nobody", decimal.NewFromInt(1), at)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestTransfer_WritesBothLegs(t *testing.T) {
	repo := setupRepository(t)
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("250.75")

	before, _ := repo.FindByUserName("js")
	beforeRecv, _ := repo.FindByUserName("jd")

	require.NoError(t, repo.Transfer("js", "jd", amount, at))

	after, _ := repo.FindByUserName("js")
	afterRecv, _ := repo.FindByUserName("jd")

	assert.True(t, account.Balance(before).Sub(amount).Equal(account.Balance(after)))
	assert.True(t, account.Balance(beforeRecv).Add(amount).Equal(account.Balance(afterRecv)))
	assert.Len(t, after.Movements, len(before.Movements)+1)
	assert.Len(t, afterRecv.Movements, len(beforeRecv.Movements)+1)
	assert.NoError(t, account.Validate(after))
	assert.NoError(t, account.Validate(afterRecv))
}

func TestTransfer_UnknownAccountWritesNothing(t *testing.T) {
	repo := setupRepository(t)
	at := time.Now()

	err := repo.Transfer("js", "zz", decimal.NewFromInt(10), at)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	acc, _ := repo.FindByUserName("js")
	assert.Len(t, acc.Movements, 8)
}

func TestRemove(t *testing.T) {
	repo := setupRepository(t)
	require.Equal(t, 2, repo.Count())

	require.NoError(t, repo.Remove("js"))

	assert.Equal(t, 1, repo.Count())
	_, err := repo.FindByUserName("js")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	list := repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, "jd", list[0].UserName)

	assert.ErrorIs(t, repo.Remove("js"), account.ErrAccountNotFound)
}

func TestConcurrentAppends_KeepAlignment(t *testing.T) {
	repo := setupRepository(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.AppendMovement("jd", decimal.NewFromInt(int64(i)), time.Now())
			_ = repo.List()
		}(i)
	}
	wg.Wait()

	acc, err := repo.FindByUserName("jd")
	require.NoError(t, err)
	assert.Len(t, acc.Movements, 58)
	assert.NoError(t, account.Validate(acc))
}
