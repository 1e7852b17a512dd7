package account

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveUserName(t *testing.T) {
	tests := []struct {
		owner string
		want  string
	}{
		{"Jonas Schmedtmann", "js"},
		{"Jessica Davis", "jd"},
		{"Steven Thomas Williams", "stw"},
		{"Sarah", "s"},
		{"  Ana   María  ", "am"},
		{"Émile Zola", "éz"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.owner, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveUserName(tt.owner))
		})
	}
}

func TestDeriveUserNames_IsNotRecomputed(t *testing.T) {
	accounts := []*Account{{Owner: "Jonas Schmedtmann"}, {Owner: "Jessica Davis"}}
	DeriveUserNames(accounts)

	accounts[0].Owner = "Someone Else"

	assert.Equal(t, "js", accounts[0].UserName)
	assert.Equal(t, "jd", accounts[1].UserName)
}

func TestFindByUserName(t *testing.T) {
	accounts := []*Account{{Owner: "Jonas Schmedtmann"}, {Owner: "Jessica Davis"}}
	DeriveUserNames(accounts)

	acc, err := FindByUserName(accounts, "jd")
	require.NoError(t, err)
	assert.Same(t, accounts[1], acc)

	acc, err = FindByUserName(accounts, "zz")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Nil(t, acc)

	_, err = FindByUserName(accounts, "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAppendMovement_KeepsAlignment(t *testing.T) {
	acc := &Account{Owner: "Jonas Schmedtmann"}
	require.NoError(t, Validate(acc))

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	amounts := []string{"200", "-50.25", "1300", "-0.01"}
	for i, a := range amounts {
		AppendMovement(acc, decimal.RequireFromString(a), at.Add(time.Duration(i)*time.Hour))

		require.NoError(t, Validate(acc))
		assert.Len(t, acc.Movements, i+1)
		assert.True(t, acc.Movements[i].Equal(decimal.RequireFromString(a)))
		assert.Equal(t, at.Add(time.Duration(i)*time.Hour), acc.MovementsDates[i])
	}
}

func TestAppendMovement_NeverReorders(t *testing.T) {
	acc := &Account{
		Movements:      amounts("5", "-3"),
		MovementsDates: []time.Time{time.Unix(1, 0), time.Unix(2, 0)},
	}

	AppendMovement(acc, decimal.NewFromInt(-100), time.Unix(3, 0))

	assert.Equal(t, []string{"5", "-3", "-100"}, stringsOf(acc.Movements))
	assert.Equal(t, time.Unix(1, 0), acc.MovementsDates[0])
}

func TestValidate_Misaligned(t *testing.T) {
	acc := &Account{Owner: "Broken", Movements: amounts("1", "2")}

	err := Validate(acc)
	assert.ErrorIs(t, err, ErrLedgerMisaligned)
	assert.Contains(t, err.Error(), "Broken has 2 movements and 0 dates")
}

func TestMovementOrder(t *testing.T) {
	acc := &Account{Movements: amounts("200", "-306.5", "25000", "-642.21", "79.97")}
	original := stringsOf(acc.Movements)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, MovementOrder(acc, false))
	assert.Equal(t, []int{3, 1, 4, 0, 2}, MovementOrder(acc, true))

	// Presentation order never touches the ledger.
	assert.Equal(t, original, stringsOf(acc.Movements))
}

func TestMovementOrder_StableForEqualAmounts(t *testing.T) {
	acc := &Account{Movements: amounts("10", "5", "10", "5")}
	assert.Equal(t, []int{1, 3, 0, 2}, MovementOrder(acc, true))
}

func TestHasMovementAtLeast(t *testing.T) {
	acc := &Account{Movements: amounts("200", "-306.5", "1300")}

	assert.True(t, HasMovementAtLeast(acc, decimal.NewFromInt(1300)))
	assert.True(t, HasMovementAtLeast(acc, decimal.NewFromInt(200)))
	assert.False(t, HasMovementAtLeast(acc, decimal.RequireFromString("1300.01")))
	assert.False(t, HasMovementAtLeast(&Account{}, decimal.Zero))
}

func stringsOf(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}
