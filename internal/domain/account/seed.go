package account

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/darisadam/bankist-server/internal/pkg/crypto"
	"github.com/shopspring/decimal"
)

// Seed is the static description of a mock account.
type Seed struct {
	Owner          string            `json:"owner"`
	Movements      []decimal.Decimal `json:"movements"`
	MovementsDates []time.Time       `json:"movements_dates"`
	InterestRate   decimal.Decimal   `json:"interest_rate"`
	PIN            int               `json:"pin"`
	Currency       string            `json:"currency"`
	Locale         string            `json:"locale"`
}

// DefaultSeeds returns the two demo accounts.
func DefaultSeeds() []Seed {
	return []Seed{
		{
			Owner:        "Jonas Schmedtmann",
			Movements:    amounts("200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300"),
			InterestRate: decimal.RequireFromString("1.2"),
			PIN:          1111,
			MovementsDates: dates(
				"2019-11-18T21:31:17.178Z",
				"2019-12-23T07:42:02.383Z",
				"2020-01-28T09:15:04.904Z",
				"2020-04-01T10:17:24.185Z",
				"2020-05-08T14:11:59.604Z",
				"2023-01-14T17:01:17.194Z",
				"2023-01-16T22:36:17.929Z",
				"2023-01-17T12:02:00.000Z",
			),
			Currency: "EUR",
			Locale:   "pt-PT",
		},
		{
			Owner:        "Jessica Davis",
			Movements:    amounts("5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30"),
			InterestRate: decimal.RequireFromString("1.5"),
			PIN:          2222,
			MovementsDates: dates(
				"2019-11-01T13:15:33.035Z",
				"2019-11-30T09:48:16.867Z",
				"2019-12-25T06:04:23.907Z",
				"2020-01-25T14:18:46.235Z",
				"2020-02-05T16:33:06.386Z",
				"2020-04-10T14:43:26.374Z",
				"2020-06-25T18:49:59.371Z",
				"2020-07-26T12:01:20.894Z",
			),
			Currency: "USD",
			Locale:   "en-US",
		},
	}
}

// LoadSeeds reads a JSON array of seeds from path.
func LoadSeeds(path string) ([]Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []Seed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return seeds, nil
}

// NewAccounts builds the account set from seeds: PINs are hashed with the
// given bcrypt cost and user names are derived once.
func NewAccounts(seeds []Seed, pinCost int) ([]*Account, error) {
	accounts := make([]*Account, 0, len(seeds))
	for _, s := range seeds {
		hash, err := crypto.HashPIN(s.PIN, pinCost)
		if err != nil {
			return nil, err
		}

		acc := &Account{
			Owner:          s.Owner,
			Movements:      append([]decimal.Decimal(nil), s.Movements...),
			MovementsDates: append([]time.Time(nil), s.MovementsDates...),
			InterestRate:   s.InterestRate,
			PINHash:        hash,
			Currency:       s.Currency,
			Locale:         s.Locale,
		}
		if err := Validate(acc); err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	DeriveUserNames(accounts)
	return accounts, nil
}

func amounts(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func dates(values ...string) []time.Time {
	out := make([]time.Time, len(values))
	for i, v := range values {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			panic(fmt.Sprintf("account: bad seed date %q: %v", v, err))
		}
		out[i] = t
	}
	return out
}
