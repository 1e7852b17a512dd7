package account

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// Interest earned on a single deposit only counts when it exceeds this.
	minInterestEarned = decimal.NewFromInt(1)
)

// Summary holds the derived figures of an account. IncomeWithInterest is
// the figure shown as income.
type Summary struct {
	Balance            decimal.Decimal `json:"balance"`
	Income             decimal.Decimal `json:"income"`
	Expense            decimal.Decimal `json:"expense"`
	Interest           decimal.Decimal `json:"interest"`
	IncomeWithInterest decimal.Decimal `json:"income_with_interest"`
}

// Balance is the sum of all movements.
func Balance(acc *Account) decimal.Decimal {
	return decimal.Sum(decimal.Zero, acc.Movements...)
}

// TotalIncome is the sum of deposits.
func TotalIncome(acc *Account) decimal.Decimal {
	total := decimal.Zero
	for _, mov := range acc.Movements {
		if mov.IsPositive() {
			total = total.Add(mov)
		}
	}
	return total
}

// TotalExpense is the absolute value of the sum of withdrawals.
func TotalExpense(acc *Account) decimal.Decimal {
	total := decimal.Zero
	for _, mov := range acc.Movements {
		if mov.IsNegative() {
			total = total.Add(mov)
		}
	}
	return total.Abs()
}

// TotalInterest sums deposit*rate/100 over deposits, skipping every term
// that is <= 1.
func TotalInterest(acc *Account) decimal.Decimal {
	total := decimal.Zero
	for _, mov := range acc.Movements {
		if !mov.IsPositive() {
			continue
		}
		interest := mov.Mul(acc.InterestRate).Div(hundred)
		if interest.GreaterThan(minInterestEarned) {
			total = total.Add(interest)
		}
	}
	return total
}

func Summarize(acc *Account) Summary {
	income := TotalIncome(acc)
	interest := TotalInterest(acc)

	return Summary{
		Balance:            Balance(acc),
		Income:             income,
		Expense:            TotalExpense(acc),
		Interest:           interest,
		IncomeWithInterest: income.Add(interest),
	}
}
