package handlers

import (
	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/darisadam/bankist-server/internal/domain/session"
	"github.com/darisadam/bankist-server/internal/pkg/format"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementRow is one rendered ledger entry. Index is the 1-based ledger
// position and does not change when the list is sorted.
type MovementRow struct {
	Index  int                  `json:"index"`
	Type   account.MovementType `json:"type"`
	Date   string               `json:"date"`
	Value  string               `json:"value"`
	Amount decimal.Decimal      `json:"amount"`
}

type SummaryView struct {
	In       string `json:"in"`
	Out      string `json:"out"`
	Interest string `json:"interest"`
}

type DashboardView struct {
	Welcome       string          `json:"welcome"`
	Owner         string          `json:"owner"`
	UserName      string          `json:"username"`
	Date          string          `json:"date"`
	Balance       string          `json:"balance"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	Currency      string          `json:"currency"`
	Locale        string          `json:"locale"`
	Summary       SummaryView     `json:"summary"`
	Movements     []MovementRow   `json:"movements"`
	Timer         string          `json:"timer"`
	Sorted        bool            `json:"sorted"`
	PendingLoans  int             `json:"pending_loans"`
}

type SessionView struct {
	State            session.State `json:"state"`
	SessionID        *uuid.UUID    `json:"session_id,omitempty"`
	Welcome          string        `json:"welcome"`
	Timer            string        `json:"timer,omitempty"`
	RemainingSeconds int           `json:"remaining_seconds"`
}

func NewSessionView(snap *session.Snapshot) *SessionView {
	if snap == nil || !snap.LoggedIn() || snap.Account == nil {
		return &SessionView{State: session.StateLoggedOut, Welcome: format.LoggedOutMessage}
	}

	id := snap.SessionID
	return &SessionView{
		State:            snap.State,
		SessionID:        &id,
		Welcome:          format.Greeting(snap.Account.Owner),
		Timer:            format.Timer(snap.RemainingSeconds),
		RemainingSeconds: snap.RemainingSeconds,
	}
}

// NewDashboardView renders a logged-in snapshot. It returns nil when there
// is nothing to show.
func NewDashboardView(snap *session.Snapshot) *DashboardView {
	if snap == nil || !snap.LoggedIn() || snap.Account == nil {
		return nil
	}

	acc := snap.Account
	money := func(v decimal.Decimal) string {
		return format.Currency(v, acc.Locale, acc.Currency)
	}
	summary := account.Summarize(acc)

	order := account.MovementOrder(acc, snap.Sorted)
	rows := make([]MovementRow, 0, len(order))
	for _, i := range order {
		mov := acc.Movements[i]
		rows = append(rows, MovementRow{
			Index:  i + 1,
			Type:   account.TypeOf(mov),
			Date:   format.MovementDate(acc.MovementsDates[i], snap.At, acc.Locale),
			Value:  money(mov),
			Amount: mov,
		})
	}

	return &DashboardView{
		Welcome:       format.Greeting(acc.Owner),
		Owner:         acc.Owner,
		UserName:      acc.UserName,
		Date:          format.SessionDate(snap.At, acc.Locale),
		Balance:       money(summary.Balance),
		BalanceAmount: summary.Balance,
		Currency:      acc.Currency,
		Locale:        acc.Locale,
		Summary: SummaryView{
			In:       money(summary.IncomeWithInterest),
			Out:      money(summary.Expense),
			Interest: money(summary.Interest),
		},
		Movements:    rows,
		Timer:        format.Timer(snap.RemainingSeconds),
		Sorted:       snap.Sorted,
		PendingLoans: snap.PendingLoans,
	}
}
