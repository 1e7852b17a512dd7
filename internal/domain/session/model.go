package session

import (
	"time"

	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State string
type EventType string

const (
	StateLoggedOut State = "logged_out"
	StateLoggedIn  State = "logged_in"

	EventLoggedIn          EventType = "logged_in"
	EventLoginFailed       EventType = "login_failed"
	EventTransferCompleted EventType = "transfer_completed"
	EventLoanRequested     EventType = "loan_requested"
	EventLoanGranted       EventType = "loan_granted"
	EventLoanCanceled      EventType = "loan_canceled"
	EventAccountClosed     EventType = "account_closed"
	EventSessionExpired    EventType = "session_expired"
	EventSortToggled       EventType = "sort_toggled"
	EventCommandRejected   EventType = "command_rejected"
)

// Command names used in events and metrics.
const (
	CommandLogin    = "login"
	CommandTransfer = "transfer"
	CommandLoan     = "loan"
	CommandClose    = "close"
	CommandSort     = "sort"
)

// Event describes one change of session or ledger state.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      EventType       `json:"type"`
	Command   string          `json:"command,omitempty"`
	SessionID uuid.UUID       `json:"session_id"`
	UserName  string          `json:"user_name,omitempty"`
	Recipient string          `json:"recipient,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency,omitempty"`
	TaskID    *uuid.UUID      `json:"task_id,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	At        time.Time       `json:"at"`
}

// Snapshot is a point-in-time copy of the session. Account is a deep copy
// and nil when logged out.
type Snapshot struct {
	State            State            `json:"state"`
	SessionID        uuid.UUID        `json:"session_id"`
	Account          *account.Account `json:"-"`
	RemainingSeconds int              `json:"remaining_seconds"`
	Sorted           bool             `json:"sorted"`
	PendingLoans     int              `json:"pending_loans"`
	At               time.Time        `json:"at"`
}

func (s *Snapshot) LoggedIn() bool {
	return s.State == StateLoggedIn
}

// Outcome is the result of a successful command.
type Outcome struct {
	Event    Event
	Snapshot *Snapshot
}
