package audit

import (
	"time"

	"github.com/darisadam/bankist-server/internal/domain/session"
	"github.com/google/uuid"
)

const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// Entry is one line of the activity trail, derived from a session event.
type Entry struct {
	ID        int64     `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	SessionID uuid.UUID `json:"session_id"`
	UserName  string    `json:"user_name,omitempty"`
	// Counterparty is the other account of a transfer. The entry shows up in
	// its trail as well.
	Counterparty string                 `json:"counterparty,omitempty"`
	Action       string                 `json:"action"`
	Resource     string                 `json:"resource,omitempty"`
	Status       string                 `json:"status"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

func FromEvent(ev session.Event) Entry {
	e := Entry{
		EventID:      ev.ID,
		Timestamp:    ev.At,
		SessionID:    ev.SessionID,
		UserName:     ev.UserName,
		Counterparty: ev.Recipient,
		Action:       string(ev.Type),
		Status:       statusOf(ev.Type),
	}
	if ev.UserName != "" {
		e.Resource = "account:" + ev.UserName
	}

	meta := map[string]interface{}{}
	if ev.Command != "" {
		meta["command"] = ev.Command
	}
	if !ev.Amount.IsZero() {
		meta["amount"] = ev.Amount.String()
		meta["currency"] = ev.Currency
	}
	if ev.TaskID != nil {
		meta["task_id"] = ev.TaskID.String()
	}
	if ev.Reason != "" {
		meta["reason"] = ev.Reason
	}
	if len(meta) > 0 {
		e.Metadata = meta
	}

	return e
}

// Involves reports whether the entry belongs to the trail of userName.
func (e Entry) Involves(userName string) bool {
	return userName != "" && (e.UserName == userName || e.Counterparty == userName)
}

func statusOf(t session.EventType) string {
	switch t {
	case session.EventLoginFailed, session.EventCommandRejected:
		return StatusFailed
	case session.EventLoanCanceled:
		return StatusCanceled
	default:
		return StatusSuccess
	}
}
