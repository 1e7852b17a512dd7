package service

import (
	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/darisadam/bankist-server/internal/domain/audit"
	"github.com/darisadam/bankist-server/internal/domain/session"
	"github.com/darisadam/bankist-server/internal/pkg/logger"
	"github.com/darisadam/bankist-server/internal/pkg/metrics"
	"github.com/darisadam/bankist-server/internal/repository"
	"go.uber.org/zap"
)

// LoggingListener writes every session event to the application logger.
func LoggingListener() Listener {
	return func(ev session.Event) {
		fields := []zap.Field{
			zap.String("event_id", ev.ID.String()),
			zap.String("event", string(ev.Type)),
			zap.String("session_id", ev.SessionID.String()),
		}
		if ev.Command != "" {
			fields = append(fields, zap.String("command", ev.Command))
		}
		if ev.UserName != "" {
			fields = append(fields, zap.String("user_name", ev.UserName))
		}
		if ev.Recipient != "" {
			fields = append(fields, zap.String("recipient", ev.Recipient))
		}
		if !ev.Amount.IsZero() {
			fields = append(fields, zap.String("amount", ev.Amount.String()), zap.String("currency", ev.Currency))
		}
		if ev.TaskID != nil {
			fields = append(fields, zap.String("task_id", ev.TaskID.String()))
		}
		if ev.Reason != "" {
			fields = append(fields, zap.String("reason", ev.Reason))
		}

		switch ev.Type {
		case session.EventLoginFailed, session.EventCommandRejected:
			logger.Warn("Session command rejected", fields...)
		default:
			logger.Info("Session event", fields...)
		}
	}
}

// MetricsListener turns session events into Prometheus metrics.
func MetricsListener() Listener {
	return func(ev session.Event) {
		switch ev.Type {
		case session.EventLoggedIn:
			metrics.RecordAuthAttempt(true)
			metrics.RecordCommand(session.CommandLogin)
			metrics.RecordSessionStart()
		case session.EventLoginFailed:
			metrics.RecordAuthAttempt(false)
		case session.EventTransferCompleted:
			metrics.RecordCommand(session.CommandTransfer)
			metrics.RecordMovement(string(account.MovementTypeWithdrawal), ev.Currency, ev.Amount.InexactFloat64())
		case session.EventLoanRequested:
			metrics.RecordCommand(session.CommandLoan)
			metrics.RecordLoan("requested")
		case session.EventLoanGranted:
			metrics.RecordLoan("granted")
			metrics.RecordMovement(string(account.MovementTypeDeposit), ev.Currency, ev.Amount.InexactFloat64())
		case session.EventLoanCanceled:
			metrics.RecordLoan("canceled")
		case session.EventSortToggled:
			metrics.RecordCommand(session.CommandSort)
		case session.EventAccountClosed:
			metrics.RecordCommand(session.CommandClose)
			metrics.RecordSessionEnd("closed")
			metrics.AccountsTotal.Dec()
		case session.EventSessionExpired:
			metrics.RecordSessionEnd("expired")
		case session.EventCommandRejected:
			metrics.RecordRejection(ev.Command, ev.Reason)
		}
	}
}

// AuditListener appends every session event to the activity trail.
func AuditListener(repo repository.AuditRepository) Listener {
	return func(ev session.Event) {
		entry := audit.FromEvent(ev)
		repo.Create(&entry)
	}
}
