package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/darisadam/bankist-server/internal/domain/session"
	"github.com/darisadam/bankist-server/internal/pkg/clock"
	"github.com/darisadam/bankist-server/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultSessionTimeout = 300 * time.Second
	DefaultLoanDelay      = 2500 * time.Millisecond
)

var (
	loanCoverNumerator   = decimal.NewFromInt(10)
	loanCoverDenominator = decimal.NewFromInt(100)
)

// Listener receives session events after the state change is committed.
// Listeners run outside the service lock and may call back into it.
type Listener func(session.Event)

type SessionOptions struct {
	Timeout   time.Duration
	LoanDelay time.Duration
}

// SessionService owns the single demo session: who is logged in, the
// inactivity countdown, and the commands that mutate the ledger.
type SessionService interface {
	Login(cmd session.LoginCommand) (*session.Snapshot, error)
	State() *session.Snapshot
	Dashboard(sessionID uuid.UUID) (*session.Snapshot, error)
	Transfer(sessionID uuid.UUID, cmd session.TransferCommand) (*session.Outcome, error)
	RequestLoan(sessionID uuid.UUID, cmd session.LoanCommand) (*session.Outcome, error)
	CloseAccount(sessionID uuid.UUID, cmd session.CloseCommand) (*session.Outcome, error)
	ToggleSort(sessionID uuid.UUID) (*session.Outcome, error)
	Subscribe(listeners ...Listener)
	Shutdown()
}

type sessionService struct {
	mu        sync.Mutex
	repo      repository.AccountRepository
	clock     clock.Clock
	timeout   time.Duration
	loanDelay time.Duration
	current   *activeSession

	lmu       sync.RWMutex
	listeners []Listener
}

type activeSession struct {
	id        uuid.UUID
	userName  string
	currency  string
	deadline  time.Time
	countdown clock.Timer
	seq       uint64
	sorted    bool
	loans     map[uuid.UUID]*pendingLoan
}

type pendingLoan struct {
	id     uuid.UUID
	amount decimal.Decimal
	timer  clock.Timer
}

func NewSessionService(repo repository.AccountRepository, clk clock.Clock, opts SessionOptions) SessionService {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultSessionTimeout
	}
	if opts.LoanDelay < 0 {
		opts.LoanDelay = DefaultLoanDelay
	}

	return &sessionService{
		repo:      repo,
		clock:     clk,
		timeout:   opts.Timeout,
		loanDelay: opts.LoanDelay,
	}
}

func (s *sessionService) Subscribe(listeners ...Listener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, listeners...)
}

// Login starts a new session. A failed attempt leaves the current session,
// if any, untouched and keeps no reference to the looked-up account.
func (s *sessionService) Login(cmd session.LoginCommand) (*session.Snapshot, error) {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.repo.FindByUserName(cmd.UserName)
	if err != nil || !acc.CheckPIN(cmd.PIN) {
		ev := s.newEvent(session.EventLoginFailed, nil)
		ev.Command = session.CommandLogin
		ev.UserName = cmd.UserName
		events = append(events, ev)
		return nil, ErrInvalidCredentials
	}

	events = append(events, s.endSessionLocked("superseded by a new login")...)

	sess := &activeSession{
		id:       uuid.New(),
		userName: acc.UserName,
		currency: acc.Currency,
		loans:    make(map[uuid.UUID]*pendingLoan),
	}
	s.current = sess
	s.restartCountdownLocked(sess)

	ev := s.newEvent(session.EventLoggedIn, sess)
	ev.Command = session.CommandLogin
	events = append(events, ev)

	return s.snapshotLocked(sess, acc), nil
}

// State returns the current session without requiring its id.
func (s *sessionService) State() *session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.current
	if sess == nil {
		return s.loggedOutSnapshot()
	}
	acc, err := s.repo.FindByUserName(sess.userName)
	if err != nil {
		return s.loggedOutSnapshot()
	}
	return s.snapshotLocked(sess, acc)
}

func (s *sessionService) Dashboard(sessionID uuid.UUID) (*session.Snapshot, error) {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, acc, err := s.authorizeLocked(sessionID, &events)
	if err != nil {
		return nil, err
	}
	return s.snapshotLocked(sess, acc), nil
}

func (s *sessionService) Transfer(sessionID uuid.UUID, cmd session.TransferCommand) (*session.Outcome, error) {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, acc, err := s.authorizeLocked(sessionID, &events)
	if err != nil {
		return nil, err
	}

	if !cmd.Amount.IsPositive() {
		return nil, s.rejectLocked(&events, sess, session.CommandTransfer, ErrInvalidAmount)
	}
	receiver, err := s.repo.FindByUserName(cmd.To)
	if err != nil {
		return nil, s.rejectLocked(&events, sess, session.CommandTransfer, ErrRecipientNotFound)
	}
	if receiver.UserName == acc.UserName {
		return nil, s.rejectLocked(&events, sess, session.CommandTransfer, ErrSelfTransfer)
	}
	if account.Balance(acc).LessThan(cmd.Amount) {
		return nil, s.rejectLocked(&events, sess, session.CommandTransfer, ErrInsufficientFunds)
	}

	if err := s.repo.Transfer(acc.UserName, receiver.UserName, cmd.Amount, s.clock.Now()); err != nil {
		return nil, fmt.Errorf("failed to transfer: %w", err)
	}
	s.restartCountdownLocked(sess)

	ev := s.newEvent(session.EventTransferCompleted, sess)
	ev.Command = session.CommandTransfer
	ev.Recipient = receiver.UserName
	ev.Amount = cmd.Amount
	events = append(events, ev)

	return s.outcomeLocked(sess, ev)
}

// RequestLoan schedules a deposit of cmd.Amount after the loan delay. The
// deposit is dropped if the requesting session has ended by then.
func (s *sessionService) RequestLoan(sessionID uuid.UUID, cmd session.LoanCommand) (*session.Outcome, error) {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, acc, err := s.authorizeLocked(sessionID, &events)
	if err != nil {
		return nil, err
	}

	if !cmd.Amount.IsPositive() {
		return nil, s.rejectLocked(&events, sess, session.CommandLoan, ErrInvalidAmount)
	}
	cover := cmd.Amount.Mul(loanCoverNumerator).Div(loanCoverDenominator)
	if !account.HasMovementAtLeast(acc, cover) {
		return nil, s.rejectLocked(&events, sess, session.CommandLoan, ErrNotCreditworthy)
	}

	task := &pendingLoan{id: uuid.New(), amount: cmd.Amount}
	taskID := task.id
	sess.loans[taskID] = task
	task.timer = s.clock.AfterFunc(s.loanDelay, func() {
		s.completeLoan(sessionID, taskID)
	})

	ev := s.newEvent(session.EventLoanRequested, sess)
	ev.Command = session.CommandLoan
	ev.Amount = cmd.Amount
	ev.TaskID = &taskID
	events = append(events, ev)

	return s.outcomeLocked(sess, ev)
}

func (s *sessionService) CloseAccount(sessionID uuid.UUID, cmd session.CloseCommand) (*session.Outcome, error) {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, acc, err := s.authorizeLocked(sessionID, &events)
	if err != nil {
		return nil, err
	}

	if cmd.UserName != acc.UserName || !acc.CheckPIN(cmd.PIN) {
		return nil, s.rejectLocked(&events, sess, session.CommandClose, ErrCloseMismatch)
	}

	if err := s.repo.Remove(acc.UserName); err != nil {
		return nil, err
	}

	ev := s.newEvent(session.EventAccountClosed, sess)
	ev.Command = session.CommandClose
	ev.Amount = account.Balance(acc)
	events = append(events, s.endSessionLocked("account closed")...)
	events = append(events, ev)

	return &session.Outcome{Event: ev, Snapshot: s.loggedOutSnapshot()}, nil
}

// ToggleSort flips the presentation order of the movements. It does not
// touch the ledger or the countdown.
func (s *sessionService) ToggleSort(sessionID uuid.UUID) (*session.Outcome, error) {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, acc, err := s.authorizeLocked(sessionID, &events)
	if err != nil {
		return nil, err
	}

	sess.sorted = !sess.sorted

	ev := s.newEvent(session.EventSortToggled, sess)
	ev.Command = session.CommandSort
	events = append(events, ev)

	return &session.Outcome{Event: ev, Snapshot: s.snapshotLocked(sess, acc)}, nil
}

// Shutdown ends the session and cancels every scheduled task.
func (s *sessionService) Shutdown() {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	events = s.endSessionLocked("server shutdown")
}

func (s *sessionService) completeLoan(sessionID, taskID uuid.UUID) {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.current
	if sess == nil || sess.id != sessionID {
		return
	}
	task, ok := sess.loans[taskID]
	if !ok {
		return
	}
	delete(sess.loans, taskID)

	if err := s.repo.AppendMovement(sess.userName, task.amount, s.clock.Now()); err != nil {
		ev := s.newEvent(session.EventLoanCanceled, sess)
		ev.Amount = task.amount
		ev.TaskID = &taskID
		ev.Reason = err.Error()
		events = append(events, ev)
		return
	}
	s.restartCountdownLocked(sess)

	ev := s.newEvent(session.EventLoanGranted, sess)
	ev.Command = session.CommandLoan
	ev.Amount = task.amount
	ev.TaskID = &taskID
	events = append(events, ev)
}

func (s *sessionService) expire(sessionID uuid.UUID, seq uint64) {
	var events []session.Event
	defer func() { s.publish(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.current
	if sess == nil || sess.id != sessionID || sess.seq != seq {
		return
	}

	ev := s.newEvent(session.EventSessionExpired, sess)
	events = append(events, s.endSessionLocked("session expired")...)
	events = append(events, ev)
}

// restartCountdownLocked cancels the running countdown and starts a new one.
// A superseded callback that already started sees a stale seq and returns.
func (s *sessionService) restartCountdownLocked(sess *activeSession) {
	if sess.countdown != nil {
		sess.countdown.Stop()
	}

	sess.seq++
	seq := sess.seq
	sessionID := sess.id
	sess.deadline = s.clock.Now().Add(s.timeout)
	sess.countdown = s.clock.AfterFunc(s.timeout, func() {
		s.expire(sessionID, seq)
	})
}

// endSessionLocked logs out and cancels pending loans.
func (s *sessionService) endSessionLocked(reason string) []session.Event {
	sess := s.current
	if sess == nil {
		return nil
	}

	if sess.countdown != nil {
		sess.countdown.Stop()
	}

	var events []session.Event
	for id, task := range sess.loans {
		task.timer.Stop()

		taskID := id
		ev := s.newEvent(session.EventLoanCanceled, sess)
		ev.Amount = task.amount
		ev.TaskID = &taskID
		ev.Reason = reason
		events = append(events, ev)
	}
	sess.loans = nil

	s.current = nil
	return events
}

func (s *sessionService) authorizeLocked(sessionID uuid.UUID, events *[]session.Event) (*activeSession, *account.Account, error) {
	sess := s.current
	if sess == nil || sess.id != sessionID {
		return nil, nil, ErrNotLoggedIn
	}

	acc, err := s.repo.FindByUserName(sess.userName)
	if err != nil {
		*events = append(*events, s.endSessionLocked("account no longer active")...)
		return nil, nil, ErrNotLoggedIn
	}

	return sess, acc, nil
}

func (s *sessionService) rejectLocked(events *[]session.Event, sess *activeSession, command string, err error) error {
	ev := s.newEvent(session.EventCommandRejected, sess)
	ev.Command = command
	ev.Reason = err.Error()
	*events = append(*events, ev)
	return err
}

func (s *sessionService) outcomeLocked(sess *activeSession, ev session.Event) (*session.Outcome, error) {
	acc, err := s.repo.FindByUserName(sess.userName)
	if err != nil {
		return nil, fmt.Errorf("failed to reload account: %w", err)
	}
	return &session.Outcome{Event: ev, Snapshot: s.snapshotLocked(sess, acc)}, nil
}

func (s *sessionService) snapshotLocked(sess *activeSession, acc *account.Account) *session.Snapshot {
	now := s.clock.Now()
	return &session.Snapshot{
		State:            session.StateLoggedIn,
		SessionID:        sess.id,
		Account:          acc,
		RemainingSeconds: remainingSeconds(sess.deadline, now),
		Sorted:           sess.sorted,
		PendingLoans:     len(sess.loans),
		At:               now,
	}
}

func (s *sessionService) loggedOutSnapshot() *session.Snapshot {
	return &session.Snapshot{State: session.StateLoggedOut, At: s.clock.Now()}
}

func (s *sessionService) newEvent(typ session.EventType, sess *activeSession) session.Event {
	ev := session.Event{ID: uuid.New(), Type: typ, At: s.clock.Now()}
	if sess != nil {
		ev.SessionID = sess.id
		ev.UserName = sess.userName
		ev.Currency = sess.currency
	}
	return ev
}

func (s *sessionService) publish(events []session.Event) {
	if len(events) == 0 {
		return
	}

	s.lmu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.lmu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}

// remainingSeconds rounds up, so a fresh countdown reports the full timeout.
func remainingSeconds(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
