package handlers

import (
	"time"

	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/darisadam/bankist-server/internal/domain/session"
	"github.com/darisadam/bankist-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockSessionService is a mock implementation of service.SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(cmd session.LoginCommand) (*session.Snapshot, error) {
	args := m.Called(cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Snapshot), args.Error(1)
}

func (m *MockSessionService) State() *session.Snapshot {
	args := m.Called()
	return args.Get(0).(*session.Snapshot)
}

func (m *MockSessionService) Dashboard(sessionID uuid.UUID) (*session.Snapshot, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Snapshot), args.Error(1)
}

func (m *MockSessionService) Transfer(sessionID uuid.UUID, cmd session.TransferCommand) (*session.Outcome, error) {
	args := m.Called(sessionID, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Outcome), args.Error(1)
}

func (m *MockSessionService) RequestLoan(sessionID uuid.UUID, cmd session.LoanCommand) (*session.Outcome, error) {
	args := m.Called(sessionID, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Outcome), args.Error(1)
}

func (m *MockSessionService) CloseAccount(sessionID uuid.UUID, cmd session.CloseCommand) (*session.Outcome, error) {
	args := m.Called(sessionID, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Outcome), args.Error(1)
}

func (m *MockSessionService) ToggleSort(sessionID uuid.UUID) (*session.Outcome, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Outcome), args.Error(1)
}

func (m *MockSessionService) Subscribe(listeners ...service.Listener) {
	m.Called(listeners)
}

func (m *MockSessionService) Shutdown() {
	m.Called()
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(sessionID uuid.UUID, userName string) (string, time.Time, error) {
	args := m.Called(sessionID, userName)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var testNow = time.Date(2023, 1, 17, 12, 0, 0, 0, time.UTC)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testAccount() *account.Account {
	return &account.Account{
		Owner:    "Jessica Davis",
		UserName: "jd",
		Movements: []decimal.Decimal{
			decimal.NewFromInt(5000),
			decimal.NewFromInt(-150),
			decimal.NewFromInt(3400),
		},
		MovementsDates: []time.Time{
			testNow.AddDate(0, 0, -30),
			testNow.AddDate(0, 0, -1),
			testNow,
		},
		InterestRate: decimal.RequireFromString("1.5"),
		Currency:     "USD",
		Locale:       "en-US",
	}
}

func loggedInSnapshot(sessionID uuid.UUID) *session.Snapshot {
	return &session.Snapshot{
		State:            session.StateLoggedIn,
		SessionID:        sessionID,
		Account:          testAccount(),
		RemainingSeconds: 300,
		At:               testNow,
	}
}
