package handlers

import (
	"errors"
	"net/http"

	"github.com/darisadam/bankist-server/internal/api/middleware"
	"github.com/darisadam/bankist-server/internal/domain/session"
	"github.com/darisadam/bankist-server/internal/pkg/logger"
	"github.com/darisadam/bankist-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommandResponse is returned by every session command. A command that
// fails its guard is not an HTTP error: it comes back with Applied false.
type CommandResponse struct {
	Applied   bool           `json:"applied"`
	Reason    string         `json:"reason,omitempty"`
	Event     *session.Event `json:"event,omitempty"`
	Session   *SessionView   `json:"session,omitempty"`
	Dashboard *DashboardView `json:"dashboard,omitempty"`
}

type AccountHandler struct {
	sessionService service.SessionService
}

func NewAccountHandler(sessionService service.SessionService) *AccountHandler {
	return &AccountHandler{
		sessionService: sessionService,
	}
}

// Dashboard godoc
// @Summary Get dashboard
// @Description Movements, balance, summary and countdown of the logged-in account
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardView
// @Failure 401 {object} map[string]string
// @Router /api/v1/dashboard [get]
func (h *AccountHandler) Dashboard(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	snap, err := h.sessionService.Dashboard(sessionID)
	if err != nil {
		h.fail(c, "dashboard", err)
		return
	}

	c.JSON(http.StatusOK, NewDashboardView(snap))
}

// Transfer godoc
// @Summary Transfer money
// @Description Move money from the logged-in account to another account
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body session.TransferRequest true "Recipient and amount"
// @Success 200 {object} CommandResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/transfers [post]
func (h *AccountHandler) Transfer(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req session.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejected(c, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		rejected(c, err)
		return
	}

	out, err := h.sessionService.Transfer(sessionID, cmd)
	if err != nil {
		h.fail(c, session.CommandTransfer, err)
		return
	}

	c.JSON(http.StatusOK, applied(out))
}

// RequestLoan godoc
// @Summary Request a loan
// @Description Schedule a loan deposit. Needs a past deposit of at least 10% of the amount.
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body session.LoanRequest true "Loan amount"
// @Success 202 {object} CommandResponse
// @Success 200 {object} CommandResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/loans [post]
func (h *AccountHandler) RequestLoan(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req session.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejected(c, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		rejected(c, err)
		return
	}

	out, err := h.sessionService.RequestLoan(sessionID, cmd)
	if err != nil {
		h.fail(c, session.CommandLoan, err)
		return
	}

	c.JSON(http.StatusAccepted, applied(out))
}

// CloseAccount godoc
// @Summary Close account
// @Description Delete the logged-in account after confirming username and PIN
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body session.CloseRequest true "Confirmation"
// @Success 200 {object} CommandResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/account/close [post]
func (h *AccountHandler) CloseAccount(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req session.CloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejected(c, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		rejected(c, err)
		return
	}

	out, err := h.sessionService.CloseAccount(sessionID, cmd)
	if err != nil {
		h.fail(c, session.CommandClose, err)
		return
	}

	c.JSON(http.StatusOK, applied(out))
}

// ToggleSort godoc
// @Summary Toggle movement sort
// @Description Switch between ledger order and ascending amount order
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CommandResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/movements/sort [post]
func (h *AccountHandler) ToggleSort(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	out, err := h.sessionService.ToggleSort(sessionID)
	if err != nil {
		h.fail(c, session.CommandSort, err)
		return
	}

	c.JSON(http.StatusOK, applied(out))
}

func (h *AccountHandler) fail(c *gin.Context, command string, err error) {
	switch {
	case service.IsRejection(err):
		rejected(c, err)
	case errors.Is(err, service.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired or logged out"})
	default:
		logger.Error("Session command failed", zap.String("command", command), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func sessionFromContext(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(middleware.ContextSessionID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

func rejected(c *gin.Context, err error) {
	c.JSON(http.StatusOK, CommandResponse{Applied: false, Reason: err.Error()})
}

func applied(out *session.Outcome) CommandResponse {
	ev := out.Event
	return CommandResponse{
		Applied:   true,
		Event:     &ev,
		Session:   NewSessionView(out.Snapshot),
		Dashboard: NewDashboardView(out.Snapshot),
	}
}
