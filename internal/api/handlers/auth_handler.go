package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/darisadam/bankist-server/internal/domain/session"
	"github.com/darisadam/bankist-server/internal/pkg/logger"
	"github.com/darisadam/bankist-server/internal/pkg/metrics"
	"github.com/darisadam/bankist-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const errNotValidData = "Not valid data"

// TokenIssuer signs the bearer token handed out on login.
type TokenIssuer interface {
	GenerateToken(sessionID uuid.UUID, userName string) (string, time.Time, error)
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Session   *SessionView   `json:"session"`
	Dashboard *DashboardView `json:"dashboard"`
}

type AuthHandler struct {
	sessionService service.SessionService
	tokens         TokenIssuer
}

func NewAuthHandler(sessionService service.SessionService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		tokens:         tokens,
	}
}

// Login godoc
// @Summary Log in
// @Description Start a session with username and PIN. Replaces any current session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body session.LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req session.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNotValidData})
		return
	}

	cmd, err := req.Command()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNotValidData})
		return
	}

	snap, err := h.sessionService.Login(cmd)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errNotValidData})
			return
		}
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(snap.SessionID, snap.Account.UserName)
	if err != nil {
		logger.Error("Failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	metrics.RecordAuthTokenGenerated()

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Session:   NewSessionView(snap),
		Dashboard: NewDashboardView(snap),
	})
}

// Session godoc
// @Summary Current session state
// @Description Greeting and countdown when logged in, the logged-out placeholder otherwise
// @Tags auth
// @Produce json
// @Success 200 {object} SessionView
// @Router /api/v1/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, NewSessionView(h.sessionService.State()))
}
