package handlers

import (
	"net/http"
	"strconv"

	"github.com/darisadam/bankist-server/internal/domain/audit"
	"github.com/darisadam/bankist-server/internal/repository"
	"github.com/darisadam/bankist-server/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type ActivityResponse struct {
	Entries []audit.Entry `json:"entries"`
}

type ActivityHandler struct {
	sessionService service.SessionService
	auditRepo      repository.AuditRepository
}

func NewActivityHandler(sessionService service.SessionService, auditRepo repository.AuditRepository) *ActivityHandler {
	return &ActivityHandler{
		sessionService: sessionService,
		auditRepo:      auditRepo,
	}
}

// List godoc
// @Summary Recent activity
// @Description Newest-first activity trail of the logged-in account
// @Tags account
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (1-100)"
// @Success 200 {object} ActivityResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	snap, err := h.sessionService.Dashboard(sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired or logged out"})
		return
	}

	limit := defaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxActivityLimit)
	}

	c.JSON(http.StatusOK, ActivityResponse{
		Entries: h.auditRepo.ListByUserName(snap.Account.UserName, limit),
	})
}
