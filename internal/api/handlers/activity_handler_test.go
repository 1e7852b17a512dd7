package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/darisadam/bankist-server/internal/api/middleware"
	"github.com/darisadam/bankist-server/internal/domain/audit"
	"github.com/darisadam/bankist-server/internal/repository"
	"github.com/darisadam/bankist-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupActivityRouter(handler *ActivityHandler, sessionID uuid.UUID) *gin.Engine {
	router := setupRouter()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionID, sessionID)
		c.Next()
	})
	router.GET("/activity", handler.List)
	return router
}

func TestActivityHandler_List(t *testing.T) {
	mockService := new(MockSessionService)
	audits := repository.NewAuditRepository(10)
	sessionID := uuid.New()
	router := setupActivityRouter(NewActivityHandler(mockService, audits), sessionID)

	audits.Create(&audit.Entry{UserName: "jd", Action: "logged_in"})
	audits.Create(&audit.Entry{UserName: "js", Action: "logged_in"})
	audits.Create(&audit.Entry{UserName: "jd", Action: "sort_toggled"})
	mockService.On("Dashboard", sessionID).Return(loggedInSnapshot(sessionID), nil)

	w := doJSON(router, "GET", "/activity?limit=5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "sort_toggled", resp.Entries[0].Action)
}

func TestActivityHandler_InvalidLimit(t *testing.T) {
	mockService := new(MockSessionService)
	sessionID := uuid.New()
	router := setupActivityRouter(NewActivityHandler(mockService, repository.NewAuditRepository(10)), sessionID)

	mockService.On("Dashboard", sessionID).Return(loggedInSnapshot(sessionID), nil)

	w := doJSON(router, "GET", "/activity?limit=-1", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivityHandler_NotLoggedIn(t *testing.T) {
	mockService := new(MockSessionService)
	sessionID := uuid.New()
	router := setupActivityRouter(NewActivityHandler(mockService, repository.NewAuditRepository(10)), sessionID)

	mockService.On("Dashboard", sessionID).Return(nil, service.ErrNotLoggedIn)

	w := doJSON(router, "GET", "/activity", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
