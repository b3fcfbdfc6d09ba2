package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	summary *services.RunSummary
	err     error
}

func (s stubRunner) Run(_ time.Time) (*services.RunSummary, error) {
	return s.summary, s.err
}

func setupReminderRouter(t *testing.T, runner dispatchRunner, gotTenant *config.Tenant) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	original := newDispatchRunner
	t.Cleanup(func() { newDispatchRunner = original })
	newDispatchRunner = func(tenant config.Tenant) dispatchRunner {
		if gotTenant != nil {
			*gotTenant = tenant
		}
		return runner
	}

	r := gin.New()
	r.POST("/api/reminders/run", RunReminders)
	return r
}

func TestRunRemindersCompletedRun(t *testing.T) {
	var gotTenant config.Tenant
	r := setupReminderRouter(t, stubRunner{
		summary: &services.RunSummary{
			Sent:   2,
			Failed: 1,
			Errors: []string{"Giulia Rossi: Authenticate"},
		},
	}, &gotTenant)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reminders/run?tenant=milano", nil)
	r.ServeHTTP(w, req)

	// Partial failure is still a completed run.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.Tenant("milano"), gotTenant)

	var resp RunRemindersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, []string{"Giulia Rossi: Authenticate"}, resp.Errors)
	assert.Contains(t, resp.Message, "2 sent, 1 failed")
	assert.Empty(t, resp.Error)

	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
}

func TestRunRemindersConfigMissing(t *testing.T) {
	r := setupReminderRouter(t, stubRunner{err: services.ErrConfigMissing}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reminders/run", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp RunRemindersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, services.ErrConfigMissing.Error(), resp.Error)
	assert.Zero(t, resp.Sent)
	assert.Zero(t, resp.Failed)
	assert.NotNil(t, resp.Errors)
}

func TestRunRemindersSelectionFailure(t *testing.T) {
	r := setupReminderRouter(t, stubRunner{err: errors.New("selecting candidates: relation does not exist")}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reminders/run", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRunRemindersInvalidTenant(t *testing.T) {
	called := false
	r := setupReminderRouter(t, stubRunner{summary: &services.RunSummary{}}, nil)
	original := newDispatchRunner
	newDispatchRunner = func(tenant config.Tenant) dispatchRunner {
		called = true
		return original(tenant)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reminders/run?tenant=Mil;ano", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called, "invalid tenant must be rejected before the pipeline runs")
}
