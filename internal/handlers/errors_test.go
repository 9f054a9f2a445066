package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	writeError(c, slog.New(slog.NewTextHandler(io.Discard, nil)), err)
	return w
}

func TestWriteErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{httperr.ErrConflict("time_conflict"), http.StatusBadRequest, "time_conflict"},
		{httperr.ErrOutOfHours("outside_business_hours"), http.StatusBadRequest, "outside_business_hours"},
		{httperr.ErrNotFound("service_not_found"), http.StatusNotFound, "service_not_found"},
		{httperr.ErrSubscriptionExpired(), http.StatusForbidden, "subscription_expired"},
		{httperr.ErrForbidden("not_appointment_owner"), http.StatusForbidden, "not_appointment_owner"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		w := respond(tc.err)
		assert.Equal(t, tc.status, w.Code, tc.code)

		var body httperr.HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestQuotaErrorCarriesUsage(t *testing.T) {
	usage := subscription.NewUsage(20, subscription.Plan{Key: "bronze", MonthlyLimit: 20})
	w := respond(httperr.ErrQuotaExceeded(usage))

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "monthly_limit_reached", body["error_code"])
	assert.NotNil(t, body["details"])
}
