package httperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBusinessErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create appointment: %w", ErrConflict("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindNotFound))

	be, ok := AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, StatusOf(be.Kind))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(KindNotFound))
	assert.Equal(t, http.StatusForbidden, StatusOf(KindQuotaExceeded))
	assert.Equal(t, http.StatusForbidden, StatusOf(KindNoSubscription))
	assert.Equal(t, http.StatusBadRequest, StatusOf(KindOutOfHours))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Kind("other")))
}

func TestPostgresCodes(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})

	assert.True(t, IsExclusionConflict(err))
	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsExclusionConflict(fmt.Errorf("plain")))
}
