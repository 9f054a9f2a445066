package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

func TestSearchPredicate(t *testing.T) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	sql, args, err := searchPredicate(domain.SearchFilter{
		BusinessID: 7,
		Statuses:   []domain.Status{domain.StatusPending, domain.StatusConfirmed},
		Date:       &date,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "(business_id = ? AND status IN (?,?) AND appointment_date = ?)", sql)
	assert.Equal(t, []any{uint(7), "pending", "confirmed", "2026-10-19"}, args)
}

func TestSearchPredicateOnlyBusiness(t *testing.T) {
	sql, args, err := searchPredicate(domain.SearchFilter{BusinessID: 3}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "(business_id = ?)", sql)
	assert.Equal(t, []any{uint(3)}, args)
}

func TestPageBounds(t *testing.T) {
	p, l := pageBounds(0, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, defaultPageSize, l)

	_, l = pageBounds(2, 1000)
	assert.Equal(t, maxPageSize, l)
}

func TestSubscriptionWriteErr(t *testing.T) {
	dup := fmt.Errorf("insert subscription: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, httperr.IsBusiness(subscriptionWriteErr(dup), "subscription_conflict"))

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(other), subscriptionWriteErr(other))
	assert.NoError(t, subscriptionWriteErr(nil))
}

func TestNotFoundMapping(t *testing.T) {
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound), domain.ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, notFound(other))
}
