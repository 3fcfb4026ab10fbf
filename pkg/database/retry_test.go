package database

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"locked database", errors.New("database is locked"), true},
		{"locked table", errors.New("database table is locked"), true},
		{"busy code", errors.New("SQLITE_BUSY: resource unavailable"), true},
		{"numeric busy code", errors.New("sqlite error (5)"), true},
		{"unrelated", errors.New("no such table: books"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isBusyError(tt.err))
		})
	}
}

func TestRetryWithBackoff_SucceedsAfterBusy(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_NonBusyErrorReturnsImmediately(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		attempts++
		return errors.New("no such table: books")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := retryWithBackoff(context.Background(), 2, func() error {
		attempts++
		return errors.New("database is locked")
	})
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}
