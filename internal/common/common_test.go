package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "user error", err: NewUserError("Please log in.", ErrNotAuthenticated), want: "Please log in."},
		{name: "wrapped user error", err: fmt.Errorf("save: %w", NewUserError("No changes detected.", ErrNoChanges)), want: "No changes detected."},
		{name: "transport", err: fmt.Errorf("%w: dial tcp", ErrTransport), want: GenericFailureMessage},
		{name: "plain", err: errors.New("Entry not found"), want: "Entry not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserError_Unwrap(t *testing.T) {
	err := NewUserError("Account already exists.", ErrAccountExists)
	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Equal(t, "Account already exists.: account already registered", err.Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "transport", err: fmt.Errorf("%w: reset", ErrTransport), want: true},
		{name: "rate limit", err: ErrRateLimit, want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "rejected", err: ErrAPIRejected, want: false},
		{name: "marked retryable", err: &RetryableError{Err: errors.New("busy"), Retryable: true}, want: true},
		{name: "marked permanent", err: &RetryableError{Err: errors.New("gone"), Retryable: false}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestWithRetry(t *testing.T) {
	opts := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}

	t.Run("succeeds after transport failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return ErrTransport
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return ErrAPIRejected
		}, opts)
		require.ErrorIs(t, err, ErrAPIRejected)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return ErrTransport
		}, opts)
		require.ErrorIs(t, err, ErrMaxRetries)
		assert.ErrorIs(t, err, ErrTransport)
		assert.Equal(t, 3, calls)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error { return ErrTransport }, RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Hour,
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "json"))

	LogDebug("hidden", nil)
	LogInfo("Entry saved", Fields{"id": 4})
	LogError(errors.New("boom"), "Save failed", Fields{"vegetable": "Carrot"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"Entry saved"`)
	assert.Contains(t, out, `"id":4`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"vegetable":"Carrot"`)

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ana@example.com"))
	assert.False(t, IsValidEmail("ana@example"))
	assert.False(t, IsValidEmail("ana example@x.io"))
	assert.True(t, IsBlank("  \t"))
	assert.False(t, IsBlank(" a "))
}
