package utils

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryDo(t *testing.T) {
	errRefused := errors.New("connection refused")

	tests := []struct {
		name        string
		maxAttempts int
		failures    int
		wantCalls   int
		wantErr     bool
	}{
		{"first try", 3, 0, 1, false},
		{"recovers", 3, 2, 3, false},
		{"exhausted", 3, 5, 3, true},
		{"zero attempts still calls once", 0, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			r := &RetryConfig{MaxAttempts: tt.maxAttempts, BaseDelay: time.Millisecond, Logger: NewDiscardLogger()}

			err := r.Do("postgres ping", func() error {
				calls++
				if calls <= tt.failures {
					return errRefused
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				require.ErrorIs(t, err, errRefused)
				assert.Contains(t, err.Error(), "postgres ping failed after 3 attempts")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetryLogsEachFailedAttempt(t *testing.T) {
	var out bytes.Buffer
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Logger: NewLoggerTo(&out, &out)}

	calls := 0
	err := r.Do("postgres ping", func() error {
		calls++
		if calls < 3 {
			return errors.New("not ready")
		}
		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "postgres ping failed (attempt 1/3): not ready")
	assert.Contains(t, out.String(), "postgres ping failed (attempt 2/3): not ready")
	assert.Contains(t, out.String(), "succeeded on attempt 3/3")
}
