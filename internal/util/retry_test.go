package util

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"ETIMEDOUT", syscall.ETIMEDOUT, true},
		{"ECONNRESET", syscall.ECONNRESET, true},
		{"ECONNREFUSED", syscall.ECONNREFUSED, true},
		{"wrapped reset", fmt.Errorf("fetching /page: %w", syscall.ECONNRESET), true},
		{"connection reset message", errors.New("read tcp: connection reset by peer"), true},
		{"gateway timeout status", errors.New("fetching /page: status 504 Gateway Timeout"), true},
		{"throttled status", errors.New("fetching /page: status 429 Too Many Requests"), true},
		{"not found status", errors.New("fetching /page: status 404 Not Found"), false},
		{"parse failure", errors.New("parsing /page: unexpected EOF"), false},
		{"cancelled context", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableError(tt.err); got != tt.expected {
				t.Errorf("IsRetryableError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestRetryWithBackoffSucceedsAfterTransientFailures(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond}

	attempts := 0
	result, err := RetryWithBackoff(context.Background(), cfg, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", syscall.ECONNRESET
		}
		return "ok", nil
	}, "test op")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want %q", result, "ok")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryWithBackoffStopsOnNonRetryable(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond}

	attempts := 0
	_, err := RetryWithBackoff(context.Background(), cfg, func() (int, error) {
		attempts++
		return 0, errors.New("status 404 Not Found")
	}, "test op")

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (non-retryable errors fail fast)", attempts)
	}
}

func TestRetryWithBackoffExhaustsAttempts(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond}

	attempts := 0
	_, err := RetryWithBackoff(context.Background(), cfg, func() (int, error) {
		attempts++
		return 0, syscall.ETIMEDOUT
	}, "test op")

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if !errors.Is(err, syscall.ETIMEDOUT) {
		t.Errorf("final error should wrap the last failure, got %v", err)
	}
}

func TestRetryHonorsCancelledContext(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 5, InitialWait: 50 * time.Millisecond, MaxWait: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Retry(ctx, cfg, func() error {
		attempts++
		return syscall.ECONNRESET
	}, "test op")

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if attempts >= 5 {
		t.Errorf("attempts = %d, cancellation should stop the loop early", attempts)
	}
}
