package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), DefaultRetryPolicy(), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" || calls != 1 {
		t.Fatalf("result=%q calls=%d", result, calls)
	}
}

func TestRetry_ConnectivityRetriedUpToMax(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	failure := connectivityError(errors.New("dial tcp: connection refused"))
	_, err := Retry(context.Background(), policy, func(ctx context.Context) (*Response, error) {
		calls++
		return nil, failure
	})

	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	// The last error must surface unmodified.
	if !errors.Is(err, failure) {
		t.Fatalf("expected last error unmodified, got %v", err)
	}
}

func TestRetry_ResponseErrorNotRetried(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	_, err := Retry(context.Background(), policy, func(ctx context.Context) (*Response, error) {
		calls++
		return nil, classify(500, nil)
	})

	if calls != 1 {
		t.Fatalf("a failure with a response present must not be retried, got %d attempts", calls)
	}
	if !IsServer(err) {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestRetry_DelaysGrowStrictly(t *testing.T) {
	base := 20 * time.Millisecond
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: base}

	start := time.Now()
	calls := 0
	_, err := Retry(context.Background(), policy, func(ctx context.Context) (*Response, error) {
		calls++
		if calls < 3 {
			return nil, connectivityError(errors.New("timeout"))
		}
		return &Response{Status: 200}, nil
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	// delay*1 after attempt 1 plus delay*2 after attempt 2
	if want := base*1 + base*2; elapsed < want {
		t.Fatalf("elapsed %v, want at least %v", elapsed, want)
	}
}

func TestRetry_CustomPredicate(t *testing.T) {
	retriable := errors.New("flaky")
	policy := RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Retryable:   func(err error) bool { return errors.Is(err, retriable) },
	}

	calls := 0
	_, err := Retry(context.Background(), policy, func(ctx context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, retriable
		}
		return 42, nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestRetry_ContextCancelDuringBackoff(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Retry(ctx, policy, func(ctx context.Context) (*Response, error) {
		return nil, connectivityError(errors.New("timeout"))
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("cancellation should interrupt the backoff wait")
	}
}

func TestRetryPolicy_DefaultSchedule(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.MaxAttempts != 3 {
		t.Fatalf("MaxAttempts = %d, want 3", p.MaxAttempts)
	}
	if p.delay(1) != time.Second || p.delay(2) != 2*time.Second {
		t.Fatalf("unexpected schedule: %v, %v", p.delay(1), p.delay(2))
	}
}
