package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/queryops/query"
)

func TestTimeout_FastFetchSucceeds(t *testing.T) {
	fast := query.FetchFunc(func(ctx context.Context, op query.Operation, variables query.Variables) (any, error) {
		return "data", nil
	})

	to := NewTimeout(TimeoutConfig{Duration: time.Second}, fast)

	data, err := to.Fetch(context.Background(), testOp, nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if data != "data" {
		t.Errorf("Fetch() = %v, want %q", data, "data")
	}
}

func TestTimeout_SlowFetchTimesOut(t *testing.T) {
	slow := query.FetchFunc(func(ctx context.Context, op query.Operation, variables query.Variables) (any, error) {
		select {
		case <-time.After(time.Second):
			return "late", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	to := NewTimeout(TimeoutConfig{Duration: 20 * time.Millisecond}, slow)

	_, err := to.Fetch(context.Background(), testOp, nil)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Fetch() error = %v, want ErrTimeout", err)
	}
}

func TestTimeout_ParentCancellation(t *testing.T) {
	slow := query.FetchFunc(func(ctx context.Context, op query.Operation, variables query.Variables) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	to := NewTimeout(TimeoutConfig{Duration: time.Second}, slow)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := to.Fetch(ctx, testOp, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestTimeout_FetchErrorPassesThrough(t *testing.T) {
	errBoom := errors.New("boom")
	failing := query.FetchFunc(func(ctx context.Context, op query.Operation, variables query.Variables) (any, error) {
		return nil, errBoom
	})

	to := NewTimeout(TimeoutConfig{Duration: time.Second}, failing)

	_, err := to.Fetch(context.Background(), testOp, nil)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Fetch() error = %v, want %v", err, errBoom)
	}
}

func TestTimeout_DefaultDuration(t *testing.T) {
	to := NewTimeout(TimeoutConfig{}, query.FetchFunc(func(ctx context.Context, op query.Operation, variables query.Variables) (any, error) {
		return nil, nil
	}))

	if got := to.Config().Duration; got != 30*time.Second {
		t.Errorf("Duration = %v, want 30s", got)
	}
}
