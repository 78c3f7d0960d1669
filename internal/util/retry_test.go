// ABOUTME: Tests for backoff and politeness delay helpers
// ABOUTME: Validates bounds, jitter, and context-aware sleeping
package util

import (
	"context"
	"testing"
	"time"
)

func TestCalculateBackoff_NonPositiveAttempt(t *testing.T) {
	for _, attempt := range []int{0, -1, -100} {
		if got := CalculateBackoff(time.Second, attempt); got != 0 {
			t.Errorf("CalculateBackoff(1s, %d) = %v, want 0", attempt, got)
		}
	}
}

func TestCalculateBackoff_Bounds(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase * 5 / 4

		result := CalculateBackoff(baseDelay, attempt)
		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: expected backoff between %v and %v, got %v",
				attempt, minExpected, maxExpected, result)
		}
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	maxAllowed := 37500 * time.Millisecond
	for _, attempt := range []int{10, 100} {
		result := CalculateBackoff(time.Second, attempt)
		if result > maxAllowed || result < 0 {
			t.Errorf("attempt %d: backoff %v outside [0, %v]", attempt, result, maxAllowed)
		}
	}
}

func TestRandomDelay_WithinRange(t *testing.T) {
	min, max := 2*time.Second, 4*time.Second

	for i := 0; i < 200; i++ {
		d := RandomDelay(min, max)
		if d < min || d > max {
			t.Fatalf("RandomDelay() = %v, want within [%v, %v]", d, min, max)
		}
	}
}

func TestRandomDelay_DegenerateRange(t *testing.T) {
	if got := RandomDelay(time.Second, time.Second); got != time.Second {
		t.Errorf("RandomDelay(1s, 1s) = %v, want 1s", got)
	}
	if got := RandomDelay(3*time.Second, time.Second); got != 3*time.Second {
		t.Errorf("RandomDelay(3s, 1s) = %v, want 3s", got)
	}
	if got := RandomDelay(0, 0); got != 0 {
		t.Errorf("RandomDelay(0, 0) = %v, want 0", got)
	}
}

func TestSleep_Elapses(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Sleep() error = %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("Sleep() returned early")
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Sleep(ctx, time.Hour); err != context.Canceled {
		t.Errorf("Sleep() error = %v, want context.Canceled", err)
	}
}
