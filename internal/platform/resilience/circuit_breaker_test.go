package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, timeout time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: threshold, OpenTimeout: timeout, HalfOpenMaxReq: 1})
	now := time.Date(2024, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2, 5*time.Second)

	var transitions []string
	b.OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+"->"+string(to))
	})

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []string{"closed->open", "open->half_open", "half_open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("transitions=%v want=%v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transitions=%v want=%v", transitions, want)
		}
	}
}

func TestCircuitBreaker_Do(t *testing.T) {
	b, _ := newTestBreaker(1, time.Minute)
	errPermanent := errors.New("not found")
	errTransient := errors.New("timeout")
	isTransient := func(err error) bool { return errors.Is(err, errTransient) }

	if err := b.Do(func() error { return errPermanent }, isTransient); !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error passthrough, got %v", err)
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("permanent errors must not trip the breaker")
	}

	_ = b.Do(func() error { return errTransient }, isTransient)
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected breaker to open, got %s", b.State())
	}

	called := false
	if err := b.Do(func() error { called = true; return nil }, isTransient); !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected rejected call, err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_DisabledAlwaysRuns(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return boom }, nil); !errors.Is(err, boom) {
			t.Fatalf("expected fn error, got %v", err)
		}
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("disabled breaker must stay closed")
	}
}
