package politely

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock drives a Runner without real sleeping.
type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (f *fakeClock) now() time.Time { return f.t }
func (f *fakeClock) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.t = f.t.Add(d)
}

func testRunner(minDelay, timeout time.Duration) (*Runner, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	r := NewRunner(minDelay, timeout)
	r.now = clock.now
	r.sleep = clock.sleep
	return r, clock
}

func TestFirstCallDoesNotWait(t *testing.T) {
	r, clock := testRunner(time.Second, 0)

	err := r.Do(context.Background(), func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(clock.slept) != 0 {
		t.Fatalf("first call should not sleep, slept %v", clock.slept)
	}
}

func TestSecondCallPaysDelay(t *testing.T) {
	r, clock := testRunner(1100*time.Millisecond, 0)
	noop := func(context.Context) error { return nil }

	r.Do(context.Background(), noop)
	r.Do(context.Background(), noop)

	if len(clock.slept) != 1 || clock.slept[0] != 1100*time.Millisecond {
		t.Fatalf("slept %v, want one sleep of 1.1s", clock.slept)
	}
}

func TestElapsedTimeReducesDelay(t *testing.T) {
	r, clock := testRunner(time.Second, 0)
	noop := func(context.Context) error { return nil }

	r.Do(context.Background(), noop)
	clock.t = clock.t.Add(700 * time.Millisecond)
	r.Do(context.Background(), noop)

	if len(clock.slept) != 1 || clock.slept[0] != 300*time.Millisecond {
		t.Fatalf("slept %v, want one sleep of 300ms", clock.slept)
	}

	// More than MinDelay elapsed: no sleep at all.
	clock.t = clock.t.Add(5 * time.Second)
	r.Do(context.Background(), noop)
	if len(clock.slept) != 1 {
		t.Fatalf("no extra sleep expected, slept %v", clock.slept)
	}
}

func TestTimeoutOnContext(t *testing.T) {
	r, _ := testRunner(0, 50*time.Millisecond)

	err := r.Do(context.Background(), func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatal("expected a deadline on the task context")
		}
		if time.Until(deadline) > 50*time.Millisecond {
			t.Fatalf("deadline too far out: %v", deadline)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestErrorPropagates(t *testing.T) {
	r, _ := testRunner(0, 0)
	want := errors.New("boom")

	err := r.Do(context.Background(), func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
