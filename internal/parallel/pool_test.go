package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsAllJobs(t *testing.T) {
	p := New(3)
	defer p.Close()

	var n atomic.Int32
	jobs := make([]Job, 50)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			n.Add(1)
			return nil
		}
	}

	if err := p.Run(context.Background(), jobs); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := n.Load(); got != 50 {
		t.Errorf("executed %d jobs, want 50", got)
	}
}

func TestPoolJoinsErrors(t *testing.T) {
	p := New(2)
	defer p.Close()

	errA := errors.New("a")
	errB := errors.New("b")
	err := p.Run(context.Background(), []Job{
		func(context.Context) error { return errA },
		func(context.Context) error { return nil },
		func(context.Context) error { return errB },
	})
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Run() error = %v, want both a and b", err)
	}
}

func TestPoolCancelledContext(t *testing.T) {
	p := New(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	err := p.Run(ctx, []Job{func(context.Context) error {
		ran.Store(true)
		return nil
	}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if ran.Load() {
		t.Error("job ran after cancellation")
	}
}

func TestPoolClosed(t *testing.T) {
	p := New(1)
	p.Close()
	p.Close()

	err := p.Run(context.Background(), []Job{func(context.Context) error { return nil }})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Run() after Close error = %v, want ErrClosed", err)
	}
}

func TestPoolDefaultWorkers(t *testing.T) {
	p := New(0)
	defer p.Close()
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
}

// TestPoolRunRacingClose tests that a Run concurrent with Close either
// completes every job or reports ErrClosed, and never hangs.
func TestPoolRunRacingClose(t *testing.T) {
	for range 200 {
		p := New(2)
		var n atomic.Int32
		jobs := make([]Job, 32)
		for i := range jobs {
			jobs[i] = func(context.Context) error {
				n.Add(1)
				return nil
			}
		}

		done := make(chan error, 1)
		go func() { done <- p.Run(context.Background(), jobs) }()
		p.Close()

		select {
		case err := <-done:
			switch {
			case err == nil:
				if got := n.Load(); got != 32 {
					t.Fatalf("Run() = nil after %d of 32 jobs", got)
				}
			case errors.Is(err, ErrClosed):
				if got := n.Load(); got != 0 {
					t.Fatalf("Run() = ErrClosed after %d jobs ran", got)
				}
			default:
				t.Fatalf("Run() error = %v, want nil or ErrClosed", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Run() did not return after Close")
		}
	}
}
