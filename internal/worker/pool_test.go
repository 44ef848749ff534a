package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(4, 16)
	out := p.Run(context.Background())

	var ran atomic.Int64
	for i := 0; i < 16; i++ {
		p.Submit(func(context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	p.Close()

	var results int
	for r := range out {
		if r.Err != nil {
			t.Fatalf("unexpected err: %v", r.Err)
		}
		results++
	}
	if results != 16 {
		t.Fatalf("expected 16 results, got %d", results)
	}
	if ran.Load() != 16 {
		t.Fatalf("expected 16 tasks run, got %d", ran.Load())
	}
}

func TestPool_FailureDoesNotStopOthers(t *testing.T) {
	p := NewPool(2, 8)
	out := p.Run(context.Background())

	boom := errors.New("boom")
	for i := 0; i < 8; i++ {
		i := i
		p.Submit(func(context.Context) error {
			if i == 3 {
				return boom
			}
			return nil
		})
	}
	p.Close()

	var failed, ok int
	for r := range out {
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	if failed != 1 || ok != 7 {
		t.Fatalf("expected 1 failure and 7 successes, got %d/%d", failed, ok)
	}
}

func TestPool_CancelStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool(1, 0)
	out := p.Run(ctx)

	started := make(chan struct{})
	go p.Submit(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	<-started
	cancel()

	select {
	case _, open := <-out:
		if open {
			// A result may drain before close; the channel must still close.
			if _, open := <-out; open {
				t.Fatalf("expected result channel to close after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pool did not stop after cancel")
	}
}
