package workers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeWorker struct {
	name string
	err  error
}

func (f *fakeWorker) Name() string { return f.name }

func (f *fakeWorker) Start(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return nil
}

func TestGroupFailureCancelsPeers(t *testing.T) {
	boom := errors.New("listen failed")
	g := Group{
		&fakeWorker{name: "steady"},
		&fakeWorker{name: "broken", err: boom},
	}

	done := make(chan error, 1)
	go func() { done <- g.Start(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want the worker failure", err)
		}
		if !strings.Contains(err.Error(), "broken") {
			t.Errorf("err = %q, want the failing worker's name", err)
		}
	case <-time.After(time.Second):
		t.Fatal("group did not stop after a worker failed")
	}
}

func TestGroupStopsOnContextCancel(t *testing.T) {
	g := Group{&fakeWorker{name: "steady"}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("err = %v, want clean shutdown", err)
		}
	case <-time.After(time.Second):
		t.Fatal("group did not stop after context cancellation")
	}
}
