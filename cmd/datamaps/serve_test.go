package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type blockingRunner struct {
	started  chan struct{}
	finished atomic.Bool
}

func (r *blockingRunner) Run(ctx context.Context) {
	close(r.started)
	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)
	r.finished.Store(true)
}

func TestGoRun(t *testing.T) {
	type testcase struct {
		name        string
		cancelFirst bool
	}

	tests := [...]testcase{
		{name: "stop cancels and waits"},
		{name: "parent canceled before stop", cancelFirst: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			r := &blockingRunner{started: make(chan struct{})}
			stop := goRun(ctx, r)
			<-r.started

			if tt.cancelFirst {
				cancel()
			}

			stop()
			require.True(t, r.finished.Load())
		})
	}
}
