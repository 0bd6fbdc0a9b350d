package pubsub

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikmy/datamaps/pkg/logger"
)

func drain(s *Subscription) []Event {
	var got []Event
	for {
		select {
		case ev := <-s.Events():
			got = append(got, ev)
		default:
			return got
		}
	}
}

func TestBroker_Publish(t *testing.T) {
	type testcase struct {
		name string
		ev   Event

		wantKey  int
		wantKind int
		wantAll  int
		wantPeer int
	}

	tests := [...]testcase{
		{
			name:     "same key reaches every level",
			ev:       NewEvent("workspace", "w1", OpUpsert, "a"),
			wantKey:  1,
			wantKind: 1,
			wantAll:  1,
		},
		{
			name:     "other key skips key subscriber",
			ev:       NewEvent("workspace", "w2", OpDelete, "a"),
			wantKind: 1,
			wantAll:  1,
		},
		{
			name:     "other kind reaches only wildcard",
			ev:       NewEvent("project", "p1", OpUpsert, "a"),
			wantAll:  1,
			wantPeer: 1,
		},
		{
			name:     "reset reaches key subscribers of the kind",
			ev:       NewEvent("workspace", "", OpReset, "a"),
			wantKey:  1,
			wantKind: 1,
			wantAll:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBroker(Config{}, logger.NewStub())

			byKey := b.Subscribe("workspace", "w1")
			byKind := b.Subscribe("workspace", "")
			all := b.Subscribe("", "ignored")
			peer := b.Subscribe("project", "")

			b.Publish(tt.ev)

			require.Len(t, drain(byKey), tt.wantKey)
			require.Len(t, drain(byKind), tt.wantKind)
			require.Len(t, drain(all), tt.wantAll)
			require.Len(t, drain(peer), tt.wantPeer)
		})
	}
}

func TestBroker_FullBufferDrops(t *testing.T) {
	b := NewBroker(Config{Buffer: 2}, logger.NewStub())
	s := b.Subscribe("issue", "")

	for range 5 {
		b.Publish(NewEvent("issue", "i1", OpUpsert, "a"))
	}

	require.Len(t, drain(s), 2)
	require.EqualValues(t, 3, s.Dropped())
}

func TestSubscription_Close(t *testing.T) {
	b := NewBroker(Config{}, logger.NewStub())
	s := b.Subscribe("state", "s1")
	require.Equal(t, 1, b.Subscribers())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.Equal(t, 0, b.Subscribers())

	_, open := <-s.Events()
	require.False(t, open)

	require.NotPanics(t, func() {
		b.Publish(NewEvent("state", "s1", OpUpsert, "a"))
	})
}

func TestBroker_LosslessKeepsEverything(t *testing.T) {
	b := NewBroker(Config{Buffer: 2}, logger.NewStub())
	lossy := b.Subscribe("", "")
	lossless := b.SubscribeLossless()

	const n = 500
	for i := range n {
		b.Publish(NewEvent("issue", fmt.Sprintf("i%d", i), OpDelete, "a"))
	}

	got := make([]string, 0, n)
	for len(got) < n {
		select {
		case ev := <-lossless.Events():
			got = append(got, ev.Key)
		case <-time.After(2 * time.Second):
			t.Fatalf("received %d of %d events", len(got), n)
		}
	}

	for i, key := range got {
		require.Equal(t, fmt.Sprintf("i%d", i), key)
	}
	require.Zero(t, lossless.Dropped())
	require.Zero(t, lossless.Pending())
	require.EqualValues(t, n-2, lossy.Dropped())
}

func TestSubscription_CloseLossless(t *testing.T) {
	b := NewBroker(Config{}, logger.NewStub())
	s := b.SubscribeLossless()
	b.Publish(NewEvent("state", "s1", OpDelete, "a"))

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.Equal(t, 0, b.Subscribers())

	require.Eventually(t, func() bool {
		for {
			select {
			case _, open := <-s.Events():
				if !open {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 10*time.Millisecond)

	require.NotPanics(t, func() {
		b.Publish(NewEvent("state", "s1", OpUpsert, "a"))
	})
}
