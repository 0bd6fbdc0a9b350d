package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/nikmy/datamaps/pkg/logger"
)

type recordingApplier struct {
	mu      sync.Mutex
	applied []Event
}

func (a *recordingApplier) Apply(ev Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applied = append(a.applied, ev)
	return nil
}

func (a *recordingApplier) Applied() []Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Event(nil), a.applied...)
}

func setupRelay(t *testing.T, mr *miniredis.Miniredis, origin string) (*RedisRelay, *Broker, *recordingApplier) {
	broker := NewBroker(Config{}, logger.NewStub())
	store := &recordingApplier{}

	relay, err := NewRedisRelay(RedisConfig{Addr: mr.Addr(), Namespace: "test"}, origin, broker, store, logger.NewStub())
	require.NoError(t, err)
	require.NoError(t, relay.Start(context.Background()))
	t.Cleanup(func() { _ = relay.Close() })

	return relay, broker, store
}

func TestNewRedisRelay(t *testing.T) {
	broker := NewBroker(Config{}, logger.NewStub())

	_, err := NewRedisRelay(RedisConfig{Addr: "localhost:6379"}, "a", broker, &recordingApplier{}, logger.NewStub())
	require.ErrorContains(t, err, "namespace cannot be empty")

	_, err = NewRedisRelay(RedisConfig{Addr: "localhost:6379", Namespace: "x"}, "", broker, &recordingApplier{}, logger.NewStub())
	require.ErrorContains(t, err, "origin cannot be empty")
}

func TestRedisRelay_Mirrors(t *testing.T) {
	mr := miniredis.RunT(t)

	_, brokerA, storeA := setupRelay(t, mr, "replica-a")
	_, _, storeB := setupRelay(t, mr, "replica-b")

	ev := NewEvent("workspace", "w1", OpUpsert, "replica-a")
	ev.Payload = json.RawMessage(`{"id":"w1","name":"Acme"}`)
	brokerA.Publish(ev)

	require.Eventually(t, func() bool {
		return len(storeB.Applied()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	got := storeB.Applied()[0]
	require.Equal(t, ev.ID, got.ID)
	require.Equal(t, "replica-a", got.Origin)
	require.JSONEq(t, string(ev.Payload), string(got.Payload))

	// the publisher never applies its own event
	require.Never(t, func() bool {
		return len(storeA.Applied()) != 0
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestRedisRelay_SkipsForeignLocalEvents(t *testing.T) {
	mr := miniredis.RunT(t)

	_, brokerA, _ := setupRelay(t, mr, "replica-a")
	_, _, storeB := setupRelay(t, mr, "replica-b")

	// already applied from a third replica, must not be forwarded again
	brokerA.Publish(NewEvent("issue", "i1", OpDelete, "replica-c"))

	require.Never(t, func() bool {
		return len(storeB.Applied()) != 0
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestRedisRelay_SkipsMalformed(t *testing.T) {
	mr := miniredis.RunT(t)

	_, _, store := setupRelay(t, mr, "replica-a")

	mr.Publish(ChangesChannel("test"), "{not json")
	mr.Publish(ChangesChannel("test"), `{"kind":"state","key":"s1","op":"delete","origin":"replica-z"}`)

	require.Eventually(t, func() bool {
		return len(store.Applied()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, "s1", store.Applied()[0].Key)
}

func TestRedisRelay_BurstLargerThanBuffer(t *testing.T) {
	mr := miniredis.RunT(t)

	_, brokerA, _ := setupRelay(t, mr, "replica-a")
	_, _, storeB := setupRelay(t, mr, "replica-b")

	// a view subscriber on the same broker overflows, the relay must not
	view := brokerA.Subscribe("", "")

	const n = 500
	for i := range n {
		brokerA.Publish(NewEvent("issue", fmt.Sprintf("i%d", i), OpDelete, "replica-a"))
	}

	require.Eventually(t, func() bool {
		return len(storeB.Applied()) == n
	}, 5*time.Second, 10*time.Millisecond)

	applied := storeB.Applied()
	for i, ev := range applied {
		require.Equal(t, fmt.Sprintf("i%d", i), ev.Key)
	}
	require.NotZero(t, view.Dropped())
}
