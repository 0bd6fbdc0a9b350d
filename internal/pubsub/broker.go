package pubsub

import (
	"sync"
	"sync/atomic"

	"github.com/nikmy/datamaps/pkg/logger"
)

type topic struct {
	kind string
	key  string
}

func NewBroker(cfg Config, log logger.Logger) *Broker {
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	return &Broker{
		subs:   make(map[topic]map[uint64]*Subscription),
		buffer: buffer,
		log:    log.With("broker"),
	}
}

// Broker fans change events out to in-process subscribers.
// Publish never blocks: a subscriber with a full buffer
// misses the event and has it counted in Dropped. Lossless
// subscribers queue instead.
type Broker struct {
	mu     sync.RWMutex
	subs   map[topic]map[uint64]*Subscription
	nextID uint64
	buffer int
	log    logger.Logger
}

// Subscribe to changes of one key (kind and key set), of a whole
// collection (key empty) or of everything (kind and key empty).
func (b *Broker) Subscribe(kind string, key string) *Subscription {
	if kind == "" {
		key = ""
	}

	return b.subscribe(topic{kind: kind, key: key}, b.buffer, nil)
}

// SubscribeLossless receives every event and never drops one.
// Events the reader has not taken yet queue up in memory, so
// only consumers that keep draining should use it.
func (b *Broker) SubscribeLossless() *Subscription {
	q := &eventQueue{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}

	s := b.subscribe(topic{}, 0, q)
	go s.pump()

	return s
}

func (b *Broker) subscribe(t topic, buffer int, q *eventQueue) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := &Subscription{
		id:     b.nextID,
		topic:  t,
		events: make(chan Event, buffer),
		queue:  q,
		broker: b,
	}

	byID, ok := b.subs[s.topic]
	if !ok {
		byID = make(map[uint64]*Subscription)
		b.subs[s.topic] = byID
	}
	byID[s.id] = s

	return s
}

func (b *Broker) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ev.Key == "" {
		for t, byID := range b.subs {
			if t.kind == "" || t.kind == ev.Kind {
				b.deliver(byID, ev)
			}
		}
		return
	}

	b.deliver(b.subs[topic{kind: ev.Kind, key: ev.Key}], ev)
	b.deliver(b.subs[topic{kind: ev.Kind}], ev)
	b.deliver(b.subs[topic{}], ev)
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, byID := range b.subs {
		n += len(byID)
	}
	return n
}

func (b *Broker) deliver(to map[uint64]*Subscription, ev Event) {
	for _, s := range to {
		if s.queue != nil {
			s.queue.push(ev)
			continue
		}

		select {
		case s.events <- ev:
		default:
			s.dropped.Add(1)
			b.log.Debugf("subscription %d is full, dropped %s %s/%s", s.id, ev.Op, ev.Kind, ev.Key)
		}
	}
}

func (b *Broker) unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	byID := b.subs[s.topic]
	delete(byID, s.id)
	if len(byID) == 0 {
		delete(b.subs, s.topic)
	}

	if s.queue != nil {
		// pump owns the channel
		close(s.queue.done)
		return
	}
	close(s.events)
}

type Subscription struct {
	id      uint64
	topic   topic
	events  chan Event
	queue   *eventQueue
	broker  *Broker
	dropped atomic.Uint64
	once    sync.Once
}

// Events is closed after Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close is safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(func() { s.broker.unsubscribe(s) })
	return nil
}

// Pending is the number of queued events of a lossless
// subscription not handed to the reader yet.
func (s *Subscription) Pending() int {
	if s.queue == nil {
		return 0
	}
	return s.queue.len()
}

func (s *Subscription) pump() {
	defer close(s.events)

	for {
		select {
		case <-s.queue.done:
			return
		case <-s.queue.ready:
		}

		for _, ev := range s.queue.take() {
			select {
			case s.events <- ev:
			case <-s.queue.done:
				return
			}
		}
	}
}

type eventQueue struct {
	mu     sync.Mutex
	events []Event
	ready  chan struct{}
	done   chan struct{}
}

func (q *eventQueue) push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *eventQueue) take() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = nil
	return events
}

func (q *eventQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.events)
}
