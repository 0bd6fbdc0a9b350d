package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/nikmy/datamaps/pkg/errors"
	"github.com/nikmy/datamaps/pkg/logger"
)

// ChangesChannel is the Redis Pub/Sub channel shared by
// all replicas of one namespace.
func ChangesChannel(namespace string) string {
	return fmt.Sprintf("datamaps:%s:changes", namespace)
}

// NewRedisRelay mirrors local mutations to the replicas sharing the
// namespace and applies theirs to the local store. Events that carry
// this replica's origin are never applied back.
func NewRedisRelay(
	cfg RedisConfig,
	origin string,
	broker *Broker,
	store applier,
	log logger.Logger,
) (*RedisRelay, error) {
	if cfg.Namespace == "" {
		return nil, errors.Error("redis namespace cannot be empty")
	}
	if origin == "" {
		return nil, errors.Error("relay origin cannot be empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisRelay{
		rdb:     rdb,
		channel: ChangesChannel(cfg.Namespace),
		origin:  origin,
		broker:  broker,
		store:   store,
		log:     log.With("redis_relay"),
	}, nil
}

type RedisRelay struct {
	rdb     *redis.Client
	channel string
	origin  string
	broker  *Broker
	store   applier
	log     logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (r *RedisRelay) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Start returns once the Redis subscription is confirmed, so
// nothing published by peers afterwards is missed.
func (r *RedisRelay) Start(ctx context.Context) error {
	remote := r.rdb.Subscribe(ctx, r.channel)
	if _, err := remote.Receive(ctx); err != nil {
		_ = remote.Close()
		return errors.WrapFail(err, "subscribe to "+r.channel)
	}

	// replication cannot afford the drops view subscribers accept
	local := r.broker.SubscribeLossless()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() { _ = remote.Close() }()
		defer func() { _ = local.Close() }()

		r.loop(ctx, local, remote.Channel())
	}()

	return nil
}

func (r *RedisRelay) loop(ctx context.Context, local *Subscription, remote <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-local.Events():
			if !ok {
				return
			}
			if ev.Origin != r.origin {
				continue
			}
			r.log.Error(errors.WrapFail(r.forward(ctx, ev), "forward event"))
		case msg, ok := <-remote:
			if !ok {
				return
			}
			r.log.Error(errors.WrapFail(r.receive(msg.Payload), "apply remote event"))
		}
	}
}

func (r *RedisRelay) forward(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.WrapFail(err, "marshal event")
	}

	return r.rdb.Publish(ctx, r.channel, data).Err()
}

func (r *RedisRelay) receive(payload string) error {
	var ev Event
	err := json.Unmarshal([]byte(payload), &ev)
	if err != nil {
		return errors.WrapFail(err, "unmarshal event")
	}

	if ev.Origin == r.origin {
		return nil
	}

	return r.store.Apply(ev)
}

func (r *RedisRelay) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	return r.rdb.Close()
}
