package await

import (
	"context"
	"reflect"
)

// FromChan waits for a receive from ch. A closed channel
// counts as an event.
func FromChan[T any](ch chan T) Awaiter {
	return &chanAwaiter[T]{ch: ch}
}

type chanAwaiter[T any] struct {
	ch chan T
}

func (a *chanAwaiter[T]) Await(ctx context.Context) (waited bool) {
	select {
	case <-ctx.Done():
		return false
	case <-a.ch:
		return true
	}
}

func (a *chanAwaiter[T]) bind() reflect.SelectCase {
	return reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(a.ch),
	}
}
