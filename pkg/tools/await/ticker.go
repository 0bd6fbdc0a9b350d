package await

import (
	"context"
	"reflect"
	"time"
)

type Ticker struct {
	t *time.Ticker
}

func Tick(interval time.Duration) *Ticker {
	return &Ticker{time.NewTicker(interval)}
}

func (t *Ticker) Await(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-t.t.C:
		return true
	}
}

func (t *Ticker) Stop() {
	t.t.Stop()
}

func (t *Ticker) bind() reflect.SelectCase {
	return reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(t.t.C),
	}
}
