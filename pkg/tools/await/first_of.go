package await

import (
	"context"
	"reflect"
)

// FirstOf waits for whichever awaiter fires first.
func FirstOf(waiters ...Awaiter) Awaiter {
	cases := make([]reflect.SelectCase, 0, len(waiters)+1)
	for _, a := range waiters {
		cases = append(cases, a.bind())
	}

	return &firstOfAwaiter{cases: cases}
}

type firstOfAwaiter struct {
	cases []reflect.SelectCase
}

func (a *firstOfAwaiter) Await(ctx context.Context) (waited bool) {
	n := len(a.cases)

	cases := append(a.cases[:n:n], reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(ctx.Done()),
	})

	choice, _, _ := reflect.Select(cases)
	return choice != n
}

func (a *firstOfAwaiter) bind() reflect.SelectCase {
	panic("await: avoid combine combinators")
}
