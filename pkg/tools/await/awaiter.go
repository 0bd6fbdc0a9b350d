package await

import (
	"context"
	"reflect"
)

// Awaiter blocks until its event happens or ctx is done.
// Await reports whether the event happened.
type Awaiter interface {
	Await(ctx context.Context) (waited bool)
	bind() reflect.SelectCase
}
