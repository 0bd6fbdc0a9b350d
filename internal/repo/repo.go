package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nikmy/datamaps/pkg/errors"
	"github.com/nikmy/datamaps/pkg/mongotools"
)

// Repo is a read-only view of one upstream collection.
type Repo[T any] struct {
	coll *mongo.Collection
}

func NewRepo[T any](coll *mongo.Collection) *Repo[T] {
	return &Repo[T]{coll: coll}
}

func (r *Repo[T]) Select(ctx context.Context, filters ...Filter) ([]T, error) {
	f := buildFilter(filters)

	c, err := r.coll.Find(ctx, f.query)
	if err != nil {
		return nil, errors.WrapFailf(err, "find in %s", r.coll.Name())
	}

	var check func(T) bool
	if len(f.fns) != 0 {
		check = func(item T) bool { return f.match(item) }
	}

	selected, err := mongotools.FilterFunc(ctx, c, check)
	return selected, errors.WrapFailf(err, "select from %s", r.coll.Name())
}
