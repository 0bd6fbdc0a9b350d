package repo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nikmy/datamaps/pkg/mongotools"
)

// filter is split into the part mongo evaluates and
// the predicates checked after decoding.
type filter struct {
	query bson.M
	fns   []func(any) bool
}

type Filter func(*filter)

func ByID(id string) Filter {
	return func(f *filter) {
		f.query = mongotools.Merge(f.query, mongotools.ID(id))
	}
}

// ByField matches documents whose field equals value. The value may
// also be an operator document, e.g. mongotools.In(ids).
func ByField(field string, value any) Filter {
	return func(f *filter) {
		f.query = mongotools.Merge(f.query, mongotools.Field(field, value))
	}
}

func Where[T any](filterFunc func(T) bool) Filter {
	check := func(x any) bool {
		t, ok := x.(T)
		return ok && filterFunc(t)
	}
	return func(f *filter) {
		f.fns = append(f.fns, check)
	}
}

func buildFilter(filters []Filter) filter {
	f := filter{query: mongotools.All()}
	for _, apply := range filters {
		apply(&f)
	}
	return f
}

func (f filter) match(x any) bool {
	for _, fn := range f.fns {
		if !fn(x) {
			return false
		}
	}
	return true
}
