package api

import (
	"context"

	"github.com/valyala/fasthttp"

	"github.com/nikmy/datamaps/internal/pubsub"
	"github.com/nikmy/datamaps/internal/repo/models"
)

type Server interface {
	Serve(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type subscriber interface {
	Subscribe(kind string, key string) *pubsub.Subscription
}

type syncer interface {
	Trigger() bool
}

type authorizer interface {
	Authorize(req *fasthttp.Request) (bool, error)
}

type collection[R models.Record] interface {
	Records() []R
	Record(id string) (R, bool)
	Add(records ...R)
	Delete(id string)
}
