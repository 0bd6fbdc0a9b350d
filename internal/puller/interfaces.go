package puller

import (
	"context"

	"github.com/nikmy/datamaps/internal/repo/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks_test.go -package=puller

type source interface {
	Fetch(ctx context.Context) (models.Snapshot, error)
}

type sink interface {
	Load(snap models.Snapshot, prune bool)
}
