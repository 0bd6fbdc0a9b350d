package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikmy/datamaps/internal/repo/models"
	"github.com/nikmy/datamaps/pkg/errors"
	"github.com/nikmy/datamaps/pkg/logger"
	"github.com/nikmy/datamaps/pkg/mongotools"
)

func NewMongoClient(ctx context.Context, log logger.Logger, cfg MongoConfig) (*MongoClient, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout)

	if cfg.Auth.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}
	if cfg.Pool.MinSize != 0 {
		opts.SetMinPoolSize(cfg.Pool.MinSize)
	}
	if cfg.Pool.MaxSize != 0 {
		opts.SetMaxPoolSize(cfg.Pool.MaxSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	return newMongoClient(client, log, cfg), nil
}

func newMongoClient(client *mongo.Client, log logger.Logger, cfg MongoConfig) *MongoClient {
	cfg.setDefaults()

	db := client.Database(cfg.Database)
	return &MongoClient{
		c:          client,
		cfg:        cfg,
		log:        log.With("mongo"),
		workspaces: NewRepo[models.Workspace](db.Collection(cfg.Collections.Workspaces)),
		projects:   NewRepo[models.Project](db.Collection(cfg.Collections.Projects)),
		states:     NewRepo[models.State](db.Collection(cfg.Collections.States)),
		issues:     NewRepo[models.Issue](db.Collection(cfg.Collections.Issues)),
	}
}

// MongoClient is the upstream source the data maps are hydrated from.
// Nothing is ever written back.
type MongoClient struct {
	c   *mongo.Client
	cfg MongoConfig
	log logger.Logger

	workspaces *Repo[models.Workspace]
	projects   *Repo[models.Project]
	states     *Repo[models.State]
	issues     *Repo[models.Issue]
}

// Fetch reads every kind. With snapshot reads enabled all four
// collections are read at the same cluster time.
func (m *MongoClient) Fetch(ctx context.Context) (models.Snapshot, error) {
	if !m.cfg.SnapshotReads {
		return m.fetch(ctx)
	}

	session, err := m.c.StartSession(options.Session().SetSnapshot(true))
	if err != nil {
		return models.Snapshot{}, errors.WrapFail(err, "start snapshot session")
	}
	defer session.EndSession(ctx)

	var snap models.Snapshot
	err = mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		snap, err = m.fetch(sc)
		return err
	})
	return snap, err
}

func (m *MongoClient) fetch(ctx context.Context) (models.Snapshot, error) {
	var (
		snap models.Snapshot
		err  error
	)

	inScope := func(field string) []Filter {
		if len(m.cfg.Workspaces) == 0 {
			return nil
		}
		return []Filter{ByField(field, mongotools.In(m.cfg.Workspaces))}
	}

	snap.Workspaces, err = m.workspaces.Select(ctx, inScope("_id")...)
	if err != nil {
		return models.Snapshot{}, errors.WrapFail(err, "fetch workspaces")
	}

	projectFilters := inScope(models.ProjectFieldWorkspace)
	if m.cfg.SkipArchived {
		projectFilters = append(projectFilters, ByField(models.ProjectFieldArchived, bson.M{"$ne": true}))
	}

	snap.Projects, err = m.projects.Select(ctx, projectFilters...)
	if err != nil {
		return models.Snapshot{}, errors.WrapFail(err, "fetch projects")
	}

	snap.States, err = m.states.Select(ctx, inScope(models.StateFieldWorkspace)...)
	if err != nil {
		return models.Snapshot{}, errors.WrapFail(err, "fetch states")
	}

	issueFilters := inScope(models.IssueFieldWorkspace)
	if m.cfg.SkipArchived {
		live := make(map[string]struct{}, len(snap.Projects))
		for _, p := range snap.Projects {
			live[p.ID] = struct{}{}
		}
		issueFilters = append(issueFilters, Where(func(i models.Issue) bool {
			_, ok := live[i.ProjectID]
			return ok
		}))
	}

	snap.Issues, err = m.issues.Select(ctx, issueFilters...)
	if err != nil {
		return models.Snapshot{}, errors.WrapFail(err, "fetch issues")
	}

	m.log.Debugf(
		"fetched %d workspaces, %d projects, %d states, %d issues",
		len(snap.Workspaces), len(snap.Projects), len(snap.States), len(snap.Issues),
	)

	return snap, nil
}

func (m *MongoClient) Close(ctx context.Context) error {
	err := m.c.Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}
