package datastore

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nikmy/datamaps/internal/pubsub"
	"github.com/nikmy/datamaps/internal/repo/models"
	"github.com/nikmy/datamaps/pkg/errors"
	"github.com/nikmy/datamaps/pkg/logger"
)

type Config struct {
	// Origin identifies this replica in published events.
	// Random when empty.
	Origin string `yaml:"origin"`
}

// DataStore owns the data maps of every entity kind. It is built
// once per process and handed to consumers explicitly; models keep
// a pointer back to it for cross-kind lookups only.
type DataStore struct {
	Workspaces *WorkspaceData
	Projects   *ProjectData
	States     *StateData
	Issues     *IssueData

	origin string
	pub    pubsub.Publisher
	log    logger.Logger
}

func New(cfg Config, pub pubsub.Publisher, log logger.Logger) *DataStore {
	origin := cfg.Origin
	if origin == "" {
		origin = uuid.NewString()
	}

	s := &DataStore{
		origin: origin,
		pub:    pub,
		log:    log.With("datastore"),
	}

	s.Workspaces = &WorkspaceData{newCollection(s, models.KindWorkspace, s.newWorkspaceModel)}
	s.Projects = &ProjectData{newCollection(s, models.KindProject, s.newProjectModel)}
	s.States = &StateData{newCollection(s, models.KindState, s.newStateModel)}
	s.Issues = &IssueData{newCollection(s, models.KindIssue, s.newIssueModel)}

	return s
}

func (s *DataStore) Origin() string {
	return s.origin
}

// Load upserts a full upstream snapshot. With prune, entries the
// snapshot no longer lists are deleted. Parents go first so that
// views reacting to child events can already resolve them.
func (s *DataStore) Load(snap models.Snapshot, prune bool) {
	s.Workspaces.Add(snap.Workspaces...)
	s.Projects.Add(snap.Projects...)
	s.States.Add(snap.States...)
	s.Issues.Add(snap.Issues...)

	if !prune {
		return
	}

	s.Issues.prune(s.origin, snap.Issues)
	s.States.prune(s.origin, snap.States)
	s.Projects.prune(s.origin, snap.Projects)
	s.Workspaces.prune(s.origin, snap.Workspaces)
}

// Apply replays a mutation made by another replica.
func (s *DataStore) Apply(ev pubsub.Event) error {
	var err error

	switch models.Kind(ev.Kind) {
	case models.KindWorkspace:
		err = s.Workspaces.apply(ev)
	case models.KindProject:
		err = s.Projects.apply(ev)
	case models.KindState:
		err = s.States.apply(ev)
	case models.KindIssue:
		err = s.Issues.apply(ev)
	default:
		err = errors.Errorf("unknown entity kind %q", ev.Kind)
	}

	return errors.WrapFailf(err, "apply %s event from %s", ev.Op, ev.Origin)
}

// Reset tears the session down.
func (s *DataStore) Reset() {
	s.Issues.Reset()
	s.States.Reset()
	s.Projects.Reset()
	s.Workspaces.Reset()
}

func (s *DataStore) Stats() map[models.Kind]int {
	return map[models.Kind]int{
		models.KindWorkspace: s.Workspaces.Len(),
		models.KindProject:   s.Projects.Len(),
		models.KindState:     s.States.Len(),
		models.KindIssue:     s.Issues.Len(),
	}
}

// notifyUpsert skips records that cannot be encoded: a payload-less
// upsert would fail to apply on every peer.
func (s *DataStore) notifyUpsert(kind models.Kind, r models.Record, origin string) {
	payload, err := json.Marshal(r)
	if err != nil {
		s.log.Error(errors.WrapFailf(err, "marshal %s %s for event", kind, r.GetID()))
		return
	}

	ev := pubsub.NewEvent(string(kind), r.GetID(), pubsub.OpUpsert, origin)
	ev.Payload = payload

	s.notify(ev)
}

func (s *DataStore) notify(ev pubsub.Event) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(ev)
}
