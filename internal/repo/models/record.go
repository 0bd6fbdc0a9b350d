package models

// Record is a server-defined entity as the upstream API returns it.
// Records are replaced as a whole, never patched in place.
type Record interface {
	GetID() string
}

type Kind string

const (
	KindWorkspace Kind = "workspace"
	KindProject   Kind = "project"
	KindState     Kind = "state"
	KindIssue     Kind = "issue"
)

var Kinds = [...]Kind{KindWorkspace, KindProject, KindState, KindIssue}

// Snapshot is a full upstream listing of every kind.
type Snapshot struct {
	Workspaces []Workspace `json:"workspaces"`
	Projects   []Project   `json:"projects"`
	States     []State     `json:"states"`
	Issues     []Issue     `json:"issues"`
}
