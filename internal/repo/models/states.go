package models

type StateGroup string

const (
	StateGroupBacklog   StateGroup = "backlog"
	StateGroupUnstarted StateGroup = "unstarted"
	StateGroupStarted   StateGroup = "started"
	StateGroupCompleted StateGroup = "completed"
	StateGroupCancelled StateGroup = "cancelled"
)

var StateGroups = [...]StateGroup{
	StateGroupBacklog,
	StateGroupUnstarted,
	StateGroupStarted,
	StateGroupCompleted,
	StateGroupCancelled,
}

type State struct {
	ID          string     `json:"id"        bson:"_id"`
	WorkspaceID string     `json:"workspace" bson:"workspace"`
	ProjectID   string     `json:"project"   bson:"project"`
	Name        string     `json:"name"      bson:"name"`
	Color       string     `json:"color"     bson:"color"`
	Group       StateGroup `json:"group"     bson:"group"`
	Sequence    float64    `json:"sequence"  bson:"sequence"`
	Default     bool       `json:"default"   bson:"default"`
}

func (s State) GetID() string { return s.ID }

const (
	StateFieldWorkspace = "workspace"
	StateFieldProject   = "project"
)
