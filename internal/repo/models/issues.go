package models

import "time"

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

var Priorities = [...]Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow, PriorityNone}

type Issue struct {
	ID          string   `json:"id"         bson:"_id"`
	WorkspaceID string   `json:"workspace"  bson:"workspace"`
	ProjectID   string   `json:"project"    bson:"project"`
	SequenceID  int      `json:"sequence_id" bson:"sequence_id"`
	Name        string   `json:"name"       bson:"name"`
	Priority    Priority `json:"priority"   bson:"priority"`
	StateID     string   `json:"state_id"   bson:"state_id"`
	ParentID    string   `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	CreatedBy   string   `json:"created_by" bson:"created_by"`

	LabelIDs    []string `json:"label_ids"    bson:"label_ids"`
	AssigneeIDs []string `json:"assignee_ids" bson:"assignee_ids"`
	MentionIDs  []string `json:"mention_ids"  bson:"mention_ids"`

	StartDate  *time.Time `json:"start_date,omitempty"  bson:"start_date,omitempty"`
	TargetDate *time.Time `json:"target_date,omitempty" bson:"target_date,omitempty"`

	SubIssuesCount  int `json:"sub_issues_count" bson:"sub_issues_count"`
	LinkCount       int `json:"link_count"       bson:"link_count"`
	AttachmentCount int `json:"attachment_count" bson:"attachment_count"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (i Issue) GetID() string { return i.ID }

const (
	IssueFieldWorkspace = "workspace"
	IssueFieldProject   = "project"
	IssueFieldState     = "state_id"
)
