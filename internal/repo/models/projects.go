package models

import "time"

type Project struct {
	ID          string    `json:"id"          bson:"_id"`
	WorkspaceID string    `json:"workspace"   bson:"workspace"`
	Name        string    `json:"name"        bson:"name"`
	Identifier  string    `json:"identifier"  bson:"identifier"`
	Description string    `json:"description" bson:"description"`
	Network     int       `json:"network"     bson:"network"`
	Archived    bool      `json:"archived"    bson:"archived"`
	MemberIDs   []string  `json:"members"     bson:"members"`
	CreatedAt   time.Time `json:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  bson:"updated_at"`
}

func (p Project) GetID() string { return p.ID }

const (
	ProjectFieldWorkspace = "workspace"
	ProjectFieldArchived  = "archived"
)
