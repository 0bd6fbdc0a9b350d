package models

import "time"

type Workspace struct {
	ID               string    `json:"id"                bson:"_id"`
	Name             string    `json:"name"              bson:"name"`
	Slug             string    `json:"slug"              bson:"slug"`
	Logo             string    `json:"logo,omitempty"    bson:"logo,omitempty"`
	OwnerID          string    `json:"owner"             bson:"owner"`
	OrganizationSize string    `json:"organization_size" bson:"organization_size"`
	TotalMembers     int       `json:"total_members"     bson:"total_members"`
	CreatedAt        time.Time `json:"created_at"        bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"        bson:"updated_at"`
}

func (w Workspace) GetID() string { return w.ID }

const (
	WorkspaceFieldSlug  = "slug"
	WorkspaceFieldOwner = "owner"
)
