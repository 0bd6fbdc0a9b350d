package repo

import (
	"time"
)

type MongoConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`

	Database string `yaml:"database"`

	Collections struct {
		Workspaces string `yaml:"workspaces"`
		Projects   string `yaml:"projects"`
		States     string `yaml:"states"`
		Issues     string `yaml:"issues"`
	} `yaml:"collections"`

	// Workspaces limits hydration to the listed workspace ids.
	Workspaces []string `yaml:"workspaces"`

	// SkipArchived leaves archived projects and their issues out.
	SkipArchived bool `yaml:"skipArchived"`

	// SnapshotReads makes Fetch read every collection at one
	// cluster time. Needs a replica set.
	SnapshotReads bool `yaml:"snapshotReads"`

	Auth struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`

	Pool struct {
		MinSize uint64 `yaml:"minSize"`
		MaxSize uint64 `yaml:"maxSize"`
	} `yaml:"pool"`
}

func (c *MongoConfig) setDefaults() {
	if c.Collections.Workspaces == "" {
		c.Collections.Workspaces = "workspaces"
	}
	if c.Collections.Projects == "" {
		c.Collections.Projects = "projects"
	}
	if c.Collections.States == "" {
		c.Collections.States = "states"
	}
	if c.Collections.Issues == "" {
		c.Collections.Issues = "issues"
	}
}
