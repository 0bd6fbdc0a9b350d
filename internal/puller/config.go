package puller

import "time"

const defaultInterval = time.Minute

type Config struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`

	// Prune deletes entries that disappeared upstream.
	Prune bool `yaml:"prune"`
}
