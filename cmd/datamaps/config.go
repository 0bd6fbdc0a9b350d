package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nikmy/datamaps/internal/api"
	"github.com/nikmy/datamaps/internal/datastore"
	"github.com/nikmy/datamaps/internal/pubsub"
	"github.com/nikmy/datamaps/internal/puller"
	"github.com/nikmy/datamaps/internal/repo"
	"github.com/nikmy/datamaps/pkg/environment"
	"github.com/nikmy/datamaps/pkg/errors"
)

type Config struct {
	Environment environment.Env    `yaml:"Environment"`
	Store       datastore.Config   `yaml:"Store"`
	PubSub      pubsub.Config      `yaml:"PubSub"`
	Redis       pubsub.RedisConfig `yaml:"Redis"`
	Mongo       repo.MongoConfig   `yaml:"Mongo"`
	Sync        puller.Config      `yaml:"Sync"`
	API         api.Config         `yaml:"API"`
}

func loadConfig(file string, env string) (*Config, error) {
	path, err := filepath.Abs(file)
	if err != nil {
		return nil, errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFailf(err, "read %q", file)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "parse yaml")
	}

	if env != "" {
		cfg.Environment = environment.FromString(env)
	}

	return &cfg, nil
}
