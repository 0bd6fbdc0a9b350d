package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikmy/datamaps/internal/datastore"
	"github.com/nikmy/datamaps/internal/repo"
	"github.com/nikmy/datamaps/internal/repo/models"
	"github.com/nikmy/datamaps/pkg/errors"
	"github.com/nikmy/datamaps/pkg/logger"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch one snapshot from mongo and print entity counts",
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath, envName)
	if err != nil {
		return errors.WrapFail(err, "load config")
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	source, err := repo.NewMongoClient(ctx, log, cfg.Mongo)
	if err != nil {
		return errors.WrapFail(err, "init mongo source")
	}
	defer func() { log.Warn(source.Close(context.Background())) }()

	snap, err := source.Fetch(ctx)
	if err != nil {
		return errors.WrapFail(err, "fetch snapshot")
	}

	store := datastore.New(cfg.Store, nil, log)
	store.Load(snap, false)

	stats := store.Stats()
	for _, kind := range models.Kinds {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", kind, stats[kind])
	}
	return nil
}
