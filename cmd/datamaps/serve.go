package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikmy/datamaps/internal/api"
	"github.com/nikmy/datamaps/internal/datastore"
	"github.com/nikmy/datamaps/internal/pubsub"
	"github.com/nikmy/datamaps/internal/puller"
	"github.com/nikmy/datamaps/internal/repo"
	"github.com/nikmy/datamaps/pkg/errors"
	"github.com/nikmy/datamaps/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Hydrate the data maps and serve them over HTTP",
	RunE:  runServe,
}

type trigger interface {
	Trigger() bool
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath, envName)
	if err != nil {
		return errors.WrapFail(err, "load config")
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	broker := pubsub.NewBroker(cfg.PubSub, log)
	store := datastore.New(cfg.Store, broker, log)
	log.Infof("replica origin %s", store.Origin())

	if cfg.Redis.Enabled {
		relay, err := pubsub.NewRedisRelay(cfg.Redis, store.Origin(), broker, store, log)
		if err != nil {
			return errors.WrapFail(err, "init redis relay")
		}
		defer func() { log.Warn(errors.WrapFail(relay.Close(), "close redis relay")) }()

		err = relay.Ping(ctx)
		if err != nil {
			return errors.WrapFail(err, "ping redis")
		}

		err = relay.Start(ctx)
		if err != nil {
			return errors.WrapFail(err, "start redis relay")
		}
	}

	var sync trigger
	if cfg.Sync.Enabled {
		source, err := repo.NewMongoClient(ctx, log, cfg.Mongo)
		if err != nil {
			return errors.WrapFail(err, "init mongo source")
		}

		p := puller.NewPuller(cfg.Sync, source, store, log)
		stopPuller := goRun(ctx, p)
		defer func() {
			// the puller may still be fetching
			stopPuller()

			closeCtx, cancelClose := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancelClose()
			log.Warn(source.Close(closeCtx))
		}()
		sync = p
	}

	server := api.NewServer(cfg.API, log, store, broker, sync)

	log.Infof("serving on %s", cfg.API.HTTP.Addr)
	serveErr := server.Serve(ctx)

	log.Infof("graceful shutdown...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	return errors.Join(serveErr, server.Shutdown(shutdownCtx))
}

type runner interface {
	Run(ctx context.Context)
}

// goRun starts r in background. The returned func cancels it
// and waits until Run returns.
func goRun(ctx context.Context, r runner) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		r.Run(ctx)
	}()

	return func() {
		cancel()
		<-done
	}
}
