package puller

import (
	"context"

	"github.com/nikmy/datamaps/pkg/errors"
	"github.com/nikmy/datamaps/pkg/logger"
	"github.com/nikmy/datamaps/pkg/tools/await"
)

func NewPuller(cfg Config, src source, dst sink, log logger.Logger) *Puller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}

	return &Puller{
		cfg:     cfg,
		src:     src,
		dst:     dst,
		trigger: make(chan struct{}, 1),
		log:     log.With("puller"),
	}
}

// Puller keeps the data maps in sync with the upstream source.
type Puller struct {
	cfg     Config
	src     source
	dst     sink
	trigger chan struct{}
	log     logger.Logger
}

// DoWork runs one resync. On error the store is left untouched.
func (p *Puller) DoWork(ctx context.Context) error {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	snap, err := p.src.Fetch(ctx)
	if err != nil {
		return errors.WrapFail(err, "fetch snapshot from source")
	}

	p.dst.Load(snap, p.cfg.Prune)
	return nil
}

// Run resyncs at start, then on every tick or trigger until ctx is done.
func (p *Puller) Run(ctx context.Context) {
	tick := await.Tick(p.cfg.Interval)
	defer tick.Stop()

	next := await.FirstOf(tick, await.FromChan(p.trigger))

	for {
		err := p.DoWork(ctx)
		if err != nil {
			p.log.Error(err)
		}

		if !next.Await(ctx) {
			p.log.Infof("stopped")
			return
		}
	}
}

// Trigger asks Run for an immediate resync. Requests made while
// one is already pending are coalesced.
func (p *Puller) Trigger() bool {
	select {
	case p.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}
