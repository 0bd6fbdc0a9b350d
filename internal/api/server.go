package api

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/nikmy/datamaps/internal/datastore"
	"github.com/nikmy/datamaps/internal/filters"
	"github.com/nikmy/datamaps/internal/pubsub"
	"github.com/nikmy/datamaps/internal/repo/models"
	"github.com/nikmy/datamaps/pkg/errors"
	"github.com/nikmy/datamaps/pkg/logger"
)

const defaultKeepAlive = 15 * time.Second

// NewServer exposes the store over HTTP. puller may be nil when
// no upstream source is configured.
func NewServer(
	cfg Config,
	log logger.Logger,
	store *datastore.DataStore,
	events subscriber,
	puller syncer,
) Server {
	serveLog := log.With("api_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:             cfg.HTTP.ReadTimeout,
		WriteTimeout:            cfg.HTTP.WriteTimeout,
		IdleTimeout:             cfg.HTTP.IdleTimeout,
		DisableStartupMessage:   true,
		StreamRequestBody:       true,
		EnableTrustedProxyCheck: true,
		ProxyHeader:             cfg.Proxy.Header,
		TrustedProxies:          cfg.Proxy.Trusted,
		RequestMethods: []string{
			fiber.MethodGet,
			fiber.MethodHead,
			fiber.MethodPost,
			fiber.MethodDelete,
		},
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return sendError(c, fe.Code, fe.Message)
		}

		serveLog.Error(errors.WrapFailf(err, "handle %s %s", c.Method(), c.Path()))
		return sendError(c, http.StatusInternalServerError, "internal error")
	}

	keepAlive := cfg.Events.KeepAlive
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}

	s := &server{
		store:     store,
		events:    events,
		puller:    puller,
		http:      fiber.New(fiberCfg),
		addr:      cfg.HTTP.Addr,
		auth:      newTokenAuth(cfg.Auth.Token),
		keepAlive: keepAlive,
		done:      make(chan struct{}),
		log:       serveLog,
	}

	s.setupRoutes()

	return s
}

type server struct {
	store  *datastore.DataStore
	events subscriber
	puller syncer

	http *fiber.App
	addr string
	auth authorizer

	keepAlive time.Duration
	done      chan struct{}
	closeOnce sync.Once

	log logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.Listen(s.addr) }()

	select {
	case err := <-errCh:
		return errors.WrapFailf(err, "listen on %s", s.addr)
	case <-ctx.Done():
		return nil
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	s.stopStreams()

	err := s.http.ShutdownWithContext(ctx)
	return errors.WrapFail(err, "shutdown http server")
}

func (s *server) stopStreams() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *server) setupRoutes() {
	s.http.Get("/healthz", s.handleHealth)
	s.http.Get("/events", s.handleEvents)
	s.http.Post("/sync", s.authWrapper(s.handleSync))
	s.http.Post("/session/reset", s.authWrapper(s.handleReset))

	s.http.Get("/workspaces/:id/projects", s.handleWorkspaceProjects)
	s.http.Get("/projects/:id/issues", s.handleProjectIssues)
	s.http.Get("/projects/:id/states", s.handleProjectStates)

	mountCollection[models.Workspace](s, models.KindWorkspace, s.store.Workspaces)
	mountCollection[models.Project](s, models.KindProject, s.store.Projects)
	mountCollection[models.State](s, models.KindState, s.store.States)
	mountCollection[models.Issue](s, models.KindIssue, s.store.Issues)
}

func (s *server) authWrapper(h fiber.Handler) fiber.Handler {
	if s.auth == nil {
		return h
	}

	return func(c *fiber.Ctx) error {
		ok, err := s.auth.Authorize(c.Request())
		if err != nil {
			return errors.WrapFail(err, "authorize")
		}

		if !ok {
			return sendError(c, http.StatusUnauthorized, "missing or invalid bearer token")
		}

		return h(c)
	}
}

// mountCollection serves GET/POST /{kind}s and GET/DELETE /{kind}s/:id.
func mountCollection[R models.Record](s *server, kind models.Kind, coll collection[R]) {
	path := "/" + string(kind) + "s"

	s.http.Get(path, func(c *fiber.Ctx) error {
		return c.JSON(coll.Records())
	})

	s.http.Get(path+"/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")

		record, ok := coll.Record(id)
		if !ok {
			return sendError(c, http.StatusNotFound, fmt.Sprintf("%s %q not found", kind, id))
		}
		return c.JSON(record)
	})

	s.http.Post(path, s.authWrapper(func(c *fiber.Ctx) error {
		var records []R
		err := json.Unmarshal(c.Body(), &records)
		if err != nil {
			s.log.Warn(errors.WrapFailf(err, "unmarshal %s payload", kind))
			return sendError(c, http.StatusBadRequest, "bad json")
		}

		for i, r := range records {
			if r.GetID() == "" {
				return sendError(c, http.StatusBadRequest, fmt.Sprintf("%s #%d has empty id", kind, i))
			}
		}

		coll.Add(records...)
		return c.JSON(fiber.Map{"status": "OK", "count": len(records)})
	}))

	s.http.Delete(path+"/:id", s.authWrapper(func(c *fiber.Ctx) error {
		coll.Delete(c.Params("id"))
		return c.SendStatus(http.StatusNoContent)
	}))
}

func (s *server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK", "entities": s.store.Stats()})
}

func (s *server) handleSync(c *fiber.Ctx) error {
	if s.puller == nil {
		return sendError(c, http.StatusServiceUnavailable, "sync is not configured")
	}

	queued := s.puller.Trigger()
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"status": "OK", "queued": queued})
}

func (s *server) handleReset(c *fiber.Ctx) error {
	s.store.Reset()
	return c.SendStatus(http.StatusNoContent)
}

func (s *server) handleWorkspaceProjects(c *fiber.Ctx) error {
	id := c.Params("id")

	w, ok := s.store.Workspaces.GetWorkspaceByID(id)
	if !ok {
		return sendError(c, http.StatusNotFound, fmt.Sprintf("workspace %q not found", id))
	}

	projects := w.Projects()
	records := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		records = append(records, p.Record())
	}
	slices.SortFunc(records, func(a, b models.Project) int {
		return cmp.Compare(a.Identifier, b.Identifier)
	})

	return c.JSON(records)
}

func (s *server) handleProjectIssues(c *fiber.Ctx) error {
	id := c.Params("id")

	p, ok := s.store.Projects.GetProjectByID(id)
	if !ok {
		return sendError(c, http.StatusNotFound, fmt.Sprintf("project %q not found", id))
	}

	f, err := filters.FromQuery(func(key string) string { return c.Query(key) })
	if err != nil {
		return sendError(c, http.StatusBadRequest, err.Error())
	}

	issues := filters.Apply(p.Issues(), f)
	records := make([]models.Issue, 0, len(issues))
	for _, i := range issues {
		records = append(records, i.Record())
	}
	slices.SortFunc(records, func(a, b models.Issue) int {
		return cmp.Compare(a.SequenceID, b.SequenceID)
	})

	return c.JSON(records)
}

func (s *server) handleProjectStates(c *fiber.Ctx) error {
	id := c.Params("id")

	p, ok := s.store.Projects.GetProjectByID(id)
	if !ok {
		return sendError(c, http.StatusNotFound, fmt.Sprintf("project %q not found", id))
	}

	states := p.States()
	records := make([]models.State, 0, len(states))
	for _, st := range states {
		records = append(records, st.Record())
	}
	slices.SortFunc(records, func(a, b models.State) int {
		return cmp.Compare(a.Sequence, b.Sequence)
	})

	return c.JSON(records)
}

// handleEvents streams change events as server-sent events until
// the client goes away or the server shuts down.
func (s *server) handleEvents(c *fiber.Ctx) error {
	// query values point into the request buffer, the subscription outlives it
	kind, key := utils.CopyString(c.Query("kind")), utils.CopyString(c.Query("key"))
	sub := s.events.Subscribe(kind, key)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer sub.Close()

		ping := time.NewTicker(s.keepAlive)
		defer ping.Stop()

		for {
			select {
			case <-s.done:
				s.writePending(w, sub)
				return
			case <-ping.C:
				_, _ = w.WriteString(": ping\n\n")
			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				err := writeEvent(w, ev)
				if err != nil {
					s.log.Warn(err)
					continue
				}
			}

			if err := w.Flush(); err != nil {
				return
			}
		}
	})

	return nil
}

// writePending sends events already buffered for sub.
func (s *server) writePending(w *bufio.Writer, sub *pubsub.Subscription) {
	defer w.Flush()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			err := writeEvent(w, ev)
			if err != nil {
				s.log.Warn(err)
			}
		default:
			return
		}
	}
}

func writeEvent(w *bufio.Writer, ev pubsub.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.WrapFailf(err, "marshal event %s", ev.ID)
	}

	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Op, data)
	return errors.WrapFail(err, "write event")
}

func sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(map[string]string{"status": "ERROR", "message": msg})
}
