package core

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/api/cont"
	"HayatAdmin/internal/lib/sl"
	"HayatAdmin/internal/screen"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

type Repository interface {
	SaveAudit(ctx context.Context, entry *entity.AuditEntry) error
	ListAudit(ctx context.Context, resource string, limit int64) ([]entity.AuditEntry, error)
}

type Broadcaster interface {
	BroadcastScreenEvent(ev screen.Event)
}

// Screens is the set of controllers the host drives.
type Screens interface {
	Get(name string) (screen.Screen, bool)
	All() []screen.Screen
	SetObserver(o screen.Observer)
}

type Core struct {
	screens     Screens
	repo        Repository
	broadcaster Broadcaster
	locks       map[string]*sync.Mutex
	log         *slog.Logger
}

func New(screens Screens, log *slog.Logger) *Core {
	c := &Core{
		screens: screens,
		locks:   make(map[string]*sync.Mutex),
		log:     log.With(sl.Module("core")),
	}
	for _, s := range screens.All() {
		c.locks[s.Name()] = &sync.Mutex{}
	}
	return c
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetBroadcaster(b Broadcaster) {
	c.broadcaster = b
}

// Init subscribes to screen events and loads every screen once.
func (c *Core) Init(ctx context.Context) {
	c.screens.SetObserver(c.onEvent)

	for _, s := range c.screens.All() {
		if err := s.Mount(ctx); err != nil {
			c.log.With(
				slog.String("resource", s.Name()),
				sl.Err(err),
			).Warn("initial mount")
		}
	}
}

// ConfirmFromContext answers delete prompts with the decision the caller put
// into the request context.
func ConfirmFromContext(ctx context.Context, prompt string) bool {
	return cont.Confirmed(ctx)
}

func (c *Core) onEvent(ctx context.Context, ev screen.Event) {
	log := c.log.With(
		slog.String("resource", ev.Resource),
		slog.String("action", ev.Action),
		slog.Int64("id", ev.RecordID),
	)

	if c.repo != nil {
		entry := entity.NewAuditEntry(ev.Resource, ev.Action, ev.RecordID)
		entry.RequestID = middleware.GetReqID(ctx)
		if err := c.repo.SaveAudit(ctx, entry); err != nil {
			log.With(sl.Err(err)).Error("save audit entry")
		}
	}

	if c.broadcaster != nil {
		c.broadcaster.BroadcastScreenEvent(ev)
	}

	log.Debug("screen changed")
}

func (c *Core) screen(name string) (screen.Screen, error) {
	s, ok := c.screens.Get(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, entity.ErrUnknownResource)
	}
	return s, nil
}

// exclusive runs fn while holding the screen's lock. A second caller gets
// ErrBusy instead of waiting.
func (c *Core) exclusive(name string, fn func(s screen.Screen) error) (screen.Frame, error) {
	s, err := c.screen(name)
	if err != nil {
		return screen.Frame{}, err
	}
	lock := c.locks[s.Name()]
	if !lock.TryLock() {
		return s.Frame(), fmt.Errorf("%s: %w", s.Name(), entity.ErrBusy)
	}
	defer lock.Unlock()

	err = fn(s)
	return s.Frame(), err
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
