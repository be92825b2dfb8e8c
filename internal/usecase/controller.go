// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/naka-gawa/github-repos/internal/domain"
	"github.com/naka-gawa/github-repos/internal/gateway"
)

// User-visible notifications.
const (
	MessageEmptyUsername = "Please enter a GitHub username"
	MessageNotFound      = "User not found"
	MessageFailure       = "Something went wrong, please try again later: "
)

const eventQueueSize = 64

// PreferenceStore persists the last username that was searched successfully.
type PreferenceStore interface {
	Save(username string) error
	Load() (username string, ok bool, err error)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Notify(message string)
}

type event func(ctx context.Context)

// Controller is the screen state machine. All session changes happen on the
// goroutine running Run or Settle; fetches run on their own goroutines and
// post their results back. Nothing is cancelled when a newer search starts,
// so whichever response arrives last is the one displayed.
type Controller struct {
	fetcher   gateway.Fetcher
	prefs     PreferenceStore
	notifier  Notifier
	logger    *log.Logger
	events    chan event
	session   domain.Session
	inflight  int
	draining  bool
	observers []func(domain.Session)
}

// NewController creates a new Controller instance.
func NewController(fetcher gateway.Fetcher, prefs PreferenceStore, notifier Notifier, logger *log.Logger) *Controller {
	return &Controller{
		fetcher:  fetcher,
		prefs:    prefs,
		notifier: notifier,
		logger:   logger,
		events:   make(chan event, eventQueueSize),
	}
}

// OnChange registers fn to receive every new session. It must be called
// before the loop starts.
func (c *Controller) OnChange(fn func(domain.Session)) {
	c.observers = append(c.observers, fn)
}

// Session returns the current snapshot. Only call it from the loop
// goroutine or once the loop has returned.
func (c *Controller) Session() domain.Session {
	return c.session
}

// Start queues the startup search for the persisted username. When nothing
// was persisted the search still runs, with an empty username.
func (c *Controller) Start() {
	c.enqueue(func(ctx context.Context) {
		username, ok, err := c.prefs.Load()
		if err != nil {
			c.logger.Printf("Usecase: can't load persisted username: %v\n", err)
		}
		if !ok {
			username = ""
		}
		c.update(action{kind: actionPrefill, username: username})
		c.fetch(ctx, username)
	})
}

// Submit validates input and queues a search for it. A blank input is
// rejected with domain.ErrEmptyUsername and leaves the state untouched.
func (c *Controller) Submit(input string) error {
	username, err := ValidateUsername(input)
	if err != nil {
		c.enqueue(func(context.Context) {
			c.logger.Printf("Usecase: submit rejected: %v\n", err)
			c.update(action{kind: actionRejected, message: MessageEmptyUsername})
			c.notifier.Notify(MessageEmptyUsername)
		})
		return err
	}
	c.enqueue(func(ctx context.Context) {
		c.fetch(ctx, username)
	})
	return nil
}

// Post runs fn on the loop goroutine, after every event queued before it.
func (c *Controller) Post(fn func()) {
	c.enqueue(func(context.Context) { fn() })
}

// Drain makes Run return once every event queued so far has been handled
// and no fetch is in flight.
func (c *Controller) Drain() {
	c.enqueue(func(context.Context) { c.draining = true })
}

// Run processes events until ctx is done, or until the controller is idle
// after Drain.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if c.draining && c.idle() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			ev(ctx)
		}
	}
}

// Settle processes events until the queue is empty and no fetch is in
// flight, then returns the resulting session.
func (c *Controller) Settle(ctx context.Context) (domain.Session, error) {
	for {
		if c.idle() {
			return c.session, nil
		}
		select {
		case <-ctx.Done():
			return c.session, ctx.Err()
		case ev := <-c.events:
			ev(ctx)
		}
	}
}

// ValidateUsername trims input and reports whether a search may proceed.
func ValidateUsername(input string) (string, error) {
	username := strings.TrimSpace(input)
	if username == "" {
		return "", domain.ErrEmptyUsername
	}
	return username, nil
}

func (c *Controller) idle() bool {
	return c.inflight == 0 && len(c.events) == 0
}

func (c *Controller) enqueue(ev event) {
	c.events <- ev
}

func (c *Controller) fetch(ctx context.Context, username string) {
	c.inflight++
	c.update(action{kind: actionFetchStarted, username: username})
	c.logger.Printf("Usecase: fetching repositories for %q (%d in flight)\n", username, c.inflight)

	go func() {
		repos, err := c.fetcher.FetchRepositories(ctx, username)
		done := func(context.Context) {
			c.inflight--
			c.finish(username, repos, err)
		}
		select {
		case c.events <- done:
		case <-ctx.Done():
		}
	}()
}

func (c *Controller) finish(username string, repos []domain.Repository, err error) {
	if err != nil {
		message := failureMessage(err)
		c.logger.Printf("Usecase: fetch for %q failed: %v\n", username, err)
		c.update(action{kind: actionFetchFailed, username: username, message: message})
		c.notifier.Notify(message)
		return
	}
	c.logger.Printf("Usecase: fetch for %q returned %d repositories\n", username, len(repos))
	if err := c.prefs.Save(username); err != nil {
		c.logger.Printf("Usecase: can't persist username: %v\n", err)
	}
	c.update(action{kind: actionFetchSucceeded, username: username, repos: repos})
}

func failureMessage(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return MessageNotFound
	}
	return MessageFailure + err.Error()
}

func (c *Controller) update(a action) {
	c.session = reduce(c.session, a)
	for _, fn := range c.observers {
		fn(c.session)
	}
}
