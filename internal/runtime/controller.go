package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
)

// Controller is the navigation state machine of one reading session.
//
// It owns the NavigationState exclusively. All operations are synchronous and
// run to completion; a Controller is not safe for concurrent use, adapters that
// share one across goroutines must serialize access themselves.
type Controller struct {
	story    *domain.Story
	state    domain.NavigationState
	status   domain.Status
	prompt   bool
	failure  error
	failedID string

	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	messages Messages
	onRender func(domain.View)
	now      func() time.Time
}

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMessages overrides the fixed texts of ended and error views.
func WithMessages(m Messages) Option {
	return func(c *Controller) {
		c.messages = m.withDefaults()
	}
}

// WithRenderer registers the callback invoked after every navigation render.
func WithRenderer(fn func(domain.View)) Option {
	return func(c *Controller) {
		c.onRender = fn
	}
}

// NewController creates an uninitialized controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		status:   domain.StatusUninitialized,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		messages: DefaultMessages(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load awaits the loader once and initializes the controller with its result.
// A failed load moves the controller into the error state and is returned as is;
// there is no retry.
func (c *Controller) Load(ctx context.Context, loader ports.StoryLoader) error {
	story, err := loader.Load(ctx)
	if err != nil {
		c.Fail(err)
		return err
	}
	return c.Initialize(story)
}

// Initialize hands over a loaded story and renders its start scene.
func (c *Controller) Initialize(story *domain.Story) error {
	if story == nil {
		c.Fail(domain.ErrNotInitialized)
		return domain.ErrNotInitialized
	}

	c.story = story
	c.state = domain.NavigationState{History: []string{}}
	c.prompt = false
	c.logger.Debug("story initialized", "start_id", story.StartID, "scenes", len(story.Scenes))

	c.show(story.StartID)
	return nil
}

// Fail records a load failure. The session stays in the error state until a
// new story is handed over with Initialize.
func (c *Controller) Fail(err error) {
	c.story = nil
	c.state = domain.NavigationState{History: []string{}}
	c.status = domain.StatusError
	c.prompt = false
	c.failure = err
	c.failedID = ""

	c.logger.Error("story initialization failed", "err", err)
	c.emit(c.hooks.OnLoadFailed, domain.EventLoadFailed, "", err)
	c.render()
}

// Status returns the lifecycle phase.
func (c *Controller) Status() domain.Status {
	return c.status
}

// State returns a copy of the navigation state.
func (c *Controller) State() domain.NavigationState {
	return c.state.Snapshot()
}

// Story returns the loaded story, or nil.
func (c *Controller) Story() *domain.Story {
	return c.story
}

// Err returns the failure behind the error state, or nil.
func (c *Controller) Err() error {
	if c.status != domain.StatusError {
		return nil
	}
	return c.failure
}

// Snapshot captures everything the render function needs.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Story:    c.story,
		State:    c.state.Snapshot(),
		Status:   c.status,
		Prompt:   c.prompt,
		Failure:  c.failure,
		FailedID: c.failedID,
	}
}

// View renders the current snapshot without changing anything.
func (c *Controller) View() domain.View {
	return Render(c.Snapshot(), c.messages)
}

func (c *Controller) render() {
	if c.onRender != nil {
		c.onRender(c.View())
	}
}

func (c *Controller) emit(hook func(context.Context, *domain.SceneEvent), typ domain.EventType, sceneID string, err error) {
	if hook == nil {
		return
	}
	hook(context.Background(), &domain.SceneEvent{
		Timestamp: c.now(),
		Type:      typ,
		SceneID:   sceneID,
		Depth:     len(c.state.History),
		Err:       err,
	})
}
