package lotka

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/lotka/internal/runtime"
	"github.com/aretw0/lotka/pkg/adapters/file"
	loamAdapter "github.com/aretw0/lotka/pkg/adapters/loam"
	"github.com/aretw0/lotka/pkg/adapters/remote"
	redisAdapter "github.com/aretw0/lotka/pkg/adapters/redis"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
)

// Session is one reading session: the navigation controller over a loaded story.
type Session = runtime.Controller

// Messages holds the fixed texts of ended and error views.
type Messages = runtime.Messages

// Engine is the high-level entry point for the Lotka library.
// It resolves where the story comes from and starts sessions over it.
type Engine struct {
	loader   ports.StoryLoader
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	messages Messages
	startID  string
	redis    redisAuth
	Name     string
}

type redisAuth struct {
	password string
	db       int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom StoryLoader, bypassing source resolution.
func WithLoader(l ports.StoryLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMessages overrides the ended and error texts.
func WithMessages(m Messages) Option {
	return func(e *Engine) {
		e.messages = m
	}
}

// WithStartScene sets the start scene for directory stories (default: "start").
// Document stories always name their own start.
func WithStartScene(id string) Option {
	return func(e *Engine) {
		e.startID = id
	}
}

// WithRedisAuth sets the password and database used for redis:// sources.
// A password in the URL takes precedence.
func WithRedisAuth(password string, db int) Option {
	return func(e *Engine) {
		e.redis = redisAuth{password: password, db: db}
	}
}

// New initializes a new Lotka Engine.
//
// The source selects the loader:
//   - http:// or https:// URLs are fetched,
//   - redis://host:port/key reads a key,
//   - a directory is opened as a Loam repository of scene files,
//   - anything else is read as a JSON or YAML file.
//
// If WithLoader is provided, source is only used as a label.
func New(source string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if source == "" {
			return nil, fmt.Errorf("source is required when no custom loader is provided")
		}
		loader, name, err := eng.resolveLoader(source)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
		eng.Name = name
	} else if source != "" {
		eng.Name = filepath.Base(source)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("story", eng.Name)
	}

	return eng, nil
}

func (e *Engine) resolveLoader(source string) (ports.StoryLoader, string, error) {
	if u, err := url.Parse(source); err == nil {
		switch u.Scheme {
		case "http", "https":
			return remote.New(source), pathBase(u.Path, u.Host), nil
		case "redis":
			key := strings.TrimPrefix(u.Path, "/")
			password := e.redis.password
			if p, ok := u.User.Password(); ok {
				password = p
			}
			return redisAdapter.New(u.Host, password, e.redis.db, redisAdapter.WithKey(key)), key, nil
		}
	}

	absPath, err := filepath.Abs(source)
	if err != nil {
		return nil, "", fmt.Errorf("invalid path: %w", err)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		loader, err := loamAdapter.Open(absPath, e.startID)
		if err != nil {
			return nil, "", err
		}
		return loader, filepath.Base(absPath), nil
	}

	return file.New(absPath), filepath.Base(absPath), nil
}

func pathBase(p, fallback string) string {
	if b := filepath.Base(p); b != "." && b != "/" {
		return b
	}
	return fallback
}

// SessionOption configures a single session.
type SessionOption func(*[]runtime.Option)

// OnRender registers a callback invoked after every navigation render of the session.
func OnRender(fn func(domain.View)) SessionOption {
	return func(opts *[]runtime.Option) {
		*opts = append(*opts, runtime.WithRenderer(fn))
	}
}

// Start loads the story and renders its start scene.
//
// The returned session is always usable: when loading fails it sits in the error
// state showing the load failure, and the error is returned alongside it.
func (e *Engine) Start(ctx context.Context, opts ...SessionOption) (*Session, error) {
	runtimeOpts := []runtime.Option{
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithMessages(e.messages),
	}
	for _, opt := range opts {
		opt(&runtimeOpts)
	}

	session := runtime.NewController(runtimeOpts...)
	if err := session.Load(ctx, e.loader); err != nil {
		return session, fmt.Errorf("failed to start session: %w", err)
	}
	return session, nil
}

// Inspect loads the story document for visualization or validation tools.
func (e *Engine) Inspect(ctx context.Context) (*domain.Story, error) {
	return e.loader.Load(ctx)
}

// Loader returns the underlying StoryLoader used by the engine.
func (e *Engine) Loader() ports.StoryLoader {
	return e.loader
}

// Close releases the story loader when it holds resources, such as the
// client of a redis:// source. The engine must not be used afterwards.
func (e *Engine) Close() error {
	if c, ok := e.loader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// NewSession starts a session and hands it out as a Navigator, for adapters
// that manage many sessions.
func (e *Engine) NewSession(ctx context.Context) (ports.Navigator, error) {
	s, err := e.Start(ctx)
	return s, err
}
