// Package remote loads a story document over HTTP.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/schema"
)

// MaxDocumentSize caps the story body read from the network.
const MaxDocumentSize = 8 << 20

// Loader implements ports.StoryLoader by fetching a URL.
type Loader struct {
	URL    string
	Client *http.Client
}

// Option configures the Loader.
type Option func(*Loader)

// WithClient sets the HTTP client used for the request.
func WithClient(c *http.Client) Option {
	return func(l *Loader) {
		l.Client = c
	}
}

// New creates a Loader for url.
func New(url string, opts ...Option) *Loader {
	l := &Loader{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the document, bypassing caches, and parses it.
// Transport failures and non-2xx answers are load failures.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, l.fail(err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, l.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, l.fail(fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize))
	if err != nil {
		return nil, l.fail(err)
	}

	story, err := schema.Parse(data)
	if err != nil {
		return nil, &domain.LoadError{Source: l.URL, Err: err}
	}
	return story, nil
}

func (l *Loader) fail(err error) error {
	return &domain.LoadError{Source: l.URL, Err: fmt.Errorf("%w: %v", domain.ErrLoad, err)}
}
