package domain

import (
	"errors"
	"fmt"
)

// ErrLoad is returned when the story could not be fetched or parsed.
var ErrLoad = errors.New("story load failed")

// ErrStructure is returned when a parsed document lacks startId or scenes.
var ErrStructure = errors.New("story has invalid structure")

// ErrUnresolvedScene is returned when a navigation target is not part of the story.
var ErrUnresolvedScene = errors.New("unknown scene")

// ErrNotInitialized is returned by operations that need a loaded story.
var ErrNotInitialized = errors.New("story not initialized")

// ErrRestartNotConfirmed is returned when a restart is confirmed without an open prompt.
var ErrRestartNotConfirmed = errors.New("restart prompt is not open")

// LoadError wraps a failure of a story loader with the source it was reading.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsInitializationFailure reports whether err should surface as the single
// "initialization failed" state (load and structure failures alike).
func IsInitializationFailure(err error) bool {
	return errors.Is(err, ErrLoad) || errors.Is(err, ErrStructure)
}
