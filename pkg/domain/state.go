package domain

// Status is the lifecycle phase of a navigation session.
type Status string

const (
	StatusUninitialized Status = "uninitialized" // No story handed over yet
	StatusReady         Status = "ready"         // A scene is on screen
	StatusError         Status = "error"         // Load failure or unknown scene
)

// NavigationState is the mutable part of a reading session.
// It is owned by exactly one controller and is never persisted.
type NavigationState struct {
	// CurrentNodeID is the last scene rendered successfully. Empty before initialization.
	CurrentNodeID string `json:"current_node_id"`

	// History is the back stack, oldest first. Duplicates are allowed.
	History []string `json:"history"`
}

// CanGoBack reports whether the back stack has entries.
func (s NavigationState) CanGoBack() bool {
	return len(s.History) > 0
}

// Snapshot returns a copy whose history can be mutated independently.
func (s NavigationState) Snapshot() NavigationState {
	out := s
	if s.History != nil {
		out.History = make([]string, len(s.History))
		copy(out.History, s.History)
	}
	return out
}
