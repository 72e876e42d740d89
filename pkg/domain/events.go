package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSceneEnter      EventType = "scene_enter"
	EventSceneUnresolved EventType = "scene_unresolved"
	EventBack            EventType = "back"
	EventRestart         EventType = "restart"
	EventLoadFailed      EventType = "load_failed"
)

// SceneEvent describes one navigation transition.
type SceneEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SceneID   string    `json:"scene_id"`
	Depth     int       `json:"depth"` // History length after the transition
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnSceneEnter      func(context.Context, *SceneEvent)
	OnSceneUnresolved func(context.Context, *SceneEvent)
	OnBack            func(context.Context, *SceneEvent)
	OnRestart         func(context.Context, *SceneEvent)
	OnLoadFailed      func(context.Context, *SceneEvent)
}
