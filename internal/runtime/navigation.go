package runtime

import (
	"fmt"

	"github.com/aretw0/lotka/pkg/domain"
)

// Goto moves forward to sceneID.
//
// An empty ID is ignored. Otherwise the current scene is pushed onto the history
// before the target is resolved, so a failed hop leaves that push in place and a
// later Back returns to the scene the reader was on.
func (c *Controller) Goto(sceneID string) domain.View {
	if sceneID == "" {
		c.logger.Debug("goto ignored: empty target", "current", c.state.CurrentNodeID)
		return c.View()
	}
	if c.story == nil {
		c.logger.Debug("goto ignored: no story", "target", sceneID)
		return c.View()
	}

	if c.state.CurrentNodeID != "" {
		c.state.History = append(c.state.History, c.state.CurrentNodeID)
	}
	c.show(sceneID)
	return c.View()
}

// Choose activates the choice at index in the scene on screen.
// Out of range indexes and choices outside the ready state are ignored.
func (c *Controller) Choose(index int) domain.View {
	if c.status != domain.StatusReady {
		return c.View()
	}
	scene, ok := c.story.Resolve(c.state.CurrentNodeID)
	if !ok || index < 0 || index >= len(scene.Choices) {
		c.logger.Debug("choice ignored", "index", index, "current", c.state.CurrentNodeID)
		return c.View()
	}
	return c.Goto(scene.Choices[index].NextID)
}

// Back pops the most recent history entry and renders it.
// With an empty history nothing happens and nothing is rendered.
func (c *Controller) Back() domain.View {
	n := len(c.state.History)
	if n == 0 {
		return c.View()
	}

	prev := c.state.History[n-1]
	c.state.History = c.state.History[:n-1]
	c.emit(c.hooks.OnBack, domain.EventBack, prev, nil)
	c.show(prev)
	return c.View()
}

// OpenRestart opens the restart confirmation prompt.
func (c *Controller) OpenRestart() domain.View {
	c.prompt = true
	return c.View()
}

// CancelRestart closes the prompt without touching navigation.
func (c *Controller) CancelRestart() domain.View {
	c.prompt = false
	return c.View()
}

// ConfirmRestart closes the prompt, clears the history and renders the start scene.
// It does nothing unless the prompt is open.
func (c *Controller) ConfirmRestart() domain.View {
	if !c.prompt {
		c.logger.Debug("restart ignored", "err", domain.ErrRestartNotConfirmed)
		return c.View()
	}
	c.prompt = false

	if c.story == nil {
		c.logger.Warn("restart ignored", "err", domain.ErrNotInitialized)
		return c.View()
	}

	c.state.History = c.state.History[:0]
	c.emit(c.hooks.OnRestart, domain.EventRestart, c.story.StartID, nil)
	c.show(c.story.StartID)
	return c.View()
}

// PromptOpen reports whether the restart prompt is showing.
func (c *Controller) PromptOpen() bool {
	return c.prompt
}

// show resolves sceneID and renders it, or renders the unknown scene error.
// CurrentNodeID only ever holds scenes that resolved.
func (c *Controller) show(sceneID string) {
	if _, ok := c.story.Resolve(sceneID); !ok {
		err := fmt.Errorf("%w: %q", domain.ErrUnresolvedScene, sceneID)
		c.status = domain.StatusError
		c.failure = err
		c.failedID = sceneID

		c.logger.Warn("scene not found", "scene_id", sceneID, "history", len(c.state.History))
		c.emit(c.hooks.OnSceneUnresolved, domain.EventSceneUnresolved, sceneID, err)
		c.render()
		return
	}

	c.state.CurrentNodeID = sceneID
	c.status = domain.StatusReady
	c.failure = nil
	c.failedID = ""

	c.logger.Debug("scene entered", "scene_id", sceneID, "history", len(c.state.History))
	c.emit(c.hooks.OnSceneEnter, domain.EventSceneEnter, sceneID, nil)
	c.render()
}
