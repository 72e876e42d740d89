package runtime

import (
	"errors"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/text"
)

// Messages holds the fixed texts shown by the presentation layer.
type Messages struct {
	Ended        string
	UnknownScene string
	LoadFailed   string
}

// DefaultMessages returns the built-in English texts.
func DefaultMessages() Messages {
	return Messages{
		Ended:        "The story has ended. You can talk about it now or restart.",
		UnknownScene: "Could not find the scene. Check the story file.",
		LoadFailed:   "Could not load the story. Check that the story file exists and is reachable.",
	}
}

func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	if m.Ended == "" {
		m.Ended = d.Ended
	}
	if m.UnknownScene == "" {
		m.UnknownScene = d.UnknownScene
	}
	if m.LoadFailed == "" {
		m.LoadFailed = d.LoadFailed
	}
	return m
}

// Snapshot is the complete input of Render.
type Snapshot struct {
	Story    *domain.Story
	State    domain.NavigationState
	Status   domain.Status
	Prompt   bool
	Failure  error
	FailedID string
}

// Render maps a snapshot to its view. It has no side effects.
func Render(s Snapshot, msgs Messages) domain.View {
	view := domain.View{
		Choices:       []domain.ChoiceView{},
		BackEnabled:   s.State.CanGoBack(),
		RestartPrompt: s.Prompt,
	}

	switch s.Status {
	case domain.StatusUninitialized:
		view.Kind = domain.ViewLoading
		return view

	case domain.StatusError:
		view.Kind = domain.ViewError
		view.Title = domain.ErrorTitle
		view.SceneID = s.FailedID
		if errors.Is(s.Failure, domain.ErrUnresolvedScene) {
			view.Message = msgs.UnknownScene
		} else {
			view.Message = msgs.LoadFailed
		}
		return view
	}

	scene, ok := s.Story.Resolve(s.State.CurrentNodeID)
	if !ok {
		view.Kind = domain.ViewError
		view.Title = domain.ErrorTitle
		view.SceneID = s.State.CurrentNodeID
		view.Message = msgs.UnknownScene
		return view
	}

	view.Kind = domain.ViewScene
	view.SceneID = s.State.CurrentNodeID
	view.Title = scene.Title
	for _, p := range text.Segment(scene.Text) {
		view.Paragraphs = append(view.Paragraphs, []string(p))
	}

	if scene.Terminal() {
		view.Ended = true
		view.Message = msgs.Ended
		return view
	}

	for i, choice := range scene.Choices {
		view.Choices = append(view.Choices, domain.ChoiceView{
			Index:  i,
			Label:  choice.Text,
			NextID: choice.NextID,
		})
	}
	return view
}
