package runtime_test

import (
	"errors"
	"testing"

	"github.com/aretw0/lotka/internal/runtime"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRender_SceneParagraphsAndChoices(t *testing.T) {
	story := &domain.Story{
		StartID: "a",
		Scenes: map[string]domain.Scene{
			"a": {
				Title: "A",
				Text:  "One. Two. Three.",
				Choices: []domain.Choice{
					{Text: "left", NextID: "l"},
					{Text: "right", NextID: "r"},
				},
			},
		},
	}
	snap := runtime.Snapshot{
		Story:  story,
		State:  domain.NavigationState{CurrentNodeID: "a", History: []string{"x"}},
		Status: domain.StatusReady,
		Prompt: true,
	}

	v := runtime.Render(snap, runtime.DefaultMessages())

	assert.Equal(t, domain.ViewScene, v.Kind)
	assert.Equal(t, [][]string{{"One.", "Two."}, {"Three."}}, v.Paragraphs)
	assert.Equal(t, []domain.ChoiceView{
		{Index: 0, Label: "left", NextID: "l"},
		{Index: 1, Label: "right", NextID: "r"},
	}, v.Choices)
	assert.False(t, v.Ended)
	assert.True(t, v.BackEnabled)
	assert.True(t, v.RestartPrompt)

	// Pure: same input, same output.
	assert.Equal(t, v, runtime.Render(snap, runtime.DefaultMessages()))
}

func TestRender_ErrorKinds(t *testing.T) {
	msgs := runtime.DefaultMessages()

	load := runtime.Render(runtime.Snapshot{Status: domain.StatusError, Failure: domain.ErrLoad}, msgs)
	assert.Equal(t, domain.ViewError, load.Kind)
	assert.Equal(t, msgs.LoadFailed, load.Message)
	assert.True(t, load.IsError())

	unknown := runtime.Render(runtime.Snapshot{
		Status:   domain.StatusError,
		Failure:  errors.Join(domain.ErrUnresolvedScene),
		FailedID: "ghost",
	}, msgs)
	assert.Equal(t, msgs.UnknownScene, unknown.Message)
	assert.Equal(t, "ghost", unknown.SceneID)
	assert.NotNil(t, unknown.Choices)
	assert.Empty(t, unknown.Choices)
}
