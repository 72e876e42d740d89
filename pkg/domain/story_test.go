package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStory_Resolve(t *testing.T) {
	story := &Story{
		StartID: "a",
		Scenes: map[string]Scene{
			"a": {Title: "A", Choices: []Choice{{Text: "on", NextID: "b"}}},
			"b": {Title: "B"},
		},
	}

	scene, ok := story.Resolve("a")
	assert.True(t, ok)
	assert.Equal(t, "A", scene.Title)
	assert.False(t, scene.Terminal())

	scene, ok = story.Resolve("b")
	assert.True(t, ok)
	assert.True(t, scene.Terminal())

	_, ok = story.Resolve("missing")
	assert.False(t, ok)

	_, ok = story.Resolve("")
	assert.False(t, ok)
}

func TestStory_ResolveOnNilStory(t *testing.T) {
	var story *Story
	_, ok := story.Resolve("a")
	assert.False(t, ok)
	assert.Nil(t, story.SceneIDs())

	_, ok = (&Story{}).Resolve("a")
	assert.False(t, ok)
}

func TestStory_SceneIDsSorted(t *testing.T) {
	story := &Story{Scenes: map[string]Scene{"c": {}, "a": {}, "b": {}}}
	assert.Equal(t, []string{"a", "b", "c"}, story.SceneIDs())
}

func TestNavigationState_Snapshot(t *testing.T) {
	s := NavigationState{CurrentNodeID: "b", History: []string{"a"}}
	cp := s.Snapshot()
	cp.History[0] = "x"

	assert.Equal(t, "a", s.History[0])
	assert.True(t, s.CanGoBack())
	assert.False(t, NavigationState{}.CanGoBack())
}

func TestIsInitializationFailure(t *testing.T) {
	loadErr := &LoadError{Source: "story.json", Err: fmt.Errorf("%w: no such file", ErrLoad)}

	assert.True(t, IsInitializationFailure(loadErr))
	assert.True(t, IsInitializationFailure(fmt.Errorf("decode: %w", ErrStructure)))
	assert.False(t, IsInitializationFailure(ErrUnresolvedScene))
	assert.False(t, IsInitializationFailure(errors.New("boom")))
	assert.Contains(t, loadErr.Error(), "story.json")
}
