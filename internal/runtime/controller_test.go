package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/lotka/internal/runtime"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSceneStory() *domain.Story {
	return &domain.Story{
		StartID: "a",
		Scenes: map[string]domain.Scene{
			"a": {Title: "A", Text: "Hi.", Choices: []domain.Choice{{Text: "go", NextID: "b"}}},
			"b": {Title: "B", Text: "Bye.", Choices: []domain.Choice{}},
		},
	}
}

func chainStory(n int) *domain.Story {
	story := &domain.Story{StartID: "s0", Scenes: map[string]domain.Scene{}}
	for i := 0; i < n; i++ {
		story.Scenes[fmt.Sprintf("s%d", i)] = domain.Scene{
			Title: fmt.Sprintf("Scene %d", i),
			Text:  "One. Two. Three.",
			Choices: []domain.Choice{
				{Text: "next", NextID: fmt.Sprintf("s%d", (i+1)%n)},
				{Text: "stay", NextID: fmt.Sprintf("s%d", i)},
				{Text: "broken", NextID: "missing"},
				{Text: "empty", NextID: ""},
			},
		}
	}
	return story
}

type recorder struct {
	views []domain.View
}

func (r *recorder) render(v domain.View) {
	r.views = append(r.views, v)
}

func newController(t *testing.T, story *domain.Story, opts ...runtime.Option) (*runtime.Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c := runtime.NewController(append([]runtime.Option{runtime.WithRenderer(rec.render)}, opts...)...)
	require.NoError(t, c.Initialize(story))
	return c, rec
}

func TestController_EndToEnd(t *testing.T) {
	c, rec := newController(t, twoSceneStory())

	// Load
	require.Len(t, rec.views, 1)
	v := rec.views[0]
	assert.Equal(t, domain.ViewScene, v.Kind)
	assert.Equal(t, "A", v.Title)
	require.Len(t, v.Choices, 1)
	assert.Equal(t, "go", v.Choices[0].Label)
	assert.False(t, v.BackEnabled)
	assert.Equal(t, [][]string{{"Hi."}}, v.Paragraphs)

	// Activate "go"
	v = c.Choose(0)
	assert.Equal(t, "B", v.Title)
	assert.Empty(t, v.Choices)
	assert.True(t, v.Ended)
	assert.NotEmpty(t, v.Message)
	assert.True(t, v.BackEnabled)

	// Back
	v = c.Back()
	assert.Equal(t, "A", v.Title)
	assert.False(t, v.BackEnabled)
	assert.Len(t, rec.views, 3)
}

func TestController_UninitializedView(t *testing.T) {
	c := runtime.NewController()
	assert.Equal(t, domain.StatusUninitialized, c.Status())
	assert.Equal(t, domain.ViewLoading, c.View().Kind)

	// Nothing to navigate yet.
	v := c.Goto("a")
	assert.Equal(t, domain.ViewLoading, v.Kind)
	assert.Empty(t, c.State().History)
}

func TestController_GotoEmptyTargetIsNoop(t *testing.T) {
	c, rec := newController(t, twoSceneStory())
	before := c.State()

	c.Goto("")
	c.Choose(3) // out of range

	assert.Equal(t, before, c.State())
	assert.Len(t, rec.views, 1, "no render expected")

	story := chainStory(2)
	c, rec = newController(t, story)
	c.Choose(3) // choice with empty nextId
	assert.Equal(t, "s0", c.State().CurrentNodeID)
	assert.Empty(t, c.State().History)
	assert.Len(t, rec.views, 1)
}

func TestController_BackOnEmptyHistoryDoesNotRender(t *testing.T) {
	c, rec := newController(t, twoSceneStory())

	v := c.Back()
	assert.Equal(t, "A", v.Title)
	assert.Len(t, rec.views, 1)
	assert.Equal(t, "a", c.State().CurrentNodeID)
}

func TestController_UndoLaw(t *testing.T) {
	c, _ := newController(t, chainStory(4))

	paths := [][]int{
		{0},
		{0, 0, 0},
		{1, 1, 0, 1},
		{0, 0, 0, 0, 0, 0, 0},
	}
	for _, path := range paths {
		start := c.State().CurrentNodeID
		for _, idx := range path {
			c.Choose(idx)
		}
		for range path {
			c.Back()
		}
		assert.Equal(t, start, c.State().CurrentNodeID, "path %v", path)
		assert.Equal(t, domain.StatusReady, c.Status())
	}
}

func TestController_DuplicatesAreKept(t *testing.T) {
	c, _ := newController(t, chainStory(2))

	c.Choose(1) // stay
	c.Choose(1) // stay
	assert.Equal(t, []string{"s0", "s0"}, c.State().History)
}

func TestController_RestartLaw(t *testing.T) {
	for depth := 0; depth < 6; depth++ {
		t.Run(fmt.Sprintf("depth_%d", depth), func(t *testing.T) {
			c, _ := newController(t, chainStory(3))
			for i := 0; i < depth; i++ {
				c.Choose(0)
			}

			c.OpenRestart()
			v := c.ConfirmRestart()

			assert.Empty(t, c.State().History)
			assert.Equal(t, "s0", c.State().CurrentNodeID)
			assert.False(t, v.RestartPrompt)
			assert.False(t, v.BackEnabled)
		})
	}
}

func TestController_RestartRequiresOpenPrompt(t *testing.T) {
	c, rec := newController(t, chainStory(3))
	c.Choose(0)

	c.ConfirmRestart()
	assert.Equal(t, "s1", c.State().CurrentNodeID)
	assert.Len(t, c.State().History, 1)

	v := c.OpenRestart()
	assert.True(t, v.RestartPrompt)
	assert.True(t, c.PromptOpen())

	v = c.CancelRestart()
	assert.False(t, v.RestartPrompt)
	assert.Equal(t, "s1", c.State().CurrentNodeID)
	assert.Len(t, c.State().History, 1)

	// Prompt toggles never render.
	assert.Len(t, rec.views, 2)
}

func TestController_UnresolvedScene(t *testing.T) {
	c, rec := newController(t, chainStory(2))
	c.Choose(0) // s1
	before := c.State()

	v := c.Choose(2) // broken
	assert.Equal(t, domain.ViewError, v.Kind)
	assert.Equal(t, domain.ErrorTitle, v.Title)
	assert.Equal(t, "missing", v.SceneID)
	assert.Empty(t, v.Choices)
	assert.True(t, v.BackEnabled)
	assert.Equal(t, domain.StatusError, c.Status())
	assert.ErrorIs(t, c.Err(), domain.ErrUnresolvedScene)

	// The current scene was pushed before resolution and stays pushed.
	after := c.State()
	assert.Equal(t, before.CurrentNodeID, after.CurrentNodeID)
	assert.Equal(t, append(before.History, "s1"), after.History)
	assert.Equal(t, domain.ViewError, rec.views[len(rec.views)-1].Kind)

	// Choices are not reachable from the error view.
	c.Choose(0)
	assert.Equal(t, domain.StatusError, c.Status())

	// Back returns to the scene the reader was on.
	v = c.Back()
	assert.Equal(t, domain.ViewScene, v.Kind)
	assert.Equal(t, "s1", v.SceneID)
	assert.Equal(t, before.History, c.State().History)
	assert.NoError(t, c.Err())
}

func TestController_RestartRecoversFromUnresolvedScene(t *testing.T) {
	c, _ := newController(t, chainStory(2))
	c.Goto("nowhere")
	require.Equal(t, domain.StatusError, c.Status())

	c.OpenRestart()
	v := c.ConfirmRestart()
	assert.Equal(t, domain.ViewScene, v.Kind)
	assert.Equal(t, "s0", v.SceneID)
	assert.Empty(t, c.State().History)
}

func TestController_LoadFailure(t *testing.T) {
	var failures int
	rec := &recorder{}
	c := runtime.NewController(
		runtime.WithRenderer(rec.render),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnLoadFailed: func(ctx context.Context, e *domain.SceneEvent) { failures++ },
		}),
	)

	loadErr := &domain.LoadError{Source: "story.json", Err: domain.ErrLoad}
	err := c.Load(context.Background(), ports.LoaderFunc(func(ctx context.Context) (*domain.Story, error) {
		return nil, loadErr
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLoad))

	assert.Equal(t, 1, failures)
	require.Len(t, rec.views, 1)
	v := rec.views[0]
	assert.Equal(t, domain.ViewError, v.Kind)
	assert.Equal(t, domain.ErrorTitle, v.Title)
	assert.Equal(t, runtime.DefaultMessages().LoadFailed, v.Message)
	assert.Empty(t, v.Choices)
	assert.False(t, v.BackEnabled)

	// Fatal for the session: nothing navigates, restart has no start scene.
	c.Goto("a")
	c.OpenRestart()
	c.ConfirmRestart()
	assert.Equal(t, domain.StatusError, c.Status())
	assert.Len(t, rec.views, 1)
}

func TestController_LoadSuccess(t *testing.T) {
	c := runtime.NewController()
	err := c.Load(context.Background(), ports.LoaderFunc(func(ctx context.Context) (*domain.Story, error) {
		return twoSceneStory(), nil
	}))
	require.NoError(t, err)
	assert.Equal(t, "A", c.View().Title)
	assert.NotNil(t, c.Story())
}

func TestController_InitializeNil(t *testing.T) {
	c := runtime.NewController()
	err := c.Initialize(nil)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
	assert.Equal(t, domain.StatusError, c.Status())
}

func TestController_Hooks(t *testing.T) {
	var events []domain.EventType
	record := func(ctx context.Context, e *domain.SceneEvent) { events = append(events, e.Type) }

	c, _ := newController(t, twoSceneStory(), runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnSceneEnter:      record,
		OnSceneUnresolved: record,
		OnBack:            record,
		OnRestart:         record,
	}))

	c.Choose(0)
	c.Back()
	c.Goto("zzz")
	c.OpenRestart()
	c.ConfirmRestart()

	assert.Equal(t, []domain.EventType{
		domain.EventSceneEnter,      // a
		domain.EventSceneEnter,      // b
		domain.EventBack,            // back
		domain.EventSceneEnter,      // a
		domain.EventSceneUnresolved, // zzz
		domain.EventRestart,         // restart
		domain.EventSceneEnter,      // a
	}, events)
}

func TestController_CustomMessages(t *testing.T) {
	c, _ := newController(t, twoSceneStory(), runtime.WithMessages(runtime.Messages{Ended: "Konec."}))
	v := c.Choose(0)
	assert.Equal(t, "Konec.", v.Message)

	v = c.Goto("nope")
	assert.Equal(t, runtime.DefaultMessages().UnknownScene, v.Message)
}
