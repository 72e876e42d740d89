package runner_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/lotka/internal/runtime"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *runtime.Controller {
	t.Helper()
	story := &domain.Story{
		StartID: "gate",
		Scenes: map[string]domain.Scene{
			"gate": {
				Title: "The Gate",
				Text:  "A gate stands open. Wind moves through it. Nobody watches.",
				Choices: []domain.Choice{
					{Text: "Walk through", NextID: "yard"},
					{Text: "Follow the wall", NextID: "nowhere"},
				},
			},
			"yard": {Title: "The Yard", Text: "Grass, mostly."},
		},
	}
	c := runtime.NewController()
	require.NoError(t, c.Initialize(story))
	return c
}

func run(t *testing.T, nav *runtime.Controller, input string, opts ...runner.Option) string {
	t.Helper()
	var out bytes.Buffer
	opts = append([]runner.Option{runner.WithIO(strings.NewReader(input), &out), runner.WithHeadless(true)}, opts...)
	r := runner.NewRunner(opts...)
	require.NoError(t, r.Run(context.Background(), nav))
	return out.String()
}

func TestRunner_ChooseAndBack(t *testing.T) {
	nav := newSession(t)

	out := run(t, nav, "1\nb\n")

	assert.Contains(t, out, "# The Gate")
	assert.Contains(t, out, "A gate stands open. Wind moves through it.\n\nNobody watches.")
	assert.Contains(t, out, "  1) Walk through")
	assert.Contains(t, out, "# The Yard")
	assert.Contains(t, out, "-- "+runtime.DefaultMessages().Ended+" --")
	assert.Equal(t, 2, strings.Count(out, "# The Gate"))
	assert.Equal(t, "gate", nav.State().CurrentNodeID)
	assert.Empty(t, nav.State().History)
}

func TestRunner_RestartFlow(t *testing.T) {
	nav := newSession(t)

	out := run(t, nav, "1\nr\nn\nr\ny\n")

	assert.Equal(t, 2, strings.Count(out, runner.RestartQuestion))
	assert.Equal(t, "gate", nav.State().CurrentNodeID)
	assert.Empty(t, nav.State().History)
	assert.False(t, nav.PromptOpen())
}

func TestRunner_RejectsUnavailableCommands(t *testing.T) {
	nav := newSession(t)

	out := run(t, nav, "b\n7\njump\n")

	assert.Contains(t, out, "There is nothing to go back to.")
	assert.Contains(t, out, "There is no choice 7.")
	assert.Contains(t, out, "Unknown command.")
	assert.Equal(t, "gate", nav.State().CurrentNodeID)
}

func TestRunner_UnknownSceneAndRecovery(t *testing.T) {
	nav := newSession(t)

	out := run(t, nav, "2\nb\n")

	assert.Contains(t, out, "# error")
	assert.Contains(t, out, runtime.DefaultMessages().UnknownScene)
	assert.Equal(t, domain.StatusReady, nav.Status())
	assert.Equal(t, "gate", nav.State().CurrentNodeID)
}

func TestRunner_QuitStopsReading(t *testing.T) {
	nav := newSession(t)

	run(t, nav, "q\n1\n")

	assert.Equal(t, "gate", nav.State().CurrentNodeID)
}

func TestRunner_Renderer(t *testing.T) {
	nav := newSession(t)

	out := run(t, nav, "", runner.WithRenderer(func(s string) (string, error) {
		return strings.ToUpper(s), nil
	}))

	assert.Contains(t, out, "# THE GATE")
	assert.Contains(t, out, "  1) Walk through")
}

func TestRunner_Banner(t *testing.T) {
	nav := newSession(t)
	var out bytes.Buffer

	r := runner.NewRunner(runner.WithIO(strings.NewReader(""), &out))
	require.NoError(t, r.Run(context.Background(), nav))

	assert.True(t, strings.HasPrefix(out.String(), "--- Lotka"))
	assert.Contains(t, out.String(), "[1-2] choose")
	assert.NotContains(t, out.String(), "[b] back")
}

func TestRunner_CancelledContext(t *testing.T) {
	nav := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := runner.NewRunner(runner.WithIO(strings.NewReader("1\n"), &out), runner.WithHeadless(true))
	err := r.Run(ctx, nav)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "gate", nav.State().CurrentNodeID)
}

func TestRunner_JSONHandler(t *testing.T) {
	nav := newSession(t)
	var out bytes.Buffer

	h := runner.NewJSONHandler(strings.NewReader("\"1\"\nback\n9\n"), &out)
	r := runner.NewRunner(runner.WithInputHandler(h))
	require.NoError(t, r.Run(context.Background(), nav))

	var lines []map[string]any
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}

	require.Len(t, lines, 4)
	assert.Equal(t, "gate", lines[0]["scene_id"])
	assert.Equal(t, "yard", lines[1]["scene_id"])
	assert.Equal(t, true, lines[1]["ended"])
	assert.Equal(t, "gate", lines[2]["scene_id"])
	assert.Equal(t, "There is no choice 9.", lines[3]["notice"])
}
