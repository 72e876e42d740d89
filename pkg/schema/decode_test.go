package schema_test

import (
	"errors"
	"testing"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonStory = `{
	"startId": "a",
	"scenes": {
		"a": {"title": "A", "text": "Hi.", "choices": [{"text": "go", "nextId": "b"}]},
		"b": {"title": "B", "text": "Bye.", "choices": []}
	}
}`

const yamlStory = `
startId: a
scenes:
  a:
    title: A
    text: Hi.
    choices:
      - text: go
        nextId: b
  b:
    title: B
    text: Bye.
`

func TestParse(t *testing.T) {
	for name, doc := range map[string]string{"json": jsonStory, "yaml": yamlStory} {
		t.Run(name, func(t *testing.T) {
			story, err := schema.Parse([]byte(doc))
			require.NoError(t, err)

			assert.Equal(t, "a", story.StartID)
			require.Len(t, story.Scenes, 2)

			a, ok := story.Resolve("a")
			require.True(t, ok)
			assert.Equal(t, "A", a.Title)
			assert.Equal(t, []domain.Choice{{Text: "go", NextID: "b"}}, a.Choices)

			b, ok := story.Resolve("b")
			require.True(t, ok)
			assert.True(t, b.Terminal())
		})
	}
}

func TestParse_SyntaxErrorIsLoadFailure(t *testing.T) {
	_, err := schema.Parse([]byte(`{"startId": "a",`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.True(t, domain.IsInitializationFailure(err))
}

func TestDecode_StructureFailures(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]any
		errKey string
	}{
		{name: "nil document", raw: nil, errKey: schema.KeyStartID},
		{name: "missing startId", raw: map[string]any{"scenes": map[string]any{}}, errKey: schema.KeyStartID},
		{name: "empty startId", raw: map[string]any{"startId": "", "scenes": map[string]any{}}, errKey: schema.KeyStartID},
		{name: "missing scenes", raw: map[string]any{"startId": "a"}, errKey: schema.KeyScenes},
		{name: "scenes not a mapping", raw: map[string]any{"startId": "a", "scenes": []any{"a"}}, errKey: schema.KeyScenes},
		{name: "start not a scene", raw: map[string]any{"startId": "a", "scenes": map[string]any{"b": map[string]any{}}}, errKey: schema.KeyStartID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Decode(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStructure)
			assert.True(t, domain.IsInitializationFailure(err))

			errs := schema.ValidationErrors(err)
			require.NotEmpty(t, errs)
			var vErr *schema.ValidationError
			require.True(t, errors.As(errs[0], &vErr))
			assert.Equal(t, tt.errKey, vErr.Key)
		})
	}
}

func TestDecode_DanglingChoiceIsAccepted(t *testing.T) {
	story, err := schema.Decode(map[string]any{
		"startId": "a",
		"scenes": map[string]any{
			"a": map[string]any{
				"title":   "A",
				"choices": []any{map[string]any{"text": "void", "nextId": "missing"}},
			},
		},
	})
	require.NoError(t, err)

	_, ok := story.Resolve("missing")
	assert.False(t, ok)
}

func TestDecode_BadSceneShape(t *testing.T) {
	_, err := schema.Decode(map[string]any{
		"startId": "a",
		"scenes": map[string]any{
			"a": map[string]any{"choices": "not a list"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStructure)
}
