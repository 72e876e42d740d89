package tests

import (
	"context"
	"testing"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractStory is the document every loader contract fixture must serve.
// Adapters seed their backend with an equivalent document before calling
// StoryLoaderContractTest.
func ContractStory() *domain.Story {
	return &domain.Story{
		StartID: "a",
		Scenes: map[string]domain.Scene{
			"a": {Title: "A", Text: "Hi.", Choices: []domain.Choice{{Text: "go", NextID: "b"}}},
			"b": {Title: "B", Text: "Bye."},
		},
	}
}

// StoryLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.StoryLoader.
func StoryLoaderContractTest(t *testing.T, loader ports.StoryLoader) {
	t.Helper()

	want := ContractStory()

	t.Run("Load_Success", func(t *testing.T) {
		story, err := loader.Load(context.Background())
		require.NoError(t, err)
		require.NotNil(t, story)

		assert.Equal(t, want.StartID, story.StartID)
		assert.ElementsMatch(t, want.SceneIDs(), story.SceneIDs())

		for _, id := range want.SceneIDs() {
			got, ok := story.Resolve(id)
			require.True(t, ok, "scene %s missing", id)
			exp, _ := want.Resolve(id)
			assert.Equal(t, exp.Title, got.Title)
			assert.Equal(t, exp.Text, got.Text)
			assert.Equal(t, len(exp.Choices), len(got.Choices))
			for i := range exp.Choices {
				assert.Equal(t, exp.Choices[i], got.Choices[i])
			}
		}
	})

	t.Run("Load_Repeatable", func(t *testing.T) {
		first, err := loader.Load(context.Background())
		require.NoError(t, err)
		second, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first.SceneIDs(), second.SceneIDs())
	})
}

// FailingLoaderContractTest verifies that a misconfigured adapter reports an
// initialization failure instead of a partial story.
func FailingLoaderContractTest(t *testing.T, loader ports.StoryLoader) {
	t.Helper()

	story, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, story)
	assert.True(t, domain.IsInitializationFailure(err), "expected load or structure failure, got %v", err)
}
