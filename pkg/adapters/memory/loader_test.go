package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/lotka/pkg/adapters/memory"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	loader, err := memory.NewFromStory(tests.ContractStory())
	require.NoError(t, err)

	tests.StoryLoaderContractTest(t, loader)
}

func TestLoader_MissingFields(t *testing.T) {
	tests.FailingLoaderContractTest(t, memory.NewLoader(map[string]any{"scenes": map[string]any{}}))
}

func TestLoader_CanceledContext(t *testing.T) {
	loader, err := memory.NewFromStory(tests.ContractStory())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = loader.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrLoad)
}

func TestNewFromStory_Nil(t *testing.T) {
	_, err := memory.NewFromStory(nil)
	assert.Error(t, err)
}
