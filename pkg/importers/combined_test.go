package importers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaman4/rasa/internal/testutils"
	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/importers"
	"github.com/aryaman4/rasa/pkg/ports"
)

func domainImporter(d *domain.Domain, delay time.Duration) *testutils.StubImporter {
	return &testutils.StubImporter{
		DomainFn: func(ctx context.Context) (*domain.Domain, error) {
			time.Sleep(delay)
			return d, nil
		},
	}
}

func TestCombinedImporterMergesDomains(t *testing.T) {
	// The first child completes last; the fold must still follow child order.
	combined := importers.NewCombinedImporter(
		domainImporter(&domain.Domain{Intents: []string{"greet"}}, 20*time.Millisecond),
		domainImporter(&domain.Domain{Intents: []string{"reserve"}}, 0),
	)

	merged, err := combined.Domain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"greet", "reserve"}, merged.Intents)
}

func TestCombinedImporterConfigPrecedence(t *testing.T) {
	first := &testutils.StubImporter{ConfigFn: func(ctx context.Context) (map[string]any, error) {
		return map[string]any{"a": 1}, nil
	}}
	second := &testutils.StubImporter{ConfigFn: func(ctx context.Context) (map[string]any, error) {
		// Completes before the first child reports; order must still win.
		return map[string]any{"a": 2, "b": 3}, nil
	}}

	combined := importers.NewCombinedImporter(first, second)
	config, err := combined.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 2, "b": 3}, config)
}

func TestCombinedImporterMergesStoriesAndNLUData(t *testing.T) {
	first := &testutils.StubImporter{
		StoriesFn: func(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error) {
			return domain.NewStoryGraph(domain.StoryStep{Name: "a"}), nil
		},
		NLUDataFn: func(ctx context.Context, language string) (*domain.TrainingData, error) {
			return domain.NewTrainingData(domain.NewUserMessage("hi", "greet")), nil
		},
	}
	second := &testutils.StubImporter{
		StoriesFn: func(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error) {
			return domain.NewStoryGraph(domain.StoryStep{Name: "b"}), nil
		},
		NLUDataFn: func(ctx context.Context, language string) (*domain.TrainingData, error) {
			return domain.NewTrainingData(domain.NewUserMessage("hi", "greet")), nil
		},
	}

	combined := importers.NewCombinedImporter(first, second)

	stories, err := combined.Stories(context.Background(), ports.StoryOptions{})
	require.NoError(t, err)
	require.Len(t, stories.Steps, 2)
	assert.Equal(t, "a", stories.Steps[0].Name)
	assert.Equal(t, "b", stories.Steps[1].Name)

	nluData, err := combined.NLUData(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, nluData.Examples, 2)
}

func TestCombinedImporterPropagatesChildError(t *testing.T) {
	boom := errors.New("parse failure")
	failing := &testutils.StubImporter{DomainFn: func(ctx context.Context) (*domain.Domain, error) {
		return nil, boom
	}}

	combined := importers.NewCombinedImporter(
		domainImporter(&domain.Domain{Intents: []string{"greet"}}, 0),
		failing,
	)

	_, err := combined.Domain(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCombinedImporterNoChildren(t *testing.T) {
	combined := importers.NewCombinedImporter()

	d, err := combined.Domain(context.Background())
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())

	config, err := combined.Config(context.Background())
	require.NoError(t, err)
	assert.Empty(t, config)
}

func TestCombinedImporterPassesOptionsThrough(t *testing.T) {
	var received ports.StoryOptions
	child := &testutils.StubImporter{
		StoriesFn: func(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error) {
			received = opts
			return domain.EmptyStoryGraph(), nil
		},
	}

	combined := importers.NewCombinedImporter(child)
	_, err := combined.Stories(context.Background(), ports.StoryOptions{UseE2E: true, ExclusionPercentage: 25})
	require.NoError(t, err)
	assert.True(t, received.UseE2E)
	assert.Equal(t, 25, received.ExclusionPercentage)
}
