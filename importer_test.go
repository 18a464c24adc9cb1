package rasa_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaman4/rasa"
	"github.com/aryaman4/rasa/internal/testutils"
	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/importers"
	"github.com/aryaman4/rasa/pkg/ports"
	"github.com/aryaman4/rasa/pkg/registry"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromConfigDefaultsToFileImporter(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", "language: en\n")
	domainPath := writeFile(t, dir, "domain.yml", "intents:\n  - greet\n")
	storiesPath := writeFile(t, dir, "stories.yml", `stories:
  - story: greet path
    steps:
      - intent: greet
      - action: utter_greet
        bot: "Hello!"
`)

	importer, err := rasa.LoadFromConfig(configPath, domainPath, []string{storiesPath})
	require.NoError(t, err)

	ctx := context.Background()

	// Fetch stories with end-to-end parsing first; the cached graph then
	// feeds every later derivation.
	stories, err := importer.Stories(ctx, ports.StoryOptions{UseE2E: true})
	require.NoError(t, err)
	require.Len(t, stories.Steps, 1)

	d, err := importer.Domain(ctx)
	require.NoError(t, err)
	assert.Contains(t, d.Intents, "greet")
	// The end-to-end action is derived into the domain even though the
	// domain file never declared it.
	assert.Contains(t, d.Actions, "utter_greet")

	config, err := importer.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", config["language"])
}

func TestLoadFromConfigMapSkipsUnknownImporters(t *testing.T) {
	config := map[string]any{
		"importers": []any{
			map[string]any{"name": "NoSuchImporter"},
			map[string]any{}, // entry without a name
		},
	}

	importer, err := rasa.LoadFromConfigMap(config, "", "", nil)
	require.NoError(t, err)

	// All entries were skipped, so the default file importer answers.
	d, err := importer.Domain(context.Background())
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestLoadFromConfigMapUsesRegisteredImporter(t *testing.T) {
	built := 0
	reg := rasa.DefaultRegistry()
	reg.Register("StubImporter", func(cfg registry.Config) (ports.TrainingDataImporter, error) {
		built++
		assert.Equal(t, map[string]any{"flavor": "test"}, cfg.Options)
		return &testutils.StubImporter{
			DomainFn: func(ctx context.Context) (*domain.Domain, error) {
				return &domain.Domain{Intents: []string{"greet"}}, nil
			},
		}, nil
	})

	config := map[string]any{
		"importers": []any{
			map[string]any{"name": "StubImporter", "flavor": "test"},
		},
	}

	importer, err := rasa.LoadFromConfigMap(config, "", "", nil, rasa.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, 1, built)

	d, err := importer.Domain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"greet"}, d.Intents)
}

func TestLoadFromConfigMapFailingFactoryAborts(t *testing.T) {
	boom := errors.New("bad adapter config")
	reg := rasa.DefaultRegistry()
	reg.Register("FailingImporter", func(cfg registry.Config) (ports.TrainingDataImporter, error) {
		return nil, boom
	})

	config := map[string]any{
		"importers": []any{map[string]any{"name": "FailingImporter"}},
	}

	_, err := rasa.LoadFromConfigMap(config, "", "", nil, rasa.WithRegistry(reg))
	assert.ErrorIs(t, err, boom)
}

func TestLoadNLUFromConfigRestrictsToNLU(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", "language: en\n")
	writeFile(t, dir, "stories.yml", `stories:
  - story: greet path
    steps:
      - intent: greet
`)
	writeFile(t, dir, "nlu.yml", `nlu:
  - intent: greet
    examples: |
      - hi
`)

	importer, err := rasa.LoadNLUFromConfig(configPath, "", []string{dir})
	require.NoError(t, err)

	ctx := context.Background()
	stories, err := importer.Stories(ctx, ports.StoryOptions{})
	require.NoError(t, err)
	assert.True(t, stories.IsEmpty())

	nluData, err := importer.NLUData(ctx, "")
	require.NoError(t, err)
	// The authored example plus the default actions, nothing story-derived.
	assert.Len(t, nluData.Examples, 1+len(domain.DefaultActionNames()))
}

func TestLoadCoreFromConfigRestrictsToCore(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", "language: en\n")
	writeFile(t, dir, "stories.yml", `stories:
  - story: greet path
    steps:
      - intent: greet
`)

	importer, err := rasa.LoadCoreFromConfig(configPath, "", []string{dir})
	require.NoError(t, err)
	assert.IsType(t, &importers.CoreImporter{}, importer)

	nluData, err := importer.NLUData(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, nluData.IsEmpty())

	stories, err := importer.Stories(context.Background(), ports.StoryOptions{})
	require.NoError(t, err)
	assert.Len(t, stories.Steps, 1)
}

func TestLoadFromConfigMissingFile(t *testing.T) {
	_, err := rasa.LoadFromConfig(filepath.Join(t.TempDir(), "absent.yml"), "", nil)
	assert.Error(t, err)
}
