package importers

import (
	"context"

	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
)

// nluOnlySource is the interface upgrade through which NLUImporter asks a
// wrapped pipeline to skip dialogue-derived augmentation. E2EImporter
// implements it.
type nluOnlySource interface {
	NLUDataWithoutStories(ctx context.Context, language string) (*domain.TrainingData, error)
}

// NLUImporter restricts a composed tree to NLU training data: the domain and
// the stories come back empty, and the wrapped pipeline is asked to skip any
// story-derived augmentation of the NLU examples.
type NLUImporter struct {
	source ports.TrainingDataImporter
}

var _ ports.TrainingDataImporter = (*NLUImporter)(nil)

// NewNLUImporter wraps the given importer. The wrapper takes ownership of the
// wrapped value.
func NewNLUImporter(source ports.TrainingDataImporter) *NLUImporter {
	return &NLUImporter{source: source}
}

// Domain returns the empty domain unconditionally.
func (n *NLUImporter) Domain(context.Context) (*domain.Domain, error) {
	return domain.Empty(), nil
}

// Stories returns the empty story graph unconditionally.
func (n *NLUImporter) Stories(context.Context, ports.StoryOptions) (*domain.StoryGraph, error) {
	return domain.EmptyStoryGraph(), nil
}

// Config delegates to the wrapped importer.
func (n *NLUImporter) Config(ctx context.Context) (map[string]any, error) {
	return n.source.Config(ctx)
}

// NLUData delegates to the wrapped importer, skipping story-derived
// augmentation when the wrapped pipeline supports that.
func (n *NLUImporter) NLUData(ctx context.Context, language string) (*domain.TrainingData, error) {
	if source, ok := n.source.(nluOnlySource); ok {
		return source.NLUDataWithoutStories(ctx, language)
	}
	return n.source.NLUData(ctx, language)
}

// CoreImporter restricts a composed tree to dialogue training data: NLU data
// comes back empty and story retrieval is limited to dialogue-structure steps.
type CoreImporter struct {
	source ports.TrainingDataImporter
}

var _ ports.TrainingDataImporter = (*CoreImporter)(nil)

// NewCoreImporter wraps the given importer. The wrapper takes ownership of
// the wrapped value.
func NewCoreImporter(source ports.TrainingDataImporter) *CoreImporter {
	return &CoreImporter{source: source}
}

// Domain delegates to the wrapped importer.
func (c *CoreImporter) Domain(ctx context.Context) (*domain.Domain, error) {
	return c.source.Domain(ctx)
}

// Stories delegates to the wrapped importer with DialogueOnly set.
func (c *CoreImporter) Stories(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error) {
	opts.DialogueOnly = true
	return c.source.Stories(ctx, opts)
}

// Config delegates to the wrapped importer.
func (c *CoreImporter) Config(ctx context.Context) (map[string]any, error) {
	return c.source.Config(ctx)
}

// NLUData returns the empty training data unconditionally.
func (c *CoreImporter) NLUData(context.Context, string) (*domain.TrainingData, error) {
	return domain.NewTrainingData(), nil
}
