package importers

import (
	"context"
	"maps"

	"golang.org/x/sync/errgroup"

	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
)

// CombinedImporter presents several importers as a single instance. Every
// operation fans out to all children concurrently and folds their results in
// child order. If any child fails, the whole operation fails with that
// child's error.
type CombinedImporter struct {
	children []ports.TrainingDataImporter
}

var _ ports.TrainingDataImporter = (*CombinedImporter)(nil)

// NewCombinedImporter builds an aggregate over the given importers. The child
// order is significant only for Config, where later children override earlier
// ones on key conflicts.
func NewCombinedImporter(children ...ports.TrainingDataImporter) *CombinedImporter {
	return &CombinedImporter{children: children}
}

// fanOut invokes fetch for every child concurrently and returns the results
// in child order, regardless of completion order.
func fanOut[T any](ctx context.Context, children []ports.TrainingDataImporter, fetch func(ctx context.Context, child ports.TrainingDataImporter) (T, error)) ([]T, error) {
	results := make([]T, len(children))
	g, ctx := errgroup.WithContext(ctx)
	for i, child := range children {
		g.Go(func() error {
			result, err := fetch(ctx, child)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Domain implements ports.TrainingDataImporter.
func (c *CombinedImporter) Domain(ctx context.Context) (*domain.Domain, error) {
	domains, err := fanOut(ctx, c.children, func(ctx context.Context, child ports.TrainingDataImporter) (*domain.Domain, error) {
		return child.Domain(ctx)
	})
	if err != nil {
		return nil, err
	}

	merged := domain.Empty()
	for _, d := range domains {
		merged = merged.Merge(d)
	}
	return merged, nil
}

// Stories implements ports.TrainingDataImporter.
func (c *CombinedImporter) Stories(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error) {
	graphs, err := fanOut(ctx, c.children, func(ctx context.Context, child ports.TrainingDataImporter) (*domain.StoryGraph, error) {
		return child.Stories(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	merged := domain.EmptyStoryGraph()
	for _, g := range graphs {
		merged = merged.Merge(g)
	}
	return merged, nil
}

// Config implements ports.TrainingDataImporter. The fold is a shallow map
// union in child order: a later child's keys win on conflict.
func (c *CombinedImporter) Config(ctx context.Context) (map[string]any, error) {
	configs, err := fanOut(ctx, c.children, func(ctx context.Context, child ports.TrainingDataImporter) (map[string]any, error) {
		return child.Config(ctx)
	})
	if err != nil {
		return nil, err
	}

	merged := map[string]any{}
	for _, cfg := range configs {
		maps.Copy(merged, cfg)
	}
	return merged, nil
}

// NLUData implements ports.TrainingDataImporter.
func (c *CombinedImporter) NLUData(ctx context.Context, language string) (*domain.TrainingData, error) {
	data, err := fanOut(ctx, c.children, func(ctx context.Context, child ports.TrainingDataImporter) (*domain.TrainingData, error) {
		return child.NLUData(ctx, language)
	})
	if err != nil {
		return nil, err
	}

	merged := domain.NewTrainingData()
	for _, d := range data {
		merged = merged.Merge(d)
	}
	return merged, nil
}
