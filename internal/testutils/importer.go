// Package testutils holds shared test doubles for the importer contract.
package testutils

import (
	"context"

	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
)

// StubImporter implements ports.TrainingDataImporter via optional function
// fields. Unset fields return the type's empty value.
type StubImporter struct {
	DomainFn  func(ctx context.Context) (*domain.Domain, error)
	StoriesFn func(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error)
	ConfigFn  func(ctx context.Context) (map[string]any, error)
	NLUDataFn func(ctx context.Context, language string) (*domain.TrainingData, error)
}

var _ ports.TrainingDataImporter = (*StubImporter)(nil)

func (s *StubImporter) Domain(ctx context.Context) (*domain.Domain, error) {
	if s.DomainFn != nil {
		return s.DomainFn(ctx)
	}
	return domain.Empty(), nil
}

func (s *StubImporter) Stories(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error) {
	if s.StoriesFn != nil {
		return s.StoriesFn(ctx, opts)
	}
	return domain.EmptyStoryGraph(), nil
}

func (s *StubImporter) Config(ctx context.Context) (map[string]any, error) {
	if s.ConfigFn != nil {
		return s.ConfigFn(ctx)
	}
	return map[string]any{}, nil
}

func (s *StubImporter) NLUData(ctx context.Context, language string) (*domain.TrainingData, error) {
	if s.NLUDataFn != nil {
		return s.NLUDataFn(ctx, language)
	}
	return domain.NewTrainingData(), nil
}
