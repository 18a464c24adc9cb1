package importers

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/aryaman4/rasa/internal/logging"
	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
)

// E2EImporter wraps one importer and derives additional training signal from
// its stories:
//
//   - action names that appear with end-to-end text become first-class members
//     of the domain's action list, and
//   - user and bot story turns become NLU training examples, alongside one
//     synthetic example per built-in action.
//
// The story fetch is memoized for the lifetime of the instance: the first
// successful fetch wins and later calls return the cached graph regardless of
// their options. A failed fetch leaves the cache unset so a later call can
// retry.
type E2EImporter struct {
	source ports.TrainingDataImporter
	logger *slog.Logger

	group   singleflight.Group
	stories atomic.Pointer[domain.StoryGraph]
}

var _ ports.TrainingDataImporter = (*E2EImporter)(nil)

// E2EOption configures an E2EImporter.
type E2EOption func(*E2EImporter)

// WithLogger sets the logger used for derivation diagnostics.
func WithLogger(logger *slog.Logger) E2EOption {
	return func(e *E2EImporter) {
		e.logger = logger
	}
}

// NewE2EImporter wraps the given importer. The wrapper takes ownership of the
// wrapped value.
func NewE2EImporter(source ports.TrainingDataImporter, opts ...E2EOption) *E2EImporter {
	e := &E2EImporter{
		source: source,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stories returns the wrapped importer's stories, fetching at most once per
// instance lifetime. Concurrent first calls are collapsed into a single fetch.
func (e *E2EImporter) Stories(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error) {
	if cached := e.stories.Load(); cached != nil {
		return cached, nil
	}

	result, err, _ := e.group.Do("stories", func() (any, error) {
		// Re-check under the flight: a fetch that completed between the fast
		// path and Do must not trigger another parse.
		if cached := e.stories.Load(); cached != nil {
			return cached, nil
		}
		graph, err := e.source.Stories(ctx, opts)
		if err != nil {
			return nil, err
		}
		e.stories.Store(graph)
		return graph, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.StoryGraph), nil
}

// Domain merges the wrapped importer's domain with a derived domain holding
// the action names of all end-to-end bot turns found in the stories. Both
// halves are fetched concurrently.
func (e *E2EImporter) Domain(ctx context.Context) (*domain.Domain, error) {
	var original, derived *domain.Domain

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		original, err = e.source.Domain(ctx)
		return err
	})
	g.Go(func() (err error) {
		derived, err = e.domainFromStories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return original.Merge(derived), nil
}

// domainFromStories builds a minimal domain whose sole populated field is the
// set of action names executed with end-to-end text. Without this, an action
// that only ever appears as literal bot text would be invisible to the
// policy and classification layers.
func (e *E2EImporter) domainFromStories(ctx context.Context) (*domain.Domain, error) {
	stories, err := e.Stories(ctx, ports.StoryOptions{})
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var names []string
	for _, step := range stories.Steps {
		for _, event := range step.Events {
			action, ok := event.(domain.ActionExecuted)
			if !ok || action.EndToEndText == "" || action.ActionName == "" {
				continue
			}
			if _, dup := seen[action.ActionName]; dup {
				continue
			}
			seen[action.ActionName] = struct{}{}
			names = append(names, action.ActionName)
		}
	}

	return domain.WithActions(names), nil
}

// Config delegates to the wrapped importer.
func (e *E2EImporter) Config(ctx context.Context) (map[string]any, error) {
	return e.source.Config(ctx)
}

// NLUData merges three sources by concatenation: the wrapped importer's NLU
// data, examples derived from the story turns, and the synthetic
// default-action examples. The wrapped data and the story derivation are
// fetched concurrently.
func (e *E2EImporter) NLUData(ctx context.Context, language string) (*domain.TrainingData, error) {
	var wrapped, fromStories *domain.TrainingData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wrapped, err = e.source.NLUData(ctx, language)
		return err
	})
	g.Go(func() (err error) {
		fromStories, err = e.trainingDataFromStories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return DefaultActionData().Merge(wrapped).Merge(fromStories), nil
}

// NLUDataWithoutStories returns the wrapped importer's NLU data plus the
// default-action examples, skipping the story derivation. The NLU-only filter
// reaches this path when the pipeline is restricted to NLU operation.
func (e *E2EImporter) NLUDataWithoutStories(ctx context.Context, language string) (*domain.TrainingData, error) {
	wrapped, err := e.source.NLUData(ctx, language)
	if err != nil {
		return nil, err
	}
	return DefaultActionData().Merge(wrapped), nil
}

// trainingDataFromStories maps story turns to NLU examples: user utterances
// carry their intent label, bot turns with end-to-end text carry the action
// name and text. Bot turns without end-to-end text yield nothing.
func (e *E2EImporter) trainingDataFromStories(ctx context.Context) (*domain.TrainingData, error) {
	stories, err := e.Stories(ctx, ports.StoryOptions{})
	if err != nil {
		return nil, err
	}

	var messages []*domain.Message
	for _, step := range stories.Steps {
		for _, event := range step.Events {
			if message := messageFromEvent(event); message != nil {
				messages = append(messages, message)
			}
		}
	}

	e.logger.Debug("derived NLU examples from stories", "examples", len(messages))
	return domain.NewTrainingData(messages...), nil
}

func messageFromEvent(event domain.Event) *domain.Message {
	switch ev := event.(type) {
	case domain.UserUttered:
		return domain.NewUserMessage(ev.Text, ev.Intent)
	case domain.ActionExecuted:
		if ev.EndToEndText == "" {
			return nil
		}
		return domain.NewActionMessage(ev.ActionName, ev.EndToEndText)
	default:
		return nil
	}
}
