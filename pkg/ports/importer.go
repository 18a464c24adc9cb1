package ports

import (
	"context"

	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/nlu"
)

// StoryOptions controls how a source retrieves and interprets story data.
// The zero value asks for everything except end-to-end annotations.
type StoryOptions struct {
	// Interpreter resolves end-to-end user text into intent labels. When nil,
	// sources fall back to nlu.RegexInterpreter.
	Interpreter nlu.Interpreter

	// TemplateVariables substitutes placeholders while story files are read.
	// Opaque to the composition layer; honored by source adapters.
	TemplateVariables map[string]string

	// UseE2E toggles whether end-to-end annotations (free-text user and bot
	// turns) are parsed at all.
	UseE2E bool

	// ExclusionPercentage drops that share of story steps for held-out
	// evaluation. Zero keeps everything.
	ExclusionPercentage int

	// DialogueOnly restricts the result to dialogue-structure steps, skipping
	// end-to-end annotations regardless of UseE2E. Set by the core-only
	// filter; honored by source adapters.
	DialogueOnly bool
}

// InterpreterOrDefault returns the configured interpreter, or the regex
// fallback when none was set.
func (o StoryOptions) InterpreterOrDefault() nlu.Interpreter {
	if o.Interpreter != nil {
		return o.Interpreter
	}
	return nlu.RegexInterpreter{}
}

// TrainingDataImporter is the common contract for retrieving a bot's training
// data, implemented by source adapters and by every composition wrapper.
//
// All four operations may be invoked concurrently and independently. None of
// them returns a nil value on success: absence of data yields the type's
// empty value. Any collaborator failure is propagated unchanged; no operation
// retries internally.
type TrainingDataImporter interface {
	// Domain retrieves the declared vocabulary of the bot.
	Domain(ctx context.Context) (*domain.Domain, error)

	// Stories retrieves the dialogue training data.
	Stories(ctx context.Context, opts StoryOptions) (*domain.StoryGraph, error)

	// Config retrieves the merged training configuration.
	Config(ctx context.Context) (map[string]any, error)

	// NLUData retrieves the NLU training examples. A non-empty language
	// restricts the result to examples tagged with that language.
	NLUData(ctx context.Context, language string) (*domain.TrainingData, error)
}
