package rasa_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aryaman4/rasa"
	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
	"github.com/aryaman4/rasa/pkg/registry"
)

// staticImporter serves a fixed data set. Real applications would use the
// file adapter or their own source; a custom importer only needs the four
// contract methods.
type staticImporter struct{}

func (staticImporter) Domain(context.Context) (*domain.Domain, error) {
	return &domain.Domain{Intents: []string{"greet"}}, nil
}

func (staticImporter) Stories(context.Context, ports.StoryOptions) (*domain.StoryGraph, error) {
	return domain.NewStoryGraph(domain.StoryStep{
		Name: "greeting path",
		Events: []domain.Event{
			domain.UserUttered{Text: "hi there", Intent: "greet"},
			domain.ActionExecuted{ActionName: "utter_greet", EndToEndText: "Hello!"},
		},
	}), nil
}

func (staticImporter) Config(context.Context) (map[string]any, error) {
	return map[string]any{"language": "en"}, nil
}

func (staticImporter) NLUData(context.Context, string) (*domain.TrainingData, error) {
	return domain.NewTrainingData(
		domain.NewUserMessage("hello", "greet"),
		domain.NewUserMessage("good morning", "greet"),
	), nil
}

// ExampleLoadFromConfigMap registers a custom source adapter and assembles
// the full importer tree around it. The tree augments the source's own data
// with examples derived from the story turns and with one synthetic example
// per built-in action.
func ExampleLoadFromConfigMap() {
	reg := rasa.DefaultRegistry()
	reg.Register("StaticImporter", func(registry.Config) (ports.TrainingDataImporter, error) {
		return staticImporter{}, nil
	})

	config := map[string]any{
		"importers": []any{
			map[string]any{"name": "StaticImporter"},
		},
	}

	importer, err := rasa.LoadFromConfigMap(config, "", "", nil, rasa.WithRegistry(reg))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	dom, err := importer.Domain(ctx)
	if err != nil {
		log.Fatal(err)
	}
	data, err := importer.NLUData(ctx, "en")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("intents:", strings.Join(dom.Intents, ", "))
	fmt.Println("actions:", strings.Join(dom.Actions, ", "))
	fmt.Println("examples:", len(data.Examples))
	// Output:
	// intents: greet
	// actions: utter_greet
	// examples: 13
}
