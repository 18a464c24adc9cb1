package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryaman4/rasa"
	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the training data for consistency",
	Long:  `Verifies that every intent and action referenced by a story is declared in the domain.`,
	Run: func(cmd *cobra.Command, args []string) {
		findings, err := runValidate(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		if len(findings) > 0 {
			for _, finding := range findings {
				fmt.Println(finding)
			}
			os.Exit(1)
		}
		fmt.Println("Training data is consistent.")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) ([]string, error) {
	logger := newLogger(cmd)
	configPath, domainPath, dataPaths := importerPaths(cmd)

	importer, err := rasa.LoadFromConfig(configPath, domainPath, dataPaths, rasa.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return validateReferences(cmd.Context(), importer)
}

// validateReferences cross-checks story references against the domain. The
// domain already includes derived end-to-end actions, so only genuinely
// undeclared names are reported. Built-in actions are always allowed.
func validateReferences(ctx context.Context, importer ports.TrainingDataImporter) ([]string, error) {
	d, err := importer.Domain(ctx)
	if err != nil {
		return nil, err
	}
	stories, err := importer.Stories(ctx, ports.StoryOptions{UseE2E: true})
	if err != nil {
		return nil, err
	}

	intents := nameSet(d.Intents)
	actions := nameSet(d.Actions)
	for _, name := range domain.DefaultActionNames() {
		actions[name] = struct{}{}
	}
	// Responses count as actions a story may reference.
	for name := range d.Responses {
		actions[name] = struct{}{}
	}

	var findings []string
	for _, step := range stories.Steps {
		for _, event := range step.Events {
			switch ev := event.(type) {
			case domain.UserUttered:
				if ev.Intent != "" {
					if _, ok := intents[ev.Intent]; !ok {
						findings = append(findings, fmt.Sprintf(
							"story %q references undeclared intent %q", step.Name, ev.Intent))
					}
				}
			case domain.ActionExecuted:
				if ev.ActionName != "" {
					if _, ok := actions[ev.ActionName]; !ok {
						findings = append(findings, fmt.Sprintf(
							"story %q references undeclared action %q", step.Name, ev.ActionName))
					}
				}
			}
		}
	}
	return findings, nil
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
