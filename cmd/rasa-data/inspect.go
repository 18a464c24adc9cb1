package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryaman4/rasa"
	"github.com/aryaman4/rasa/pkg/ports"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize the assembled training data",
	Long:  `Loads the configured importers and prints counts of declared and derived training data.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Inspect failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	inspectCmd.Flags().String("language", "", "Restrict NLU data to one language")
	inspectCmd.Flags().Bool("e2e", false, "Parse end-to-end story annotations")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command) error {
	logger := newLogger(cmd)
	configPath, domainPath, dataPaths := importerPaths(cmd)
	language, _ := cmd.Flags().GetString("language")
	useE2E, _ := cmd.Flags().GetBool("e2e")

	importer, err := rasa.LoadFromConfig(configPath, domainPath, dataPaths, rasa.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	d, err := importer.Domain(ctx)
	if err != nil {
		return err
	}
	stories, err := importer.Stories(ctx, ports.StoryOptions{UseE2E: useE2E})
	if err != nil {
		return err
	}
	nluData, err := importer.NLUData(ctx, language)
	if err != nil {
		return err
	}
	config, err := importer.Config(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Domain:   %d intents, %d entities, %d slots, %d responses, %d actions, %d forms\n",
		len(d.Intents), len(d.Entities), len(d.Slots), len(d.Responses), len(d.Actions), len(d.Forms))
	fmt.Printf("Stories:  %d steps\n", len(stories.Steps))
	fmt.Printf("NLU:      %d examples\n", len(nluData.Examples))
	fmt.Printf("Config:   %d keys\n", len(config))
	return nil
}
