package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryaman4/rasa"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rasa-data",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rasa-data version %s\n", rasa.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
