package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a pipeline manifest for consistency",
	Long:  `Loads the manifest, registers every hook, and compiles the execution plan, reporting duplicate IDs, unknown dependencies, cycles and type mismatches.`,
	Run: func(cmd *cobra.Command, args []string) {
		pipe, err := pipelineFromManifest(cmd)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		for _, w := range pipe.Warnings() {
			fmt.Printf("Warning: %s\n", w)
		}
		fmt.Printf("Pipeline %q is valid: %d hooks scheduled.\n", pipe.Name, pipe.Plan().HookCount())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
