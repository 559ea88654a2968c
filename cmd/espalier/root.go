package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/manifest"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier is a declarative hook pipeline engine",
	Long:  `Espalier compiles declarative hook manifests into deterministic execution plans and runs them with phase-aware failure semantics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("manifest", "f", "pipeline.yaml", "Path to the pipeline manifest")
}

// pipelineFromManifest loads the manifest behind --manifest and compiles it.
func pipelineFromManifest(cmd *cobra.Command) (*espalier.Pipeline, error) {
	path, _ := cmd.Flags().GetString("manifest")

	m, err := manifest.LoadFile(path)
	if err != nil {
		return nil, err
	}

	opts := []espalier.Option{}
	if m.ContractCategory != "" {
		opts = append(opts, espalier.WithContractCategory(m.ContractCategory))
	}
	if !m.TypingEnforced() {
		opts = append(opts, espalier.WithAdvisoryTyping())
	}

	pipe := espalier.New(m.Pipeline, opts...)
	if err := m.Apply(pipe.Registry()); err != nil {
		return nil, err
	}
	if err := pipe.Build(); err != nil {
		return nil, err
	}
	return pipe, nil
}
