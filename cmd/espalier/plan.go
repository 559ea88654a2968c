package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the deterministic execution order",
	Long:  `Compiles the manifest and prints, per phase, the exact order hooks will execute in, including the phase's failure policy.`,
	Run: func(cmd *cobra.Command, args []string) {
		pipe, err := pipelineFromManifest(cmd)
		if err != nil {
			fmt.Printf("Plan failed: %v\n", err)
			os.Exit(1)
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			printPlanJSON(pipe)
		case "text":
			printPlanText(pipe)
		default:
			fmt.Printf("Unknown format %q (want text or json)\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().String("format", "text", "Output format: text or json")
}

func printPlanText(pipe *espalier.Pipeline) {
	p := pipe.Plan()
	fmt.Printf("Pipeline: %s\n", pipe.Name)
	for _, phase := range p.Phases() {
		pp := p.ForPhase(phase)
		policy := "continue-on-error"
		if pp.FailFast {
			policy = "fail-fast"
		}
		fmt.Printf("%s (%s)\n", phase, policy)
		if len(pp.Hooks) == 0 {
			fmt.Println("  (empty)")
			continue
		}
		for i, h := range pp.Hooks {
			line := fmt.Sprintf("  %d. %s -> %s", i+1, h.ID, h.CallableRef)
			if len(h.DependsOn) > 0 {
				line += fmt.Sprintf(" (after %s)", strings.Join(h.DependsOn, ", "))
			}
			if h.Timeout > 0 {
				line += fmt.Sprintf(" [timeout %s]", h.Timeout)
			}
			fmt.Println(line)
		}
	}
}

type planJSON struct {
	Pipeline string          `json:"pipeline"`
	Phases   []planPhaseJSON `json:"phases"`
}

type planPhaseJSON struct {
	Phase    string   `json:"phase"`
	FailFast bool     `json:"fail_fast"`
	Hooks    []string `json:"hooks"`
}

func printPlanJSON(pipe *espalier.Pipeline) {
	p := pipe.Plan()
	out := planJSON{Pipeline: pipe.Name}
	for _, phase := range p.Phases() {
		pp := p.ForPhase(phase)
		pj := planPhaseJSON{Phase: phase.String(), FailFast: pp.FailFast, Hooks: []string{}}
		for _, h := range pp.Hooks {
			pj.Hooks = append(pj.Hooks, h.ID)
		}
		out.Phases = append(out.Phases, pj)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Printf("Failed to encode plan: %v\n", err)
		os.Exit(1)
	}
}
