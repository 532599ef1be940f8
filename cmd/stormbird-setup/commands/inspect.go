package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stormbird-sim/stormbird-setup/pkg/results"
)

func newInspectCommand() *cobra.Command {
	var last bool

	cmd := &cobra.Command{
		Use:   "inspect <results.json>",
		Short: "Inspect a result history written by the engine",
		Long: `Inspect a result history file written by the engine after a simulation.

Prints one line per time sample with the iteration count, residual, total
integrated force, and total input power.`,
		Example: `  # Summarize every sample
  stormbird-setup inspect results.json

  # Only the final sample
  stormbird-setup inspect --last results.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			log.Info().Str("path", path).Msg("Reading result history")

			history, err := results.HistoryFromFile(path)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Println("result history is empty")
				return nil
			}

			samples := history
			if last {
				samples = history[len(history)-1:]
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summarize(samples))
			}

			fmt.Printf("%d samples, %d wings, %d span lines\n",
				len(history), history[0].NrOfWings(), history[0].NrSpanLines())
			for _, s := range summarize(samples) {
				fmt.Printf("t=%10.3f  iters=%4d  residual=%12.5e  force=(%.1f, %.1f, %.1f)  power=%.1f\n",
					s.Time, s.Iterations, s.Residual,
					s.ForceSum.X, s.ForceSum.Y, s.ForceSum.Z, s.InputPower)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&last, "last", false, "only show the final sample")

	return cmd
}

type sampleSummary struct {
	Time       float64     `json:"time"`
	Iterations int         `json:"iterations"`
	Residual   float64     `json:"residual"`
	ForceSum   forceVector `json:"force_sum"`
	MomentSum  forceVector `json:"moment_sum"`
	InputPower float64     `json:"input_power"`
}

type forceVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func summarize(samples []results.SimulationResult) []sampleSummary {
	out := make([]sampleSummary, len(samples))
	for i := range samples {
		s := &samples[i]
		force := s.IntegratedForcesSum()
		moment := s.IntegratedMomentsSum()
		out[i] = sampleSummary{
			Time:       s.Time,
			Iterations: s.Iterations,
			Residual:   s.Residual,
			ForceSum:   forceVector{force.X, force.Y, force.Z},
			MomentSum:  forceVector{moment.X, moment.Y, moment.Z},
			InputPower: s.InputPowerSum(),
		}
	}
	return out
}
