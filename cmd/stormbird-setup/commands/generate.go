package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/lineforce"
	"github.com/stormbird-sim/stormbird-setup/pkg/sailsetup"
	"github.com/stormbird-sim/stormbird-setup/pkg/simulation"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

// studyFile is the YAML input of the generate command. It describes a ship
// with one or more identical sails and the simulation settings to run them
// with.
type studyFile struct {
	Sails []sailEntry `yaml:"sails"`

	NrSections int     `yaml:"nr_sections"`
	Density    float64 `yaml:"density"`
	Dynamic    bool    `yaml:"dynamic"`
}

type sailEntry struct {
	Position    vectorEntry `yaml:"position"`
	ChordLength float64     `yaml:"chord_length"`
	Height      float64     `yaml:"height"`
	SailType    string      `yaml:"sail_type"`
}

type vectorEntry struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func newGenerateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate <study.yaml>",
		Short: "Generate a setup document from a study file",
		Long: `Generate a complete sail model document from a YAML study file.

The study file lists the sails of a ship by type, position, and main
dimensions. The command expands them into wing builders with canonical
section models, pairs them with the matching controller, and writes the
resulting document as JSON.`,
		Example: `  # Print the document for a two-rotor ship
  stormbird-setup generate ship.yaml

  # Write the document to a file
  stormbird-setup generate --output setup.json ship.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			log.Info().Str("path", path).Msg("Generating setup document")

			data, err := os.ReadFile(path)
			if err != nil {
				return document.NewIOFailure("read study file", err)
			}

			var study studyFile
			if err := yaml.Unmarshal(data, &study); err != nil {
				return document.NewSchemaViolation("study file is not valid YAML: " + err.Error())
			}

			doc, err := buildSailModel(&study)
			if err != nil {
				return err
			}

			out, err := document.Marshal(doc)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(out))
				return nil
			}
			if err := document.WriteFile(output, doc); err != nil {
				return err
			}

			log.Info().Str("output", output).Int("sails", len(study.Sails)).Msg("Wrote setup document")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default stdout)")

	return cmd
}

// buildSailModel expands a study into a complete sail model document. All
// sails share one controller, so the study must use a single sail type.
func buildSailModel(study *studyFile) (*simulation.CompleteSailModelBuilder, error) {
	if len(study.Sails) == 0 {
		return nil, document.NewSchemaViolation("study file lists no sails").WithField("sails")
	}
	for _, s := range study.Sails[1:] {
		if s.SailType != study.Sails[0].SailType {
			return nil, document.NewUnsupportedConfiguration("all sails in a study must share one sail type")
		}
	}

	model := lineforce.NewLineForceModelBuilder()
	if study.NrSections > 0 {
		model.NrSections = study.NrSections
	}
	if study.Density > 0 {
		model.Density = study.Density
	}

	var firstSetup *sailsetup.SimpleSailSetup
	for _, s := range study.Sails {
		setup := &sailsetup.SimpleSailSetup{
			Position:    spatial.New(s.Position.X, s.Position.Y, s.Position.Z),
			ChordLength: s.ChordLength,
			Height:      s.Height,
			SailType:    sailsetup.SailType(s.SailType),
		}
		if firstSetup == nil {
			firstSetup = setup
		}

		wing, err := setup.WingBuilder()
		if err != nil {
			return nil, err
		}
		if err := model.AddWingBuilder(wing); err != nil {
			return nil, err
		}
	}

	ctrl, err := firstSetup.ControllerBuilder()
	if err != nil {
		return nil, err
	}

	sim := simulation.NewBuilder()
	sim.LineForceModel = model
	if study.Dynamic {
		sim.SimulationSettings = simulation.NewDynamicMode()
	}

	return simulation.NewCompleteSailModelBuilder(sim, ctrl), nil
}
