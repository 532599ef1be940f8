package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/schema"
	"github.com/stormbird-sim/stormbird-setup/pkg/simulation"
)

func newValidateCommand() *cobra.Command {
	var (
		docType    string
		skipSchema bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a setup document",
		Long: `Validate a setup document before it is handed to the engine.

This command checks:
  - JSON syntax validity
  - Unknown or misspelled fields at any nesting depth
  - Variant tags of all union-typed settings
  - Numeric ranges and table lengths
  - CUE schema conformance of the wire layout`,
		Example: `  # Validate a lifting line simulation document
  stormbird-setup validate simulation.json

  # Validate a complete sail model document
  stormbird-setup validate --type sail-model ship.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			log.Info().
				Str("path", path).
				Str("type", docType).
				Msg("Validating setup document")

			data, err := os.ReadFile(path)
			if err != nil {
				return document.NewIOFailure("read setup document", err)
			}

			var schemaName string
			switch docType {
			case "simulation":
				schemaName = "simulation"
				var doc simulation.Builder
				if err := document.Unmarshal(data, &doc); err != nil {
					return err
				}
			case "sail-model":
				schemaName = "sail_model"
				var doc simulation.CompleteSailModelBuilder
				if err := document.Unmarshal(data, &doc); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown document type %q (want simulation or sail-model)", docType)
			}

			if !skipSchema {
				registry := schema.NewRegistry()
				if err := registry.ValidateJSON(cmd.Context(), schemaName, data); err != nil {
					return err
				}
			}

			log.Info().Str("path", path).Msg("Document is valid")
			fmt.Printf("%s: valid %s document\n", path, docType)

			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "simulation", "document type: simulation or sail-model")
	cmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "skip the CUE schema check")

	return cmd
}
