package main

import (
	"github.com/spf13/cobra"

	"github.com/skosovsky/toolschema"
)

func newOrganizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Flatten the classified methods of a schema into a tool list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loggerFromViper(cmd)
			if err != nil {
				return err
			}
			schema, err := toolschema.LoadAggregated(flagOrViperString(cmd, "schema", "schema_file"))
			if err != nil {
				return err
			}
			classification, err := toolschema.LoadClassification(flagOrViperString(cmd, "classification", "classification_file"))
			if err != nil {
				return err
			}

			tools := toolschema.Organize(schema, classification)
			logger.Debug("tools selected", "count", len(tools), "names", tools.Names())

			var v any = tools
			if flagOrViperBool(cmd, "envelope", "organize.envelope") {
				v = tools.Tools()
			}
			out, _ := cmd.Flags().GetString("out")
			return writeResult(cmd, logger, out, v, func(path string) (string, error) {
				return writeFile(path, v)
			})
		},
	}

	cmd.Flags().String("schema", toolschema.DefaultSchemaFile, "Aggregated schema file.")
	cmd.Flags().String("classification", toolschema.DefaultClassificationFile, "Classification file (.json, .yaml or .yml).")
	cmd.Flags().StringP("out", "o", stdoutPath, "Output file, or - for stdout.")
	cmd.Flags().Bool("envelope", false, "Wrap each entry as {\"type\": \"function\", \"function\": ...}.")

	return cmd
}
