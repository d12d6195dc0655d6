package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skosovsky/toolschema"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Write a classification map that selects every method of a schema",
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

			classification := toolschema.GenerateClassification(schema)
			excludes, _ := cmd.Flags().GetStringArray("exclude")
			for _, ref := range excludes {
				class, method, ok := strings.Cut(ref, ".")
				if !ok {
					return fmt.Errorf("invalid --exclude %q: want Class.method", ref)
				}
				if _, found := schema.Method(class, method); !found {
					return fmt.Errorf("invalid --exclude %q: no such method in schema", ref)
				}
				classification.Set(class, method, false)
			}

			out := flagOrViperString(cmd, "out", "classification_file")
			return writeResult(cmd, logger, out, classification, func(path string) (string, error) {
				return toolschema.SaveClassification(path, classification)
			})
		},
	}

	cmd.Flags().String("schema", toolschema.DefaultSchemaFile, "Aggregated schema file.")
	cmd.Flags().StringP("out", "o", toolschema.DefaultClassificationFile, "Output file, or - for stdout.")
	cmd.Flags().StringArray("exclude", nil, "Method to mark excluded, as Class.method (repeatable).")

	return cmd
}
