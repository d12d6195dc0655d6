package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/skosovsky/toolschema"
	"github.com/skosovsky/toolschema/gosource"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Aggregate tool schemas from the Go types of a package directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			logger, err := loggerFromViper(cmd)
			if err != nil {
				return err
			}

			pkg, err := gosource.LoadDir(dir)
			if err != nil {
				return err
			}
			classes, err := pkg.Select(flagOrViperStringArray(cmd, "type", "generate.types")...)
			if err != nil {
				return err
			}

			reg := toolschema.NewRegistry(
				toolschema.WithMaxConcurrency(flagOrViperInt(cmd, "max-concurrency", "generate.max_concurrency")),
				toolschema.WithRegistryLogger(logger),
			)
			reg.Use(toolschema.WithLogging(logger), toolschema.WithRecovery())
			for _, c := range classes {
				reg.Register(c)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = reg.Shutdown(ctx)
			}()

			schema, err := reg.Aggregate(cmd.Context())
			if err != nil {
				return err
			}
			logger.Debug("schema generated", "package", pkg.Name, "classes", schema.Len())

			out := flagOrViperString(cmd, "out", "schema_file")
			return writeResult(cmd, logger, out, schema, func(path string) (string, error) {
				return toolschema.SaveAggregated(path, schema)
			})
		},
	}

	cmd.Flags().StringArray("type", nil, "Type to include (repeatable). Defaults to every type with exported methods.")
	cmd.Flags().StringP("out", "o", toolschema.DefaultSchemaFile, "Output file, or - for stdout.")
	cmd.Flags().Int("max-concurrency", 4, "Classes introspected in parallel.")

	return cmd
}
