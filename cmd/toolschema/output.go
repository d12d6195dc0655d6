package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skosovsky/toolschema"
)

// stdoutPath selects the command's stdout instead of a file.
const stdoutPath = "-"

// writeResult writes v to stdout when path is "-", otherwise through save.
func writeResult(cmd *cobra.Command, logger *slog.Logger, path string, v any, save func(string) (string, error)) error {
	if path == stdoutPath {
		if err := toolschema.WriteJSON(cmd.OutOrStdout(), v); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout())
		return err
	}
	written, err := save(path)
	if err != nil {
		return err
	}
	logger.Info("artifact written", "path", written)
	return nil
}

func writeFile(path string, v any) (string, error) {
	data, err := toolschema.MarshalIndent(v)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
