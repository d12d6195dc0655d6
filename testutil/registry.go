package testutil

import (
	"log/slog"

	"github.com/skosovsky/toolschema"
)

// NewTestRegistry returns a Registry with panic recovery enabled and a discarding
// logger, suitable for tests.
func NewTestRegistry(classes ...toolschema.Class) *toolschema.Registry {
	reg := toolschema.NewRegistry(
		toolschema.WithRecoverPanics(true),
		toolschema.WithRegistryLogger(slog.New(slog.DiscardHandler)),
	)
	for _, c := range classes {
		reg.Register(c)
	}
	return reg
}
