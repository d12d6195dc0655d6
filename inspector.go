package toolschema

import (
	"log/slog"
	"time"
)

// Inspector aggregates class schemas. The zero value is not usable; use NewInspector.
type Inspector struct {
	logger *slog.Logger
}

// NewInspector creates an Inspector with the given options.
func NewInspector(opts ...InspectorOption) *Inspector {
	o := inspectorOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Inspector{logger: o.logger}
}

// Aggregate introspects classes in order and keys the results by class name.
// It stops at the first failing class and returns no partial schema. A class
// name supplied twice keeps its first position with the later schema.
func (in *Inspector) Aggregate(classes ...Class) (*AggregatedSchema, error) {
	out := &AggregatedSchema{}
	out.init()
	for _, c := range classes {
		start := time.Now()
		cls, err := IntrospectClass(c)
		if err != nil {
			in.logger.Error("introspection failed", "class", c.Name(), "error", err)
			return nil, err
		}
		in.logger.Debug("class introspected", "class", c.Name(), "methods", cls.Len(), "duration", time.Since(start))
		out.set(c.Name(), cls)
	}
	return out, nil
}

// Aggregate runs a default Inspector over classes.
func Aggregate(classes ...Class) (*AggregatedSchema, error) {
	return NewInspector().Aggregate(classes...)
}
