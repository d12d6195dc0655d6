package toolschema

import "log/slog"

type inspectorOptions struct {
	logger *slog.Logger
}

// InspectorOption configures an Inspector.
type InspectorOption func(*inspectorOptions)

// WithLogger sets the logger used for per-class diagnostics. nil keeps slog.Default().
func WithLogger(logger *slog.Logger) InspectorOption {
	return func(o *inspectorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	maxConcurrency int
	recoverPanics  bool
	logger         *slog.Logger
}

// WithMaxConcurrency limits how many classes are introspected at once (semaphore).
// Pass 0 or negative to disable the semaphore (unlimited concurrency).
func WithMaxConcurrency(n int) RegistryOption {
	return func(o *registryOptions) {
		o.maxConcurrency = n
	}
}

// WithRecoverPanics enables panic recovery during introspection (returns IntrospectionError).
func WithRecoverPanics(enable bool) RegistryOption {
	return func(o *registryOptions) {
		o.recoverPanics = enable
	}
}

// WithRegistryLogger sets the logger used by Registry.Aggregate.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
