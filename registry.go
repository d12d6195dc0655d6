package toolschema

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry holds classes in registration order and aggregates them concurrently
// with a semaphore and optional panic recovery.
type Registry struct {
	names       []string         // registration order
	classes     map[string]Class // wrapped with middlewares, used by Aggregate
	rawClasses  map[string]Class // unwrapped, used by Use() to re-apply middlewares from scratch
	sem         chan struct{}
	opts        registryOptions
	done        chan struct{}
	running     sync.WaitGroup
	mu          sync.Mutex
	middlewares []Middleware
}

// NewRegistry creates a Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{
		maxConcurrency: 4,
		recoverPanics:  true,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	var sem chan struct{}
	if o.maxConcurrency > 0 {
		sem = make(chan struct{}, o.maxConcurrency)
	}
	return &Registry{
		classes:    make(map[string]Class),
		rawClasses: make(map[string]Class),
		sem:        sem,
		opts:       o,
		done:       make(chan struct{}),
	}
}

// Register adds a class. Stored middlewares (see Use) are applied before registration.
// A class with an already registered name replaces it and keeps its position.
// Safe for concurrent use with Aggregate and other Register calls.
func (r *Registry) Register(c Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := c.Name()
	if _, exists := r.rawClasses[name]; !exists {
		r.names = append(r.names, name)
	}
	r.rawClasses[name] = c
	r.classes[name] = r.wrap(c)
}

// Use stores the given middlewares and reapplies them from scratch to all registered classes
// (onion order: first middleware is outermost). Calling Use again replaces the chain.
func (r *Registry) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = middlewares
	for name, raw := range r.rawClasses {
		r.classes[name] = r.wrap(raw)
	}
}

func (r *Registry) wrap(c Class) Class {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		c = r.middlewares[i](c)
	}
	return c
}

// GetClass returns the class with the given name (after middlewares are applied).
func (r *Registry) GetClass(name string) (Class, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[name]
	return c, ok
}

// Classes returns the registered classes in registration order.
func (r *Registry) Classes() []Class {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Class, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.classes[name])
	}
	return out
}

type classResult struct {
	schema *ClassSchema
	err    error
}

// Aggregate introspects all registered classes in parallel and assembles the
// AggregatedSchema in registration order. The first failure in registration
// order is returned and no partial schema is produced; remaining work is
// cancelled. Returns ctx.Err() if ctx ends while waiting for the semaphore.
func (r *Registry) Aggregate(ctx context.Context) (*AggregatedSchema, error) {
	r.mu.Lock()
	select {
	case <-r.done:
		r.mu.Unlock()
		return nil, ErrShutdown
	default:
	}
	names := append([]string(nil), r.names...)
	classes := make([]Class, len(names))
	for i, name := range names {
		classes[i] = r.classes[name]
	}
	r.running.Add(1)
	r.mu.Unlock()
	defer r.running.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	results := make([]classResult, len(classes))
	var wg sync.WaitGroup
	for i, c := range classes {
		wg.Go(func() {
			if err := r.acquireSemaphore(ctx); err != nil {
				results[i].err = err
				return
			}
			defer r.releaseSemaphore()
			results[i].schema, results[i].err = r.introspect(c)
			if results[i].err != nil {
				cancel()
			}
		})
	}
	wg.Wait()

	out := &AggregatedSchema{}
	out.init()
	for i, res := range results {
		if res.err != nil {
			err := firstIntrospectionError(results, res.err)
			r.opts.logger.Error("aggregation failed", "error", err)
			return nil, err
		}
		out.set(names[i], res.schema)
	}
	r.opts.logger.Debug("aggregation done", "classes", out.Len(), "duration", time.Since(start))
	return out, nil
}

// firstIntrospectionError prefers the earliest real introspection failure over
// cancellations caused by it.
func firstIntrospectionError(results []classResult, fallback error) error {
	for _, res := range results {
		if IsIntrospectionError(res.err) {
			return res.err
		}
	}
	return fallback
}

func (r *Registry) introspect(c Class) (schema *ClassSchema, err error) {
	if r.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				schema = nil
				err = &IntrospectionError{Class: c.Name(), Err: &panicError{p: p}}
			}
		}()
	}
	return IntrospectClass(c)
}

func (r *Registry) acquireSemaphore(ctx context.Context) error {
	if r.sem == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case r.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Registry) releaseSemaphore() {
	if r.sem != nil {
		<-r.sem
	}
}

// Shutdown closes the registry for new aggregations and waits for in-flight ones or ctx to cancel.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	select {
	case <-r.done:
		r.mu.Unlock()
		return nil
	default:
		close(r.done)
	}
	r.mu.Unlock()
	done := make(chan struct{})
	go func() {
		r.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
