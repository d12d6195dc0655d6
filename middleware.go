package toolschema

import (
	"log/slog"
	"time"
)

// Middleware wraps a Class with cross-cutting behavior (logging, recovery).
type Middleware func(Class) Class

// WithLogging returns a middleware that logs start, end, method count, duration, and errors
// of each method enumeration.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Class) Class {
		return &loggingClass{classBase: classBase{next: next}, logger: logger}
	}
}

// WithRecovery returns a middleware that turns panics raised while reading class or
// method metadata into IntrospectionError.
func WithRecovery() Middleware {
	return func(next Class) Class {
		return &recoveryClass{classBase{next: next}}
	}
}

// classBase delegates Class to the wrapped Class; used by middleware wrappers.
type classBase struct{ next Class }

func (b *classBase) Name() string { return b.next.Name() }

type loggingClass struct {
	classBase
	logger *slog.Logger
}

func (l *loggingClass) Methods() ([]Method, error) {
	l.logger.Info("introspect start", "class", l.next.Name())
	start := time.Now()
	methods, err := l.next.Methods()
	dur := time.Since(start)
	if err != nil {
		l.logger.Error("introspect error", "class", l.next.Name(), "duration", dur, "error", err)
		return nil, err
	}
	l.logger.Info("introspect end", "class", l.next.Name(), "methods", len(methods), "duration", dur)
	return methods, nil
}

type recoveryClass struct{ classBase }

func (r *recoveryClass) Methods() (methods []Method, err error) {
	defer func() {
		if p := recover(); p != nil {
			methods = nil
			err = &IntrospectionError{Class: r.next.Name(), Err: &panicError{p: p}}
		}
	}()
	methods, err = r.next.Methods()
	if err != nil {
		return nil, err
	}
	out := make([]Method, len(methods))
	for i, m := range methods {
		out[i] = &recoveryMethod{next: m, class: r.next.Name()}
	}
	return out, nil
}

// recoveryMethod guards Signature, the only method metadata call that can fail.
type recoveryMethod struct {
	next  Method
	class string
}

func (m *recoveryMethod) Name() string { return m.next.Name() }
func (m *recoveryMethod) Doc() string  { return m.next.Doc() }

func (m *recoveryMethod) Signature() (sig Signature, err error) {
	defer func() {
		if p := recover(); p != nil {
			sig = Signature{}
			err = &IntrospectionError{Class: m.class, Method: m.next.Name(), Err: &panicError{p: p}}
		}
	}()
	return m.next.Signature()
}

var (
	_ Class  = (*loggingClass)(nil)
	_ Class  = (*recoveryClass)(nil)
	_ Method = (*recoveryMethod)(nil)
)
