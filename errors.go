package toolschema

import (
	"errors"
	"fmt"
)

// Sentinel errors for toolschema. Use errors.Is to check.
var (
	ErrIntrospection   = errors.New("introspection failed")
	ErrInvalidArtifact = errors.New("invalid artifact")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrShutdown        = errors.New("registry is shutting down")
)

// IntrospectionError reports a class (and optionally method) whose metadata could
// not be read. It is the only failure that aborts aggregation.
// errors.Is(err, ErrIntrospection) holds for every IntrospectionError.
type IntrospectionError struct {
	Class  string
	Method string // empty when the class itself could not be enumerated
	Err    error
}

func (e *IntrospectionError) Error() string {
	target := e.Class
	if e.Method != "" {
		target += "." + e.Method
	}
	if e.Err == nil {
		return fmt.Sprintf("introspect %s: %s", target, ErrIntrospection)
	}
	return fmt.Sprintf("introspect %s: %v", target, e.Err)
}

func (e *IntrospectionError) Unwrap() error { return e.Err }

// Is matches ErrIntrospection so callers need not know the concrete type.
func (e *IntrospectionError) Is(target error) bool { return target == ErrIntrospection }

// IsIntrospectionError returns true if err is or wraps an IntrospectionError.
func IsIntrospectionError(err error) bool {
	var ie *IntrospectionError
	return errors.As(err, &ie)
}

// ArtifactError is returned when a JSON or YAML artifact does not match its contract.
// Err wraps ErrInvalidArtifact (or a decode error) for errors.Is/errors.As.
type ArtifactError struct {
	Artifact string // "aggregated schema" or "classification map"
	Reason   string
	Err      error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Artifact, e.Reason)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// wrapIntrospection attaches class/method context unless err already carries it.
func wrapIntrospection(class, method string, err error) error {
	if err == nil {
		return nil
	}
	var ie *IntrospectionError
	if errors.As(err, &ie) {
		return err
	}
	return &IntrospectionError{Class: class, Method: method, Err: err}
}

// panicError wraps a recovered panic value; used by Registry and WithRecovery middleware.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
