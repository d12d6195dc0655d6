// Package testutil provides test helpers for toolschema (e.g. MockClass).
package testutil

import (
	"github.com/skosovsky/toolschema"
)

// MockClass is a configurable Class implementation for tests.
type MockClass struct {
	NameVal    string
	MethodsVal []toolschema.Method
	MethodsFn  func() ([]toolschema.Method, error)
}

// Name returns the class name.
func (m *MockClass) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "Mock"
}

// Methods runs MethodsFn if set, otherwise returns MethodsVal.
func (m *MockClass) Methods() ([]toolschema.Method, error) {
	if m.MethodsFn != nil {
		return m.MethodsFn()
	}
	return m.MethodsVal, nil
}

// MockMethod is a configurable Method implementation for tests.
type MockMethod struct {
	NameVal     string
	DocVal      string
	SigVal      toolschema.Signature
	SignatureFn func() (toolschema.Signature, error)
}

// Name returns the method name.
func (m *MockMethod) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "mock"
}

// Doc returns the docstring.
func (m *MockMethod) Doc() string {
	return m.DocVal
}

// Signature runs SignatureFn if set, otherwise returns SigVal.
func (m *MockMethod) Signature() (toolschema.Signature, error) {
	if m.SignatureFn != nil {
		return m.SignatureFn()
	}
	return m.SigVal, nil
}

// Ensure the mocks implement the facade.
var (
	_ toolschema.Class  = (*MockClass)(nil)
	_ toolschema.Method = (*MockMethod)(nil)
)
