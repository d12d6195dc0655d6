// Package toolschema turns in-memory class definitions into function-calling tool
// schemas for LLM providers.
//
// # Overview
//
// A class is anything that can list its methods and, for each method, report a
// docstring and a parameter list (names, type annotations, defaults). This package
// reads that metadata through the Class and Method interfaces and produces one
// MethodSchema per public method: name, description (docstring summary) and a
// JSON-Schema-like parameters block with per-parameter type and description.
//
// Pipeline: Class → IntrospectClass (BuildMethodSchema per method, ResolveType +
// ParseDocstring per parameter) → ClassSchema → Aggregate → AggregatedSchema →
// GenerateClassification (default-true seed, edited by hand) → Organize →
// OrganizedList (flat []MethodSchema for the provider's tools field).
//
// # Key concepts
//
//   - Reflection facade: Class/Method/Signature/Param are the only things the
//     pipeline needs from a host. NewClass builds them declaratively; the gosource
//     subpackage builds them from Go source files.
//   - Ordered output: every map-shaped artifact keeps insertion order, so JSON
//     output follows declaration order and class supply order.
//   - Fail-fast: only introspection failures are errors. Malformed docstrings and
//     unknown annotations degrade silently.
//   - Registry: collects classes, applies Middleware (WithLogging, WithRecovery)
//     and aggregates them concurrently under a semaphore.
//   - Artifacts: SaveAggregated/SaveClassification write the JSON files;
//     LoadAggregated/LoadClassification read them back and validate them against
//     their contracts. Classification maps may also be YAML.
//
// # Example
//
//	calc := toolschema.NewClass("Calculator").
//	    Method("add", "Add two numbers.\n\nArgs:\n    a: left\n    b: right",
//	        toolschema.Arg("a", toolschema.Named("int")),
//	        toolschema.OptionalArg("b", toolschema.Named("int")))
//	schema, err := toolschema.Aggregate(calc)
//	if err != nil { ... }
//	selection := toolschema.GenerateClassification(schema)
//	tools := toolschema.Organize(schema, selection)
package toolschema
