package toolschema

import (
	"bytes"
	"strings"
	"sync"

	santhosh "github.com/santhosh-tekuri/jsonschema/v6"
)

// aggregatedContractJSON is the contract every aggregated schema artifact must satisfy.
const aggregatedContractJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "additionalProperties": {
      "type": "object",
      "required": ["type", "function"],
      "properties": {
        "type": {"const": "function"},
        "function": {
          "type": "object",
          "required": ["name", "description", "parameters"],
          "properties": {
            "name": {"type": "string"},
            "description": {"type": "string"},
            "parameters": {
              "type": "object",
              "required": ["type", "properties", "required", "additionalProperties"],
              "properties": {
                "type": {"const": "object"},
                "properties": {
                  "type": "object",
                  "additionalProperties": {
                    "type": "object",
                    "required": ["type"],
                    "properties": {
                      "type": {"type": "string"},
                      "description": {"type": "string"}
                    }
                  }
                },
                "required": {"type": "array", "items": {"type": "string"}},
                "additionalProperties": {"const": false}
              }
            }
          }
        }
      }
    }
  }
}`

const aggregatedContractURL = "aggregated.schema.json"

// aggregatedContract compiles the aggregated artifact contract once.
var aggregatedContract = sync.OnceValues(func() (*santhosh.Schema, error) {
	doc, err := santhosh.UnmarshalJSON(strings.NewReader(aggregatedContractJSON))
	if err != nil {
		return nil, err
	}
	c := santhosh.NewCompiler()
	if err := c.AddResource(aggregatedContractURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(aggregatedContractURL)
})

// schemaValidator validates a JSON-like value (e.g. map[string]any from json.Unmarshal).
// *jsonschema.Resolved (classification) and *santhosh.Schema (aggregated) implement it.
type schemaValidator interface {
	Validate(v any) error
}

// validateAgainstContract runs contract validation on an already-parsed value.
func validateAgainstContract(validate schemaValidator, artifact string, v any) error {
	if err := validate.Validate(v); err != nil {
		return &ArtifactError{Artifact: artifact, Reason: err.Error(), Err: ErrInvalidArtifact}
	}
	return nil
}

// validateAggregatedJSON checks raw JSON against the aggregated contract.
func validateAggregatedJSON(data []byte) error {
	contract, err := aggregatedContract()
	if err != nil {
		return err
	}
	v, err := santhosh.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return wrapDecodeError(artifactAggregated, err)
	}
	return validateAgainstContract(contract, artifactAggregated, v)
}

// validateClassificationValue checks a decoded JSON/YAML value against the classification contract.
func validateClassificationValue(v any) error {
	contract, err := classificationContract()
	if err != nil {
		return err
	}
	return validateAgainstContract(contract, artifactClassification, v)
}

const (
	artifactAggregated     = "aggregated schema"
	artifactClassification = "classification map"
)

// wrapDecodeError returns an ArtifactError for JSON/YAML decode failures.
func wrapDecodeError(artifact string, err error) error {
	return &ArtifactError{Artifact: artifact, Reason: "decode error: " + err.Error(), Err: ErrInvalidArtifact}
}
