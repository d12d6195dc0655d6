package toolschema

import (
	"encoding/json"
	"strings"
)

// Fixed tags of the function-calling contract.
const (
	ToolTypeFunction = "function"
	ParamsTypeObject = "object"
)

// reservedPrefix marks dunder-style names (__init__, __call__) that are never exported as tools.
const reservedPrefix = "__"

func isReserved(name string) bool {
	return strings.HasPrefix(name, reservedPrefix)
}

// ParameterSchema describes one callable parameter.
// Description is nil when the docstring did not document the parameter; an
// explicitly empty description is kept as a pointer to "".
type ParameterSchema struct {
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
}

// ParametersBlock is the JSON-Schema-like "parameters" object of a method.
// Properties and Required follow signature declaration order; Required holds
// every parameter without a default value.
type ParametersBlock struct {
	Type                 string      `json:"type"`
	Properties           *Properties `json:"properties"`
	Required             []string    `json:"required"`
	AdditionalProperties bool        `json:"additionalProperties"`
}

// Properties maps parameter name to its schema in declaration order.
type Properties struct{ keyed[ParameterSchema] }

func newParametersBlock() ParametersBlock {
	return ParametersBlock{
		Type:       ParamsTypeObject,
		Properties: &Properties{},
		Required:   []string{},
	}
}

func (p *ParametersBlock) UnmarshalJSON(data []byte) error {
	type plain ParametersBlock
	aux := plain{Properties: &Properties{}}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Properties == nil {
		aux.Properties = &Properties{}
	}
	if aux.Required == nil {
		aux.Required = []string{}
	}
	*p = ParametersBlock(aux)
	return nil
}

// MethodSchema is the provider-facing description of one method.
type MethodSchema struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  ParametersBlock `json:"parameters"`
}

// ToolEntry wraps a MethodSchema in the {"type": "function", "function": ...} envelope.
type ToolEntry struct {
	Type     string       `json:"type"`
	Function MethodSchema `json:"function"`
}

func newToolEntry(m MethodSchema) ToolEntry {
	return ToolEntry{Type: ToolTypeFunction, Function: m}
}

// ClassSchema maps method name to its ToolEntry for one class.
type ClassSchema struct{ keyed[ToolEntry] }

// AggregatedSchema maps class name to its ClassSchema in the order classes were supplied.
// It is the artifact written by SaveAggregated.
type AggregatedSchema struct{ keyed[*ClassSchema] }

// Class returns the schema of the named class.
func (s *AggregatedSchema) Class(name string) (*ClassSchema, bool) {
	if s == nil {
		return nil, false
	}
	return s.Get(name)
}

// Method returns the ToolEntry of class.method.
func (s *AggregatedSchema) Method(class, method string) (ToolEntry, bool) {
	cls, ok := s.Class(class)
	if !ok || cls == nil {
		return ToolEntry{}, false
	}
	return cls.Get(method)
}

// OrganizedList is the flat selection of method schemas produced by Organize.
// It marshals to a JSON array of MethodSchema objects.
type OrganizedList []MethodSchema

// Tools re-wraps every entry in the function-calling envelope.
func (l OrganizedList) Tools() []ToolEntry {
	out := make([]ToolEntry, len(l))
	for i, m := range l {
		out[i] = newToolEntry(m)
	}
	return out
}

// Names returns the method names in list order.
func (l OrganizedList) Names() []string {
	out := make([]string, len(l))
	for i, m := range l {
		out[i] = m.Name
	}
	return out
}
