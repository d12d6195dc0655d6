package toolschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default artifact file names used when no path is given.
const (
	DefaultSchemaFile         = "classes_info.json"
	DefaultClassificationFile = "classification_data.json"
)

// WriteJSON writes v as UTF-8 JSON with 4-space indentation. Non-ASCII and HTML
// characters are written unescaped and no trailing newline is added.
func WriteJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// MarshalIndent is WriteJSON into a byte slice.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// artifactPath applies the default name and the .json suffix.
func artifactPath(path, fallback string) string {
	if path == "" {
		return fallback
	}
	if !strings.HasSuffix(path, ".json") {
		return path + ".json"
	}
	return path
}

// SaveAggregated writes s to path (DefaultSchemaFile when empty, ".json" appended
// when missing) and returns the path written.
func SaveAggregated(path string, s *AggregatedSchema) (string, error) {
	return saveJSON(artifactPath(path, DefaultSchemaFile), s)
}

// SaveClassification writes c to path (DefaultClassificationFile when empty,
// ".json" appended when missing) and returns the path written.
func SaveClassification(path string, c *ClassificationMap) (string, error) {
	return saveJSON(artifactPath(path, DefaultClassificationFile), c)
}

func saveJSON(path string, v any) (string, error) {
	data, err := MarshalIndent(v)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadAggregated decodes an aggregated schema artifact and validates it against its contract.
func ReadAggregated(r io.Reader) (*AggregatedSchema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := validateAggregatedJSON(data); err != nil {
		return nil, err
	}
	out := &AggregatedSchema{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, wrapDecodeError(artifactAggregated, err)
	}
	return out, nil
}

// LoadAggregated reads an aggregated schema artifact from a JSON file.
func LoadAggregated(path string) (*AggregatedSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAggregated(f)
}

// ReadClassification decodes a JSON classification map and validates it against its contract.
func ReadClassification(r io.Reader) (*ClassificationMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, wrapDecodeError(artifactClassification, err)
	}
	if err := validateClassificationValue(v); err != nil {
		return nil, err
	}
	out := NewClassificationMap()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, wrapDecodeError(artifactClassification, err)
	}
	return out, nil
}

// ReadClassificationYAML decodes a YAML classification map, keeping document order.
func ReadClassificationYAML(r io.Reader) (*ClassificationMap, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewClassificationMap(), nil
		}
		return nil, wrapDecodeError(artifactClassification, err)
	}
	var v any
	if err := doc.Decode(&v); err != nil {
		return nil, wrapDecodeError(artifactClassification, err)
	}
	if v == nil {
		return NewClassificationMap(), nil
	}
	if err := validateClassificationValue(v); err != nil {
		return nil, err
	}
	out := NewClassificationMap()
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	root = resolveAlias(root)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, methods := resolveAlias(root.Content[i]), resolveAlias(root.Content[i+1])
		if isMergeKey(key) {
			return nil, errYAMLMergeKey(key)
		}
		class := key.Value
		out.AddClass(class)
		for j := 0; j+1 < len(methods.Content); j += 2 {
			name := resolveAlias(methods.Content[j])
			if isMergeKey(name) {
				return nil, errYAMLMergeKey(name)
			}
			var include bool
			if err := resolveAlias(methods.Content[j+1]).Decode(&include); err != nil {
				return nil, wrapDecodeError(artifactClassification, err)
			}
			out.Set(class, name.Value, include)
		}
	}
	return out, nil
}

// resolveAlias follows *anchor references to the anchored node.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

func errYAMLMergeKey(n *yaml.Node) error {
	return &ArtifactError{
		Artifact: artifactClassification,
		Reason:   fmt.Sprintf("line %d: merge keys (<<) are not supported, list the methods explicitly", n.Line),
		Err:      ErrInvalidArtifact,
	}
}

// LoadClassification reads a classification map from a .json, .yaml or .yml file.
func LoadClassification(path string) (*ClassificationMap, error) {
	var read func(io.Reader) (*ClassificationMap, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		read = ReadClassification
	case ".yaml", ".yml":
		read = ReadClassificationYAML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}

// OrganizeFile organizes schema with the classification stored at path.
// Only ".json" paths are read; any other path selects nothing.
func OrganizeFile(schema *AggregatedSchema, path string) (OrganizedList, error) {
	if !strings.HasSuffix(path, ".json") {
		return OrganizedList{}, nil
	}
	classification, err := LoadClassification(path)
	if err != nil {
		return nil, err
	}
	return Organize(schema, classification), nil
}
