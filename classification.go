package toolschema

import "iter"

// ClassificationMap marks which class methods are kept by Organize.
// It is meant to be edited (in code or as a JSON/YAML file) between
// GenerateClassification and Organize.
type ClassificationMap struct{ keyed[*MethodFlags] }

// MethodFlags maps method name to its inclusion flag for one class.
type MethodFlags struct{ keyed[bool] }

// NewClassificationMap returns an empty map.
func NewClassificationMap() *ClassificationMap {
	c := &ClassificationMap{}
	c.init()
	return c
}

// Set marks class.method as included or excluded, adding the class if needed.
func (c *ClassificationMap) Set(class, method string, include bool) {
	c.flags(class).set(method, include)
}

// AddClass ensures class is present, even with no methods.
func (c *ClassificationMap) AddClass(class string) {
	c.flags(class)
}

// HasClass reports whether class has a classification sub-map.
func (c *ClassificationMap) HasClass(class string) bool {
	if c == nil {
		return false
	}
	_, ok := c.Get(class)
	return ok
}

// Included reports whether class.method is marked true. Missing entries are excluded.
func (c *ClassificationMap) Included(class, method string) bool {
	if c == nil {
		return false
	}
	flags, ok := c.Get(class)
	if !ok || flags == nil {
		return false
	}
	include, _ := flags.Get(method)
	return include
}

// Methods iterates the flags of class in insertion order.
func (c *ClassificationMap) Methods(class string) iter.Seq2[string, bool] {
	if c == nil {
		return func(func(string, bool) bool) {}
	}
	flags, ok := c.Get(class)
	if !ok || flags == nil {
		return func(func(string, bool) bool) {}
	}
	return flags.All()
}

func (c *ClassificationMap) flags(class string) *MethodFlags {
	if flags, ok := c.Get(class); ok && flags != nil {
		return flags
	}
	flags := &MethodFlags{}
	flags.init()
	c.set(class, flags)
	return flags
}

// GenerateClassification seeds a ClassificationMap from schema with every
// class/method pair set to true and no other pairs. Classes without methods get
// an empty sub-map.
func GenerateClassification(schema *AggregatedSchema) *ClassificationMap {
	out := NewClassificationMap()
	if schema == nil {
		return out
	}
	for className, cls := range schema.All() {
		out.AddClass(className)
		if cls == nil {
			continue
		}
		for method := range cls.All() {
			out.Set(className, method, true)
		}
	}
	return out
}
