package toolschema

// Organize flattens schema into the methods selected by classification.
// Classes are visited in schema order and methods in class order; a method is
// kept only if classification marks it true. Classes or methods missing from
// classification are excluded, and classification entries unknown to schema are
// ignored.
func Organize(schema *AggregatedSchema, classification *ClassificationMap) OrganizedList {
	out := OrganizedList{}
	if schema == nil || classification == nil {
		return out
	}
	for className, cls := range schema.All() {
		if cls == nil || !classification.HasClass(className) {
			continue
		}
		for method, entry := range cls.All() {
			if classification.Included(className, method) {
				out = append(out, entry.Function)
			}
		}
	}
	return out
}
