package toolschema

// BuildMethodSchema combines a method's signature and docstring into one MethodSchema.
// The receiver of a bound method is skipped. Each parameter gets its canonical
// type, a description when the docstring's Args section names it, and a place in
// Required when it has no default. Only Signature errors are returned.
func BuildMethodSchema(m Method) (MethodSchema, error) {
	sig, err := m.Signature()
	if err != nil {
		return MethodSchema{}, err
	}
	summary, docs := ParseDocstring(m.Doc())

	params := sig.Params
	if sig.Bound && len(params) > 0 {
		params = params[1:]
	}
	block := newParametersBlock()
	// A repeated name replaces the earlier parameter but keeps its position.
	optional := make(map[string]bool, len(params))
	for _, p := range params {
		ps := ParameterSchema{Type: ResolveType(p.Annotation)}
		if desc, ok := docs[p.Name]; ok {
			ps.Description = &desc
		}
		block.Properties.set(p.Name, ps)
		optional[p.Name] = p.HasDefault
	}
	for name := range block.Properties.All() {
		if !optional[name] {
			block.Required = append(block.Required, name)
		}
	}
	return MethodSchema{
		Name:        m.Name(),
		Description: summary,
		Parameters:  block,
	}, nil
}

// IntrospectClass builds the ClassSchema of c: one ToolEntry per method, in the
// order Methods returns them, skipping dunder-style names. A later method with
// the same name replaces the earlier one in place.
func IntrospectClass(c Class) (*ClassSchema, error) {
	methods, err := c.Methods()
	if err != nil {
		return nil, wrapIntrospection(c.Name(), "", err)
	}
	out := &ClassSchema{}
	out.init()
	for _, m := range methods {
		name := m.Name()
		if isReserved(name) {
			continue
		}
		schema, err := BuildMethodSchema(m)
		if err != nil {
			return nil, wrapIntrospection(c.Name(), name, err)
		}
		out.set(name, newToolEntry(schema))
	}
	return out, nil
}
