package toolschema

// Class is the reflection facade over one class definition.
type Class interface {
	Name() string
	// Methods returns the class methods in a stable order. An error here is an
	// introspection failure and aborts aggregation.
	Methods() ([]Method, error)
}

// Method is the reflection facade over one callable.
type Method interface {
	Name() string
	// Doc returns the raw documentation text, or "" when there is none.
	Doc() string
	Signature() (Signature, error)
}

// Signature is a callable's parameter list in declaration order.
// When Bound is true the first parameter is the instance receiver and is not
// part of the generated schema.
type Signature struct {
	Bound  bool
	Params []Param
}

// Param is one declared parameter. A nil Annotation means "not annotated".
type Param struct {
	Name       string
	Annotation TypeExpr
	HasDefault bool
}

// Arg declares a required parameter.
func Arg(name string, t TypeExpr) Param {
	return Param{Name: name, Annotation: t}
}

// OptionalArg declares a parameter that has a default value.
func OptionalArg(name string, t TypeExpr) Param {
	return Param{Name: name, Annotation: t, HasDefault: true}
}

// receiverName is the receiver parameter prepended to instance methods of a ClassDef.
const receiverName = "self"

// ClassDef is an in-memory class definition built with NewClass. Methods keep
// declaration order. Build it fully before handing it to the pipeline; it is not
// safe for concurrent mutation.
type ClassDef struct {
	name    string
	methods []Method
}

// NewClass starts a class definition.
func NewClass(name string) *ClassDef {
	return &ClassDef{name: name}
}

// Method adds an instance method. The receiver is implicit.
func (c *ClassDef) Method(name, doc string, params ...Param) *ClassDef {
	sig := Signature{Bound: true, Params: append([]Param{{Name: receiverName}}, params...)}
	c.methods = append(c.methods, &methodDef{name: name, doc: doc, sig: sig})
	return c
}

// StaticMethod adds a method without a receiver.
func (c *ClassDef) StaticMethod(name, doc string, params ...Param) *ClassDef {
	sig := Signature{Params: append([]Param(nil), params...)}
	c.methods = append(c.methods, &methodDef{name: name, doc: doc, sig: sig})
	return c
}

// Add appends an existing Method implementation.
func (c *ClassDef) Add(m Method) *ClassDef {
	c.methods = append(c.methods, m)
	return c
}

func (c *ClassDef) Name() string { return c.name }

func (c *ClassDef) Methods() ([]Method, error) {
	return append([]Method(nil), c.methods...), nil
}

type methodDef struct {
	name string
	doc  string
	sig  Signature
}

func (m *methodDef) Name() string { return m.name }
func (m *methodDef) Doc() string  { return cleanDoc(m.doc) }

func (m *methodDef) Signature() (Signature, error) {
	return Signature{Bound: m.sig.Bound, Params: append([]Param(nil), m.sig.Params...)}, nil
}

var (
	_ Class  = (*ClassDef)(nil)
	_ Method = (*methodDef)(nil)
)
