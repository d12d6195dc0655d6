package toolschema

import (
	"reflect"
	"strings"
)

// AnyType is the canonical type of a parameter without annotation.
const AnyType = "any"

// TypeExpr is a parameter's declared type annotation. A nil TypeExpr means the
// parameter has no annotation. Named, Generic and Raw cover the forms the
// resolver understands; any other implementation is rendered with String().
type TypeExpr interface {
	String() string
}

// Named is a plain named type such as int or Calculator.
type Named string

func (n Named) String() string { return string(n) }

// Generic is a single-level parameterized type: Origin[Args...].
type Generic struct {
	Origin string
	Args   []TypeExpr
}

func (g Generic) String() string {
	args := make([]string, len(g.Args))
	for i, a := range g.Args {
		if a == nil {
			args[i] = AnyType
			continue
		}
		args[i] = a.String()
	}
	return g.Origin + "[" + strings.Join(args, ", ") + "]"
}

// Raw is an annotation kept in its source form (unions, literals, forward references).
type Raw string

func (r Raw) String() string { return string(r) }

// ResolveType renders an annotation as its canonical type string.
// nil resolves to "any"; a Generic with arguments resolves to "Origin[A, B]"
// using each argument's bare name; everything else resolves to String().
func ResolveType(t TypeExpr) string {
	switch v := t.(type) {
	case nil:
		return AnyType
	case Named:
		return string(v)
	case Generic:
		if len(v.Args) == 0 {
			return v.String()
		}
		names := make([]string, len(v.Args))
		for i, a := range v.Args {
			names[i] = bareName(a)
		}
		return v.Origin + "[" + strings.Join(names, ", ") + "]"
	default:
		return t.String()
	}
}

// bareName is the name of a type argument without its own parameters.
func bareName(t TypeExpr) string {
	switch v := t.(type) {
	case nil:
		return AnyType
	case Named:
		return string(v)
	case Generic:
		return v.Origin
	default:
		return t.String()
	}
}

// TypeFor returns the annotation for the Go type T.
func TypeFor[T any]() TypeExpr {
	return TypeOf(reflect.TypeFor[T]())
}

// TypeOf derives an annotation from Go runtime type information.
// Defined types become Named, instantiated generic types become Generic and
// unnamed composite types ([]int, map[string]int, *T) become Raw.
func TypeOf(t reflect.Type) TypeExpr {
	if t == nil {
		return nil
	}
	if t.Name() == "" {
		return Raw(stripPackagePaths(t.String()))
	}
	return parseTypeName(t.Name())
}

// parseTypeName parses a reflect type name such as "Pair[string,example.com/pkg.ID]".
func parseTypeName(name string) TypeExpr {
	if name == "" || isCompositeName(name) {
		return Raw(stripPackagePaths(name))
	}
	open := strings.IndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return Named(stripPackagePath(name))
	}
	g := Generic{Origin: stripPackagePath(name[:open])}
	for _, arg := range splitTypeArgs(name[open+1 : len(name)-1]) {
		g.Args = append(g.Args, parseTypeName(arg))
	}
	return g
}

func isCompositeName(name string) bool {
	for _, prefix := range []string{"[", "*", "map[", "func(", "chan ", "<-chan", "struct {", "interface {"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// stripPackagePath turns "example.com/pkg.ID" into "ID".
func stripPackagePath(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// stripPackagePaths applies stripPackagePath to every qualified name inside a
// composite type string: "map[string]*example.com/pkg.ID" becomes "map[string]*ID".
// Quoted struct tags are copied unchanged.
func stripPackagePaths(s string) string {
	var b strings.Builder
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		tok := s[start:end]
		if rest, ok := strings.CutPrefix(tok, "..."); ok {
			b.WriteString("...")
			tok = rest
		}
		b.WriteString(stripPackagePath(tok))
		start = -1
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			flush(i)
			j := i + 1
			for j < len(s) && s[j] != '"' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j+1, len(s))
			b.WriteString(s[i:j])
			i = j - 1
		case strings.IndexByte(" []*(){},;", c) >= 0:
			flush(i)
			b.WriteByte(c)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
	return b.String()
}

// splitTypeArgs splits a type argument list on top-level commas.
func splitTypeArgs(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
