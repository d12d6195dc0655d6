// Package gosource reads toolschema classes from Go source files.
//
// Every named type declared in the parsed files becomes a class. Its exported
// methods are listed in source order (file order, then position), the method's
// doc comment is the docstring, and the receiver is reported as the bound first
// parameter. Go has no default values, so only a trailing variadic parameter is
// treated as optional.
package gosource

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/skosovsky/toolschema"
)

// ErrTypeNotFound is returned by Package.Class for unknown type names.
var ErrTypeNotFound = errors.New("type not found")

// Package is a set of parsed Go files viewed as toolschema classes.
type Package struct {
	Name    string
	fset    *token.FileSet
	order   []string
	classes map[string]*class
}

// ParseSource parses a single file from src (string, []byte or io.Reader; nil
// reads filename from disk).
func ParseSource(filename string, src any) (*Package, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return newPackage(fset, []*ast.File{file}), nil
}

// ParseFile parses the Go file at path.
func ParseFile(path string) (*Package, error) {
	return ParseSource(path, nil)
}

// LoadDir parses every non-test .go file in dir, in file name order.
// Files of the first package name found are kept.
func LoadDir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if len(files) > 0 && file.Name.Name != files[0].Name.Name {
			continue
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}
	return newPackage(fset, files), nil
}

func newPackage(fset *token.FileSet, files []*ast.File) *Package {
	p := &Package{
		Name:    files[0].Name.Name,
		fset:    fset,
		classes: make(map[string]*class),
	}
	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				if _, seen := p.classes[ts.Name.Name]; seen {
					continue
				}
				p.order = append(p.order, ts.Name.Name)
				p.classes[ts.Name.Name] = &class{name: ts.Name.Name}
			}
		}
	}
	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 || !fn.Name.IsExported() {
				continue
			}
			c, ok := p.classes[receiverTypeName(fn.Recv.List[0].Type)]
			if !ok {
				continue
			}
			c.methods = append(c.methods, &method{decl: fn, fset: fset})
		}
	}
	return p
}

// receiverTypeName returns "T" for receivers T, *T, T[K], *T[K, V].
func receiverTypeName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// TypeNames returns the declared type names in source order.
func (p *Package) TypeNames() []string {
	return slices.Clone(p.order)
}

// Classes returns every declared type as a class, in source order.
func (p *Package) Classes() []toolschema.Class {
	out := make([]toolschema.Class, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.classes[name])
	}
	return out
}

// Class returns the named type as a class.
func (p *Package) Class(name string) (toolschema.Class, error) {
	c, ok := p.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s in package %s", ErrTypeNotFound, name, p.Name)
	}
	return c, nil
}

// Select returns the named types as classes in the given order.
// An empty list selects every type that has at least one exported method.
func (p *Package) Select(names ...string) ([]toolschema.Class, error) {
	if len(names) == 0 {
		var out []toolschema.Class
		for _, name := range p.order {
			if c := p.classes[name]; len(c.methods) > 0 {
				out = append(out, c)
			}
		}
		return out, nil
	}
	out := make([]toolschema.Class, 0, len(names))
	for _, name := range names {
		c, err := p.Class(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

type class struct {
	name    string
	methods []*method
}

func (c *class) Name() string { return c.name }

func (c *class) Methods() ([]toolschema.Method, error) {
	out := make([]toolschema.Method, len(c.methods))
	for i, m := range c.methods {
		out[i] = m
	}
	return out, nil
}

type method struct {
	decl *ast.FuncDecl
	fset *token.FileSet
}

func (m *method) Name() string { return m.decl.Name.Name }

func (m *method) Doc() string {
	if m.decl.Doc == nil {
		return ""
	}
	return m.decl.Doc.Text()
}

func (m *method) Signature() (toolschema.Signature, error) {
	sig := toolschema.Signature{Bound: true}
	recv := m.decl.Recv.List[0]
	recvName := ""
	if len(recv.Names) > 0 {
		recvName = recv.Names[0].Name
	}
	sig.Params = append(sig.Params, toolschema.Param{Name: recvName, Annotation: toolschema.Raw(types.ExprString(recv.Type))})

	fields := m.decl.Type.Params.List
	index := 0
	for i, field := range fields {
		annotation, err := annotationOf(field.Type)
		if err != nil {
			return toolschema.Signature{}, fmt.Errorf("%s: %w", m.fset.Position(field.Pos()), err)
		}
		_, variadic := field.Type.(*ast.Ellipsis)
		optional := variadic && i == len(fields)-1
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{nil}
		}
		for _, ident := range names {
			name := "arg" + strconv.Itoa(index)
			if ident != nil && ident.Name != "_" {
				name = ident.Name
			}
			sig.Params = append(sig.Params, toolschema.Param{Name: name, Annotation: annotation, HasDefault: optional})
			index++
		}
	}
	return sig, nil
}

// annotationOf maps a parameter type expression to a TypeExpr: identifiers and
// qualified identifiers are Named (bare name), T[A, B] is Generic, and every
// other expression is Raw source text.
func annotationOf(expr ast.Expr) (toolschema.TypeExpr, error) {
	switch t := expr.(type) {
	case *ast.BadExpr:
		return nil, errors.New("malformed parameter type")
	case *ast.Ident:
		return toolschema.Named(t.Name), nil
	case *ast.SelectorExpr:
		return toolschema.Named(t.Sel.Name), nil
	case *ast.ParenExpr:
		return annotationOf(t.X)
	case *ast.IndexExpr:
		return genericOf(expr, t.X, []ast.Expr{t.Index})
	case *ast.IndexListExpr:
		return genericOf(expr, t.X, t.Indices)
	default:
		return toolschema.Raw(types.ExprString(expr)), nil
	}
}

func genericOf(expr, origin ast.Expr, args []ast.Expr) (toolschema.TypeExpr, error) {
	base, err := annotationOf(origin)
	if err != nil {
		return nil, err
	}
	named, ok := base.(toolschema.Named)
	if !ok {
		return toolschema.Raw(types.ExprString(expr)), nil
	}
	g := toolschema.Generic{Origin: string(named)}
	for _, a := range args {
		arg, err := annotationOf(a)
		if err != nil {
			return nil, err
		}
		g.Args = append(g.Args, arg)
	}
	return g, nil
}
