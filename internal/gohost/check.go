package gohost

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"

	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/visit"
)

// CheckSource type checks a single file and runs the visitor over its
// function declarations and package variable initializers. Imports are
// resolved from compiled packages. The returned diagnoses are in
// declaration order.
func CheckSource(filename string, src []byte, v *visit.Visitor) ([]diag.Diagnosis, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	var typeErr error
	conf := types.Config{
		Importer: importer.Default(),
		Error: func(err error) {
			if typeErr == nil {
				typeErr = err
			}
		},
	}
	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Instances:  make(map[*ast.Ident]types.Instance),
	}
	_, _ = conf.Check(file.Name.Name, fset, []*ast.File{file}, info)
	if typeErr != nil {
		return nil, fmt.Errorf("type check %s: %w", filename, typeErr)
	}

	env := NewEnv(info)
	r := diag.NewReporter()
	for _, decl := range file.Decls {
		units, err := declUnits(fset, info, decl)
		if err != nil {
			return nil, err
		}
		for _, u := range units {
			_ = v.Visit(u, env, r)
		}
	}

	return r.Reports(), nil
}
