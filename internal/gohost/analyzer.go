package gohost

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"sync"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/refguard/internal/config"
	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/visit"
)

const doc = `refguard reports calls fabricating pointers out of zero-filled or uninitialized memory

Functions producing zero-filled or uninitialized values are taken from the
canonical table, configured with the -config flag:

	paths:
	  - path: example.com/mem::Zeroed
	    tag: zero-fill

A call of such a function with no arguments instantiated with a pointer
type yields a pointer nobody ever pointed anywhere.`

// Analyzer is configured with the -config flag.
var Analyzer = newConfiguredAnalyzer()

// NewAnalyzer creates an analyzer running rules of the registry.
func NewAnalyzer(reg *guard.Registry) *analysis.Analyzer {
	c := &checker{visitor: visit.New(reg, nil)}
	return &analysis.Analyzer{
		Name:     "refguard",
		Doc:      doc,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run:      c.run,
	}
}

// checker runs the visitor over function declarations of a pass. Units
// matched by ignore are skipped.
type checker struct {
	visitor *visit.Visitor
	ignore  *config.Matcher
}

func newConfiguredAnalyzer() *analysis.Analyzer {
	var (
		configPath string
		once       sync.Once
		c          *checker
		loadErr    error
	)

	a := &analysis.Analyzer{
		Name:     "refguard",
		Doc:      doc,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}
	a.Flags.StringVar(&configPath, "config", "", "path to a YAML or TOML config file")
	a.Run = func(pass *analysis.Pass) (any, error) {
		once.Do(func() {
			c, loadErr = loadChecker(configPath)
		})
		if loadErr != nil {
			return nil, loadErr
		}

		return c.run(pass)
	}

	return a
}

func loadChecker(path string) (*checker, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry(table)
	if err != nil {
		return nil, err
	}
	ignore, err := cfg.Matcher()
	if err != nil {
		return nil, err
	}

	return &checker{
		visitor: visit.New(reg, nil),
		ignore:  ignore,
	}, nil
}

func (c *checker) run(pass *analysis.Pass) (any, error) {
	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.GenDecl)(nil),
	}

	env := NewEnv(pass.TypesInfo)
	// Declarations are not descended into, so local var declarations
	// stay a part of their function.
	pector.Nodes(nodeFilter, func(node ast.Node, push bool) bool {
		if !push {
			return false
		}

		units, err := declUnits(pass.Fset, pass.TypesInfo, node.(ast.Decl))
		if err != nil {
			pass.Reportf(node.Pos(), "internal error: %s", err)
			return false
		}

		file := pass.Fset.File(node.Pos())
		for _, u := range units {
			if c.ignore.Match(u.Name()) {
				continue
			}

			r := diag.NewReporter()
			// A failed unit leaves its internal diagnosis in the reporter.
			_ = c.visitor.Visit(u, env, r)
			for _, d := range r.Reports() {
				pass.Report(toAnalysis(file, d))
			}
		}
		return false
	})

	return nil, nil
}

// toAnalysis renders a diagnosis the way the text writer does: the code
// and the rule lead the message, help lines go to related information.
func toAnalysis(file *token.File, d diag.Diagnosis) analysis.Diagnostic {
	res := analysis.Diagnostic{
		Pos:      file.Pos(d.Span.Start),
		End:      file.Pos(d.Span.End),
		Category: d.Rule,
		Message:  fmt.Sprintf("%s[%s]: %s", d.Code.ID(), d.Rule, d.Summary),
	}
	if d.Help != "" {
		for _, line := range strings.Split(d.Help, "\n") {
			res.Related = append(res.Related, analysis.RelatedInformation{
				Pos:     res.Pos,
				End:     res.End,
				Message: "help: " + line,
			})
		}
	}

	return res
}
