package visit

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/tree"
)

// UnitError is an analysis failure of a single unit.
type UnitError struct {
	Unit string
	Span tree.Span
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("analyze unit %s: %s", e.Unit, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// Visitor dispatches rules of a registry over units. It keeps no state
// between units and is safe for concurrent use.
type Visitor struct {
	rules  *guard.Registry
	logger *slog.Logger
}

// New creates a visitor. A nil logger discards everything.
func New(rules *guard.Registry, logger *slog.Logger) *Visitor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Visitor{
		rules:  rules,
		logger: logger,
	}
}

// Visit analyzes the unit and passes its diagnoses to the reporter. The
// returned error is the *UnitError an internal diagnosis was made of, the
// reporter has already got that diagnosis.
func (v *Visitor) Visit(unit tree.Unit, env guard.Env, r *diag.Reporter) error {
	ds, err := v.Collect(unit, env)
	if err != nil {
		var uerr *UnitError
		if !errors.As(err, &uerr) {
			uerr = &UnitError{Unit: unit.Name(), Err: err}
		}

		v.logger.Warn("unit analysis aborted", slog.String("unit", uerr.Unit), slog.Any("error", uerr.Err))
		r.Report(diag.Internal(uerr.Unit, uerr.Span, uerr.Err))
		return uerr
	}

	r.ReportAll(ds)
	v.logger.Debug("unit analyzed", slog.String("unit", unit.Name()), slog.Int("diagnostics", len(ds)))
	return nil
}

// Collect analyzes the unit and returns its diagnoses in traversal order.
// Nothing is returned on error but the error itself. A unit its host
// could not build fails right away.
func (v *Visitor) Collect(unit tree.Unit, env guard.Env) ([]diag.Diagnosis, error) {
	if b, ok := unit.(tree.BrokenUnit); ok && b.Err() != nil {
		return nil, &UnitError{
			Unit: unit.Name(),
			Span: b.Span(),
			Err:  b.Err(),
		}
	}

	var (
		res  []diag.Diagnosis
		fail *UnitError
	)

	tree.Preorder(unit.Root(), func(n tree.Node) bool {
		if fail != nil {
			return false
		}

		for _, rule := range v.rules.ForKind(n.Kind()) {
			out, err := rule.Eval(n, env)
			if err != nil {
				fail = &UnitError{
					Unit: unit.Name(),
					Span: n.Span(),
					Err:  err,
				}
				return false
			}

			if m, ok := out.(guard.Matched); ok {
				m.Diagnosis.Unit = unit.Name()
				res = append(res, m.Diagnosis)
			}
		}

		return true
	})

	if fail != nil {
		return nil, fail
	}

	return res, nil
}
