package hir

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/tree"
)

// ErrMalformed is returned for dumps that are not internally consistent.
var ErrMalformed = errors.New("malformed typed tree")

// Index is a validated read-only view of a crate. It is safe for
// concurrent use.
type Index struct {
	crate *Crate
	defs  map[DefID]*indexedDef
	types map[TypeID]*Type
	impls map[implKey]*Impl
	units []*unit
	spans *SpanIndex
}

type indexedDef struct {
	*Def
	path canon.Path
}

type implKey struct {
	trait string
	self  string
}

// Index validates crate tables and builds the view. Broken tables fail
// the whole crate, a broken unit only fails itself: it is kept as a
// tree.BrokenUnit carrying an ErrMalformed cause.
func (c *Crate) Index() (*Index, error) {
	x := &Index{
		crate: c,
		defs:  make(map[DefID]*indexedDef, len(c.Defs)),
		types: make(map[TypeID]*Type, len(c.Types)),
		impls: make(map[implKey]*Impl, len(c.Impls)),
		spans: NewSpanIndex(),
	}

	for i := range c.Types {
		t := &c.Types[i]
		if t.ID <= 0 {
			return nil, fmt.Errorf("type %d: non-positive id: %w", i, ErrMalformed)
		}
		if _, ok := x.types[t.ID]; ok {
			return nil, fmt.Errorf("type %d: duplicate id: %w", t.ID, ErrMalformed)
		}
		x.types[t.ID] = t
	}
	for _, t := range x.types {
		if t.Elem != 0 {
			if _, ok := x.types[t.Elem]; !ok {
				return nil, fmt.Errorf("type %d: unknown element type %d: %w", t.ID, t.Elem, ErrMalformed)
			}
		}
	}

	for i := range c.Defs {
		d := &c.Defs[i]
		if d.ID <= 0 {
			return nil, fmt.Errorf("declaration %d: non-positive id: %w", i, ErrMalformed)
		}
		if _, ok := x.defs[d.ID]; ok {
			return nil, fmt.Errorf("declaration %d: duplicate id: %w", d.ID, ErrMalformed)
		}
		path, err := canon.ParsePath(d.Path)
		if err != nil {
			return nil, fmt.Errorf("declaration %d: %w: %w", d.ID, err, ErrMalformed)
		}
		x.defs[d.ID] = &indexedDef{Def: d, path: path}
	}
	for _, d := range x.defs {
		switch d.Kind {
		case DefAlias, DefInstance:
			if _, ok := x.defs[d.Target]; !ok {
				return nil, fmt.Errorf("%s %s: unknown target %d: %w", d.Kind, d.Path, d.Target, ErrMalformed)
			}
		case DefFn, DefTraitMethod, DefImplMethod:
		default:
			return nil, fmt.Errorf("declaration %d: invalid kind: %w", d.ID, ErrMalformed)
		}
	}

	for i := range c.Impls {
		im := &c.Impls[i]
		self, err := x.typeKey(im.Self)
		if err != nil {
			return nil, fmt.Errorf("impl %s: %w", im.Trait, err)
		}
		key := implKey{trait: im.Trait, self: self}
		if _, ok := x.impls[key]; ok {
			return nil, fmt.Errorf("impl %s for %s: duplicate: %w", im.Trait, self, ErrMalformed)
		}
		for _, m := range im.Methods {
			d, ok := x.defs[m]
			if !ok || d.Kind != DefImplMethod {
				return nil, fmt.Errorf("impl %s for %s: method %d is not an impl method: %w", im.Trait, self, m, ErrMalformed)
			}
		}
		x.impls[key] = im
	}

	for i := range c.Units {
		x.units = append(x.units, x.buildUnit(i, &c.Units[i]))
	}

	return x, nil
}

// Crate returns the underlying dump.
func (x *Index) Crate() *Crate {
	return x.crate
}

// Units returns units in dump order.
func (x *Index) Units() []tree.Unit {
	res := make([]tree.Unit, len(x.units))
	for i, u := range x.units {
		res[i] = u
	}
	return res
}

// Env returns the resolver and the oracle over the crate.
func (x *Index) Env() guard.Env {
	return guard.Env{
		Resolver: x.Resolver(),
		Oracle:   x.Oracle(),
	}
}

// Resolver returns the resolver over the crate.
func (x *Index) Resolver() *Resolver {
	return &Resolver{x: x}
}

// Oracle returns the oracle over the crate.
func (x *Index) Oracle() *Oracle {
	return &Oracle{x: x}
}

// Spans returns the index of node spans.
func (x *Index) Spans() *SpanIndex {
	return x.spans
}

// Source returns the text of a file. It fits diag.WriteOptions.Source.
func (x *Index) Source(file string) ([]byte, bool) {
	for _, f := range x.crate.Files {
		if f.Name == file && f.Text != "" {
			return []byte(f.Text), true
		}
	}

	return nil, false
}

func (x *Index) buildUnit(i int, u *Unit) *unit {
	res := &unit{
		name: u.Name,
		span: tree.Span{Start: u.Root.Start, End: u.Root.End},
	}
	if res.name == "" {
		res.name = fmt.Sprintf("#%d", i)
		res.err = fmt.Errorf("empty unit name: %w", ErrMalformed)
		return res
	}
	if u.File < 0 || u.File >= len(x.crate.Files) {
		res.err = fmt.Errorf("file index %d out of range: %w", u.File, ErrMalformed)
		return res
	}

	file := &x.crate.Files[u.File]
	b := &unitBuilder{
		file:  file,
		lines: newLineTable(file.Text),
		seen:  map[tree.NodeID]struct{}{},
	}
	res.span.File = file.Name
	res.span.Line, res.span.Col = b.lines.position(u.Root.Start)

	root, err := b.build(&u.Root)
	if err != nil {
		res.err = err
		return res
	}
	if err := x.spans.AddTree(root); err != nil {
		res.err = err
		return res
	}

	res.root = root
	return res
}

type unitBuilder struct {
	file  *File
	lines *lineTable
	seen  map[tree.NodeID]struct{}
}

func (b *unitBuilder) build(dto *Node) (*node, error) {
	id, err := safecast.Conv[uint32](dto.ID)
	if err != nil {
		return nil, fmt.Errorf("node id %d: %w: %w", dto.ID, err, ErrMalformed)
	}
	nid := tree.NodeID(id)
	if _, ok := b.seen[nid]; ok {
		return nil, fmt.Errorf("node %d: duplicate id: %w", dto.ID, ErrMalformed)
	}
	b.seen[nid] = struct{}{}

	if dto.Start < 0 || dto.End < dto.Start {
		return nil, fmt.Errorf("node %d: invalid range [%d,%d): %w", dto.ID, dto.Start, dto.End, ErrMalformed)
	}
	if b.file.Text != "" && dto.End > len(b.file.Text) {
		return nil, fmt.Errorf("node %d: range [%d,%d) beyond the end of %s: %w", dto.ID, dto.Start, dto.End, b.file.Name, ErrMalformed)
	}

	n := &node{
		dto: dto,
		id:  nid,
		span: tree.Span{
			File:  b.file.Name,
			Start: dto.Start,
			End:   dto.End,
		},
	}
	n.span.Line, n.span.Col = b.lines.position(dto.Start)
	n.span.EndLine, n.span.EndCol = b.lines.position(dto.End)

	if dto.Callee != nil {
		if n.callee, err = b.build(dto.Callee); err != nil {
			return nil, err
		}
	}
	for i := range dto.Args {
		arg, err := b.build(&dto.Args[i])
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
	}
	for i := range dto.Children {
		child, err := b.build(&dto.Children[i])
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}

	return n, nil
}

// typeKey renders a type structurally, so that equal types with different
// ids match the same impl.
func (x *Index) typeKey(id TypeID) (string, error) {
	var visit func(id TypeID, depth int) (string, error)
	visit = func(id TypeID, depth int) (string, error) {
		if depth > len(x.types) {
			return "", fmt.Errorf("type %d: cyclic element chain: %w", id, ErrMalformed)
		}
		t, ok := x.types[id]
		if !ok {
			return "", fmt.Errorf("unknown type %d: %w", id, ErrMalformed)
		}

		key := t.Kind.String()
		if t.Mut {
			key += " mut"
		}
		if t.Name != "" {
			key += " " + t.Name
		}
		if t.Elem != 0 {
			elem, err := visit(t.Elem, depth+1)
			if err != nil {
				return "", err
			}
			key += "(" + elem + ")"
		}

		return key, nil
	}

	return visit(id, 0)
}
