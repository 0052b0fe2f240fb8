package syntax

// WildPat is the wildcard pattern `_`.
type WildPat struct {
	Base
}

func (*WildPat) patNode() {}

// IdentPat binds a name: `ref mut name @ sub`.
type IdentPat struct {
	Base
	Name    string
	ByRef   bool
	Mutable bool
	Sub     Pat // nil unless `@ sub` is present
}

func (*IdentPat) patNode() {}

// FieldPat is one field of a struct pattern. Shorthand is set for `name`
// (and `ref mut name`) without an explicit `: pat`.
type FieldPat struct {
	Base
	Name      string
	Pat       Pat
	Shorthand bool
}

// StructPat is `Path { fields, .. }`. Field order follows the source.
type StructPat struct {
	Base
	Path   *Path
	Fields []*FieldPat
	Rest   bool
}

func (*StructPat) patNode() {}

// TupleStructPat is `Path(a, b)`.
type TupleStructPat struct {
	Base
	Path  *Path
	Elems []Pat
}

func (*TupleStructPat) patNode() {}

// TuplePat is `(a, b)`.
type TuplePat struct {
	Base
	Elems []Pat
}

func (*TuplePat) patNode() {}

// SlicePat is `[a, b, ..]`.
type SlicePat struct {
	Base
	Elems []Pat
}

func (*SlicePat) patNode() {}

// PathPat is a path used as a pattern, such as `None` or `Ordering::Less`.
type PathPat struct {
	Base
	Path *Path
}

func (*PathPat) patNode() {}

// LitPat is a literal pattern; X is a *Lit or a negated *Lit.
type LitPat struct {
	Base
	X Expr
}

func (*LitPat) patNode() {}

// RangePat is `lo..=hi` in pattern position.
type RangePat struct {
	Base
	Lo        Expr
	Hi        Expr
	Inclusive bool
}

func (*RangePat) patNode() {}

// RefPat is `&pat` / `&mut pat`.
type RefPat struct {
	Base
	Mutable bool
	Pat     Pat
}

func (*RefPat) patNode() {}

// RestPat is `..` inside a tuple or slice pattern.
type RestPat struct {
	Base
}

func (*RestPat) patNode() {}

// OrPat is `a | b`.
type OrPat struct {
	Base
	Alts []Pat
}

func (*OrPat) patNode() {}
