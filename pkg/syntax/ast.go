package syntax

import "github.com/leapstack-labs/earlylint/pkg/token"

// Node is the base interface for all syntax tree nodes.
type Node interface {
	// Span returns the source range covered by the node.
	Span() token.Span
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Pat is a marker interface for pattern nodes.
type Pat interface {
	Node
	patNode()
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Item is a marker interface for item (declaration) nodes.
type Item interface {
	Node
	itemNode()
}

// Base carries the span shared by every node. It is embedded in each node type.
type Base struct {
	Loc token.Span
}

// Span implements Node.
func (b *Base) Span() token.Span { return b.Loc }

// Pos implements Node.
func (b *Base) Pos() token.Position { return b.Loc.Start }

// End implements Node.
func (b *Base) End() token.Position { return b.Loc.End }

// ---------- Paths and types ----------

// Path is a `::`-separated path such as `a::b::C<T>`. A Path is also a path
// expression.
type Path struct {
	Base
	Global   bool // leading `::`
	Segments []*PathSegment
}

func (*Path) exprNode() {}

// First returns the first segment name, or "".
func (p *Path) First() string {
	if p == nil || len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0].Name
}

// Last returns the last segment name, or "".
func (p *Path) Last() string {
	if p == nil || len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1].Name
}

// IsIdent reports whether the path is a single segment without generic args.
func (p *Path) IsIdent() bool {
	return p != nil && !p.Global && len(p.Segments) == 1 && len(p.Segments[0].Args) == 0
}

// PathSegment is one segment of a Path with its optional generic arguments.
type PathSegment struct {
	Base
	Name string
	Args []*Ty
}

// TyKind classifies a type expression.
type TyKind int

// Type expression kinds.
const (
	TyPath  TyKind = iota // Vec<T>, u32, Self
	TyRef                 // &'a mut T
	TyPtr                 // *const T
	TyTuple               // (A, B), ()
	TySlice               // [T]
	TyArray               // [T; N]
	TyNever               // !
	TyInfer               // _
	TyImpl                // impl Trait
	TyDyn                 // dyn Trait
	TyFn                  // fn(A) -> B
)

// Ty is a type expression. Types are opaque to the lint rules; the node keeps
// enough structure for traversal.
type Ty struct {
	Base
	Kind     TyKind
	Path     *Path  // TyPath, TyImpl, TyDyn
	Lifetime string // TyRef
	Mutable  bool   // TyRef, TyPtr
	Elems    []*Ty  // TyRef/TyPtr/TySlice/TyArray element, TyTuple members, TyFn inputs
	Ret      *Ty    // TyFn
	Len      Expr   // TyArray
}

// ---------- Generics ----------

// GenericKind distinguishes the three kinds of generic parameter.
type GenericKind int

// Generic parameter kinds.
const (
	GenericType GenericKind = iota
	GenericLifetime
	GenericConst
)

// Generics is a generic parameter list `<...>`.
type Generics struct {
	Base
	Params []*GenericParam
}

// GenericParam is a single generic parameter.
type GenericParam struct {
	Base
	Kind    GenericKind
	Name    string // without the leading quote for lifetimes
	Bounds  []*Ty
	Default *Ty  // GenericType
	Type    *Ty  // GenericConst
	Value   Expr // GenericConst default
}

// ---------- Blocks and files ----------

// Block is a brace-delimited statement sequence.
type Block struct {
	Base
	Stmts []Stmt
}

// File is the root of a parsed source file.
type File struct {
	Base
	Name     string
	Items    []Item
	Comments []*token.Comment
}
