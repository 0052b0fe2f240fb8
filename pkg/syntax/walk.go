package syntax

// Walk traverses the tree rooted at node depth-first, calling fn for each
// node before its children. If fn returns false the children of that node
// are skipped. Nil children are never passed to fn.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	w := walker{fn: fn}
	w.children(node)
}

type walker struct {
	fn func(Node) bool
}

func (w walker) node(n Node) { Walk(n, w.fn) }

func (w walker) expr(e Expr) {
	if e != nil {
		Walk(e, w.fn)
	}
}

func (w walker) exprs(es []Expr) {
	for _, e := range es {
		w.expr(e)
	}
}

func (w walker) pat(p Pat) {
	if p != nil {
		Walk(p, w.fn)
	}
}

func (w walker) pats(ps []Pat) {
	for _, p := range ps {
		w.pat(p)
	}
}

func (w walker) block(b *Block) {
	if b != nil {
		Walk(b, w.fn)
	}
}

func (w walker) ty(t *Ty) {
	if t != nil {
		Walk(t, w.fn)
	}
}

func (w walker) path(p *Path) {
	if p != nil {
		Walk(p, w.fn)
	}
}

func (w walker) generics(g *Generics) {
	if g != nil {
		Walk(g, w.fn)
	}
}

func (w walker) items(items []Item) {
	for _, it := range items {
		if it != nil {
			Walk(it, w.fn)
		}
	}
}

func (w walker) fields(fs []*StructField) {
	for _, f := range fs {
		if f != nil {
			w.node(f)
		}
	}
}

//nolint:gocyclo // one case per node kind
func (w walker) children(node Node) {
	switch n := node.(type) {
	// ---------- Roots and blocks ----------
	case *File:
		w.items(n.Items)

	case *Block:
		for _, s := range n.Stmts {
			if s != nil {
				Walk(s, w.fn)
			}
		}

	// ---------- Items ----------
	case *FnDecl:
		w.generics(n.Generics)
		for _, p := range n.Params {
			if p != nil {
				w.node(p)
			}
		}
		w.ty(n.Ret)
		w.block(n.Body)

	case *Param:
		w.pat(n.Pat)
		w.ty(n.Type)

	case *ImplBlock:
		w.generics(n.Generics)
		w.ty(n.Trait)
		w.ty(n.SelfType)
		w.items(n.Items)

	case *TraitDecl:
		w.generics(n.Generics)
		w.items(n.Items)

	case *StructDecl:
		w.generics(n.Generics)
		w.fields(n.Fields)

	case *StructField:
		w.ty(n.Type)

	case *EnumDecl:
		w.generics(n.Generics)
		for _, v := range n.Variants {
			if v != nil {
				w.node(v)
			}
		}

	case *Variant:
		w.fields(n.Fields)
		w.expr(n.Discriminant)

	case *TypeAlias:
		w.generics(n.Generics)
		w.ty(n.Type)

	case *ConstItem:
		w.ty(n.Type)
		w.expr(n.Value)

	case *ModDecl:
		w.items(n.Items)

	case *UseDecl:
		// Leaf node

	case *MacroItem:
		w.path(n.Path)

	// ---------- Generics and types ----------
	case *Generics:
		for _, p := range n.Params {
			if p != nil {
				w.node(p)
			}
		}

	case *GenericParam:
		for _, b := range n.Bounds {
			w.ty(b)
		}
		w.ty(n.Default)
		w.ty(n.Type)
		w.expr(n.Value)

	case *Ty:
		w.path(n.Path)
		for _, e := range n.Elems {
			w.ty(e)
		}
		w.ty(n.Ret)
		w.expr(n.Len)

	case *Path:
		for _, seg := range n.Segments {
			if seg != nil {
				w.node(seg)
			}
		}

	case *PathSegment:
		for _, a := range n.Args {
			w.ty(a)
		}

	// ---------- Statements ----------
	case *LetStmt:
		w.pat(n.Pat)
		w.ty(n.Type)
		w.expr(n.Init)
		w.block(n.Else)

	case *ExprStmt:
		w.expr(n.X)

	case *SemiStmt:
		w.expr(n.X)

	case *ItemStmt:
		if n.Item != nil {
			Walk(n.Item, w.fn)
		}

	case *EmptyStmt:
		// Leaf node

	// ---------- Expressions ----------
	case *Lit, *Continue, *MacroCall:
		// Leaf nodes

	case *Unary:
		w.expr(n.X)

	case *Binary:
		w.expr(n.X)
		w.expr(n.Y)

	case *Paren:
		w.expr(n.X)

	case *Tuple:
		w.exprs(n.Elems)

	case *Array:
		w.exprs(n.Elems)
		w.expr(n.Repeat)

	case *Cast:
		w.expr(n.X)
		w.ty(n.Type)

	case *Ref:
		w.expr(n.X)

	case *Range:
		w.expr(n.Lo)
		w.expr(n.Hi)

	case *Call:
		w.expr(n.Fun)
		w.exprs(n.Args)

	case *MethodCall:
		w.expr(n.Recv)
		w.exprs(n.Args)

	case *Field:
		w.expr(n.X)

	case *Index:
		w.expr(n.X)
		w.expr(n.Index)

	case *Try:
		w.expr(n.X)

	case *Closure:
		for _, p := range n.Params {
			if p != nil {
				w.node(p)
			}
		}
		w.ty(n.Ret)
		w.expr(n.Body)

	case *ClosureParam:
		w.pat(n.Pat)
		w.ty(n.Type)

	case *BlockExpr:
		w.block(n.Block)

	case *LetExpr:
		w.pat(n.Pat)
		w.expr(n.X)

	case *If:
		w.expr(n.Cond)
		w.block(n.Then)
		w.expr(n.Else)

	case *While:
		w.expr(n.Cond)
		w.block(n.Body)

	case *Loop:
		w.block(n.Body)

	case *For:
		w.pat(n.Pat)
		w.expr(n.Iter)
		w.block(n.Body)

	case *Match:
		w.expr(n.X)
		for _, a := range n.Arms {
			if a != nil {
				w.node(a)
			}
		}

	case *Arm:
		w.pat(n.Pat)
		w.expr(n.Guard)
		w.expr(n.Body)

	case *Return:
		w.expr(n.X)

	case *Break:
		w.expr(n.X)

	case *Assign:
		w.expr(n.LHS)
		w.expr(n.RHS)

	case *AssignOp:
		w.expr(n.LHS)
		w.expr(n.RHS)

	case *StructLit:
		w.path(n.Path)
		for _, f := range n.Fields {
			if f != nil {
				w.node(f)
			}
		}
		w.expr(n.Rest)

	case *FieldInit:
		w.expr(n.Value)

	// ---------- Patterns ----------
	case *WildPat, *RestPat:
		// Leaf nodes

	case *IdentPat:
		w.pat(n.Sub)

	case *StructPat:
		w.path(n.Path)
		for _, f := range n.Fields {
			if f != nil {
				w.node(f)
			}
		}

	case *FieldPat:
		w.pat(n.Pat)

	case *TupleStructPat:
		w.path(n.Path)
		w.pats(n.Elems)

	case *TuplePat:
		w.pats(n.Elems)

	case *SlicePat:
		w.pats(n.Elems)

	case *PathPat:
		w.path(n.Path)

	case *LitPat:
		w.expr(n.X)

	case *RangePat:
		w.expr(n.Lo)
		w.expr(n.Hi)

	case *RefPat:
		w.pat(n.Pat)

	case *OrPat:
		w.pats(n.Alts)
	}
}

// Unparen strips exactly one layer of parentheses.
func Unparen(e Expr) Expr {
	if p, ok := e.(*Paren); ok {
		return p.X
	}
	return e
}

// StripParens strips every layer of parentheses.
func StripParens(e Expr) Expr {
	for {
		p, ok := e.(*Paren)
		if !ok {
			return e
		}
		e = p.X
	}
}
