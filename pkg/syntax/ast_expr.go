package syntax

import "github.com/leapstack-labs/earlylint/pkg/token"

// ---------- Literals ----------

// LitKind classifies a literal.
type LitKind int

// Literal kinds.
const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitChar
	LitBool
)

// String returns the literal kind name.
func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitStr:
		return "str"
	case LitChar:
		return "char"
	case LitBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Lit is a literal. For integers Value holds the parsed value (saturating at
// the uint64 maximum). Suffix is the parsed type suffix of numeric literals,
// or "" when unsuffixed. Symbol is the lexed text without the suffix.
type Lit struct {
	Base
	Kind   LitKind
	Value  uint64
	Suffix string
	Symbol string
}

func (*Lit) exprNode() {}

// IsNumeric reports whether the literal is an integer or a float.
func (l *Lit) IsNumeric() bool { return l.Kind == LitInt || l.Kind == LitFloat }

// ---------- Operators ----------

// UnOp is a prefix unary operator.
type UnOp int

// Unary operators.
const (
	UnNeg   UnOp = iota // -x
	UnNot               // !x
	UnDeref             // *x
)

// String returns the operator text.
func (op UnOp) String() string {
	switch op {
	case UnNeg:
		return "-"
	case UnNot:
		return "!"
	case UnDeref:
		return "*"
	default:
		return "?"
	}
}

// Unary is a prefix operator application.
type Unary struct {
	Base
	Op UnOp
	X  Expr
}

func (*Unary) exprNode() {}

// Binary is an infix operator application.
type Binary struct {
	Base
	Op token.TokenType
	X  Expr
	Y  Expr
}

func (*Binary) exprNode() {}

// Paren is a parenthesized expression.
type Paren struct {
	Base
	X Expr
}

func (*Paren) exprNode() {}

// Tuple is a tuple expression `(a, b)` or the unit value `()`.
type Tuple struct {
	Base
	Elems []Expr
}

func (*Tuple) exprNode() {}

// Array is an array expression `[a, b]` or `[x; n]` (Repeat set).
type Array struct {
	Base
	Elems  []Expr
	Repeat Expr
}

func (*Array) exprNode() {}

// Cast is `x as T`.
type Cast struct {
	Base
	X    Expr
	Type *Ty
}

func (*Cast) exprNode() {}

// Ref is a borrow `&x` / `&mut x`.
type Ref struct {
	Base
	Mutable bool
	X       Expr
}

func (*Ref) exprNode() {}

// Range is `lo..hi` or `lo..=hi`; either bound may be nil.
type Range struct {
	Base
	Lo        Expr
	Hi        Expr
	Inclusive bool
}

func (*Range) exprNode() {}

// ---------- Calls and access ----------

// Call is a function call.
type Call struct {
	Base
	Fun  Expr
	Args []Expr
}

func (*Call) exprNode() {}

// MethodCall is `recv.method(args)`.
type MethodCall struct {
	Base
	Recv   Expr
	Method string
	Args   []Expr
}

func (*MethodCall) exprNode() {}

// Field is a field access `x.name` or tuple index `x.0`.
type Field struct {
	Base
	X    Expr
	Name string
}

func (*Field) exprNode() {}

// Index is `x[i]`.
type Index struct {
	Base
	X     Expr
	Index Expr
}

func (*Index) exprNode() {}

// Try is the postfix error-propagation operator `x?`.
type Try struct {
	Base
	X Expr
}

func (*Try) exprNode() {}

// MacroCall is a macro invocation `name!(...)`. Its token tree is opaque.
type MacroCall struct {
	Base
	Path  *Path
	Delim token.TokenType // LPAREN, LBRACKET or LBRACE
}

func (*MacroCall) exprNode() {}

// ---------- Closures ----------

// ClosureParam is a closure parameter `pat` or `pat: T`.
type ClosureParam struct {
	Base
	Pat  Pat
	Type *Ty
}

// Closure is `|params| body` or `move |params| -> T { body }`.
type Closure struct {
	Base
	Move   bool
	Params []*ClosureParam
	Ret    *Ty
	Body   Expr
}

func (*Closure) exprNode() {}

// ---------- Control flow ----------

// BlockExpr is a block used as an expression, optionally `unsafe`.
type BlockExpr struct {
	Base
	Unsafe bool
	Block  *Block
}

func (*BlockExpr) exprNode() {}

// LetExpr is the `let pat = x` condition of `if let` / `while let`.
type LetExpr struct {
	Base
	Pat Pat
	X   Expr
}

func (*LetExpr) exprNode() {}

// If is `if cond { then } else ...`. Else is nil, an *If or a *BlockExpr.
type If struct {
	Base
	Cond Expr
	Then *Block
	Else Expr
}

func (*If) exprNode() {}

// While is `while cond { body }`.
type While struct {
	Base
	Label string
	Cond  Expr
	Body  *Block
}

func (*While) exprNode() {}

// Loop is `loop { body }`.
type Loop struct {
	Base
	Label string
	Body  *Block
}

func (*Loop) exprNode() {}

// For is `for pat in iter { body }`.
type For struct {
	Base
	Label string
	Pat   Pat
	Iter  Expr
	Body  *Block
}

func (*For) exprNode() {}

// Arm is a match arm `pat if guard => body`.
type Arm struct {
	Base
	Pat   Pat
	Guard Expr
	Body  Expr
}

// Match is `match x { arms }`.
type Match struct {
	Base
	X    Expr
	Arms []*Arm
}

func (*Match) exprNode() {}

// Return is `return` with an optional value.
type Return struct {
	Base
	X Expr
}

func (*Return) exprNode() {}

// Break is `break 'label value`.
type Break struct {
	Base
	Label string
	X     Expr
}

func (*Break) exprNode() {}

// Continue is `continue 'label`.
type Continue struct {
	Base
	Label string
}

func (*Continue) exprNode() {}

// ---------- Assignment ----------

// Assign is `lhs = rhs`.
type Assign struct {
	Base
	LHS Expr
	RHS Expr
}

func (*Assign) exprNode() {}

// AssignOp is a compound assignment such as `lhs += rhs`.
type AssignOp struct {
	Base
	Op  token.TokenType
	LHS Expr
	RHS Expr
}

func (*AssignOp) exprNode() {}

// ---------- Struct literals ----------

// FieldInit is one `name: value` (or shorthand `name`) of a struct literal.
type FieldInit struct {
	Base
	Name      string
	Value     Expr
	Shorthand bool
}

// StructLit is `Path { fields, ..rest }`.
type StructLit struct {
	Base
	Path   *Path
	Fields []*FieldInit
	Rest   Expr
}

func (*StructLit) exprNode() {}
