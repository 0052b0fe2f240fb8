package syntax

// LetStmt is `let pat: T = init else { ... };`.
type LetStmt struct {
	Base
	Pat  Pat
	Type *Ty
	Init Expr
	Else *Block
}

func (*LetStmt) stmtNode() {}

// ExprStmt is an expression without a trailing semicolon, either a block-like
// expression in statement position or the tail expression of a block.
type ExprStmt struct {
	Base
	X Expr
}

func (*ExprStmt) stmtNode() {}

// SemiStmt is an expression terminated by `;`.
type SemiStmt struct {
	Base
	X Expr
}

func (*SemiStmt) stmtNode() {}

// ItemStmt is an item declared inside a block.
type ItemStmt struct {
	Base
	Item Item
}

func (*ItemStmt) stmtNode() {}

// EmptyStmt is a lone `;`.
type EmptyStmt struct {
	Base
}

func (*EmptyStmt) stmtNode() {}
