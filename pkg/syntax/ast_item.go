package syntax

// Param is a function parameter. SelfParam marks `self`, `&self` and
// `&mut self`; such parameters have a nil Pat.
type Param struct {
	Base
	Pat       Pat
	Type      *Ty
	SelfParam bool
}

// FnDecl is a function declaration. Body is nil for trait method signatures.
type FnDecl struct {
	Base
	Pub      bool
	Const    bool
	Unsafe   bool
	Name     string
	Generics *Generics
	Params   []*Param
	Ret      *Ty
	Body     *Block
}

func (*FnDecl) itemNode() {}

// ImplBlock is `impl<G> Trait for SelfType { items }`.
type ImplBlock struct {
	Base
	Generics *Generics
	Trait    *Ty
	SelfType *Ty
	Items    []Item
}

func (*ImplBlock) itemNode() {}

// TraitDecl is `trait Name<G> { items }`.
type TraitDecl struct {
	Base
	Pub      bool
	Name     string
	Generics *Generics
	Items    []Item
}

func (*TraitDecl) itemNode() {}

// StructField is a named or positional field declaration.
type StructField struct {
	Base
	Pub  bool
	Name string // "" for tuple fields
	Type *Ty
}

// StructDecl is a struct declaration.
type StructDecl struct {
	Base
	Pub      bool
	Name     string
	Generics *Generics
	Fields   []*StructField
	Tuple    bool
	Unit     bool
}

func (*StructDecl) itemNode() {}

// Variant is an enum variant.
type Variant struct {
	Base
	Name         string
	Fields       []*StructField
	Tuple        bool
	Discriminant Expr
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Base
	Pub      bool
	Name     string
	Generics *Generics
	Variants []*Variant
}

func (*EnumDecl) itemNode() {}

// TypeAlias is `type Name<G> = T;`.
type TypeAlias struct {
	Base
	Pub      bool
	Name     string
	Generics *Generics
	Type     *Ty
}

func (*TypeAlias) itemNode() {}

// ConstItem is `const NAME: T = value;` or `static NAME: T = value;`.
type ConstItem struct {
	Base
	Pub     bool
	Static  bool
	Mutable bool
	Name    string
	Type    *Ty
	Value   Expr
}

func (*ConstItem) itemNode() {}

// ModDecl is an inline module `mod name { items }` or `mod name;`.
type ModDecl struct {
	Base
	Pub   bool
	Name  string
	Items []Item
}

func (*ModDecl) itemNode() {}

// UseDecl is a `use` declaration. The tree is opaque.
type UseDecl struct {
	Base
	Pub bool
}

func (*UseDecl) itemNode() {}

// MacroItem is a macro invocation in item position. The token tree is opaque.
type MacroItem struct {
	Base
	Path *Path
}

func (*MacroItem) itemNode() {}
