package parser_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/pkg/parser"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// ignoreSpans compares trees by shape only.
var ignoreSpans = cmp.Options{
	cmpopts.IgnoreTypes(syntax.Base{}),
	cmpopts.EquateEmpty(),
}

func parseExpr(t *testing.T, src string) syntax.Expr {
	t.Helper()
	e, err := parser.ParseExpr(src)
	require.NoError(t, err, src)
	return e
}

func ident(name string) *syntax.Path {
	return &syntax.Path{Segments: []*syntax.PathSegment{{Name: name}}}
}

func TestParseNumberLiterals(t *testing.T) {
	tests := []struct {
		src    string
		kind   syntax.LitKind
		value  uint64
		suffix string
		symbol string
	}{
		{"0", syntax.LitInt, 0, "", "0"},
		{"123", syntax.LitInt, 123, "", "123"},
		{"1_000", syntax.LitInt, 1000, "", "1_000"},
		{"0123", syntax.LitInt, 123, "", "0123"},
		{"0x1aB", syntax.LitInt, 0x1ab, "", "0x1aB"},
		{"0xFFu8", syntax.LitInt, 255, "u8", "0xFF"},
		{"0x1f32", syntax.LitInt, 0x1f32, "", "0x1f32"},
		{"0o17", syntax.LitInt, 15, "", "0o17"},
		{"0b1010_i64", syntax.LitInt, 10, "i64", "0b1010_"},
		{"12u32", syntax.LitInt, 12, "u32", "12"},
		{"12_usize", syntax.LitInt, 12, "usize", "12_"},
		{"1.5", syntax.LitFloat, 0, "", "1.5"},
		{"1.5f32", syntax.LitFloat, 0, "f32", "1.5"},
		{"2f64", syntax.LitFloat, 0, "f64", "2"},
		{"1e10", syntax.LitFloat, 0, "", "1e10"},
		{"1E-3_f64", syntax.LitFloat, 0, "f64", "1E-3_"},
		{"340282366920938463463374607431768211455u128", syntax.LitInt, math.MaxUint64, "u128", "340282366920938463463374607431768211455"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			lit, ok := parseExpr(t, tt.src).(*syntax.Lit)
			require.True(t, ok)
			assert.Equal(t, tt.kind, lit.Kind)
			assert.Equal(t, tt.value, lit.Value)
			assert.Equal(t, tt.suffix, lit.Suffix)
			assert.Equal(t, tt.symbol, lit.Symbol)
			assert.Equal(t, 0, lit.Span().Start.Offset)
			assert.Equal(t, len(tt.src), lit.Span().End.Offset)
		})
	}
}

func TestParseNumberErrors(t *testing.T) {
	tests := []struct {
		src     string
		wantErr string
	}{
		{"12foo", "invalid suffix `foo`"},
		{"0b102", "invalid digit for a base 2 literal"},
		{"0x", "invalid number literal"},
		{"0xF_f32x", "invalid suffix"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := parser.ParseExpr(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseExprShapes(t *testing.T) {
	one := &syntax.Lit{Kind: syntax.LitInt, Value: 1, Symbol: "1"}
	two := &syntax.Lit{Kind: syntax.LitInt, Value: 2, Symbol: "2"}

	tests := []struct {
		src  string
		want syntax.Expr
	}{
		{
			"--x",
			&syntax.Unary{Op: syntax.UnNeg, X: &syntax.Unary{Op: syntax.UnNeg, X: ident("x")}},
		},
		{
			"-(-x)",
			&syntax.Unary{Op: syntax.UnNeg, X: &syntax.Paren{X: &syntax.Unary{Op: syntax.UnNeg, X: ident("x")}}},
		},
		{
			"1 + 2 * x",
			&syntax.Binary{Op: token.PLUS, X: one, Y: &syntax.Binary{Op: token.STAR, X: two, Y: ident("x")}},
		},
		{
			"(|| 1)()",
			&syntax.Call{Fun: &syntax.Paren{X: &syntax.Closure{Body: one}}},
		},
		{
			"x = f()",
			&syntax.Assign{LHS: ident("x"), RHS: &syntax.Call{Fun: ident("f")}},
		},
		{
			"a.b.c(1)?",
			&syntax.Try{X: &syntax.MethodCall{
				Recv:   &syntax.Field{X: ident("a"), Name: "b"},
				Method: "c",
				Args:   []syntax.Expr{one},
			}},
		},
		{
			"t.0.1",
			&syntax.Field{X: &syntax.Field{X: ident("t"), Name: "0"}, Name: "1"},
		},
		{
			"1..=2",
			&syntax.Range{Lo: one, Hi: two, Inclusive: true},
		},
		{
			"x as u8",
			&syntax.Cast{X: ident("x"), Type: &syntax.Ty{Kind: syntax.TyPath, Path: ident("u8")}},
		},
		{
			"&mut x",
			&syntax.Ref{Mutable: true, X: ident("x")},
		},
		{
			"P { a, b: 1 }",
			&syntax.StructLit{Path: ident("P"), Fields: []*syntax.FieldInit{
				{Name: "a", Shorthand: true},
				{Name: "b", Value: one},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := parseExpr(t, tt.src)
			if diff := cmp.Diff(tt.want, got, ignoreSpans); diff != "" {
				t.Errorf("ParseExpr(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParseClosure(t *testing.T) {
	c, ok := parseExpr(t, "move |a, (b, _): (u8, u8)| -> u8 { a }").(*syntax.Closure)
	require.True(t, ok)
	assert.True(t, c.Move)
	require.Len(t, c.Params, 2)
	assert.IsType(t, &syntax.IdentPat{}, c.Params[0].Pat)
	assert.IsType(t, &syntax.TuplePat{}, c.Params[1].Pat)
	assert.NotNil(t, c.Params[1].Type)
	assert.NotNil(t, c.Ret)
	assert.IsType(t, &syntax.BlockExpr{}, c.Body)
}

func TestParseMacroCallIsOpaque(t *testing.T) {
	m, ok := parseExpr(t, `println!("{}", 0123)`).(*syntax.MacroCall)
	require.True(t, ok)
	assert.Equal(t, "println", m.Path.Last())
	assert.Equal(t, token.LPAREN, m.Delim)

	var lits int
	syntax.Walk(m, func(n syntax.Node) bool {
		if _, ok := n.(*syntax.Lit); ok {
			lits++
		}
		return true
	})
	assert.Zero(t, lits)
}

func TestParsePatterns(t *testing.T) {
	block, err := parser.ParseBlockBody(`
		let S { a: _, ref b, .. } = s;
		let y @ _ = 1;
		let (Some(x) | None) = o;
		let [first, .., 1..=5] = arr;
	`)
	require.NoError(t, err)
	require.Len(t, block.Stmts, 4)

	structPat := block.Stmts[0].(*syntax.LetStmt).Pat.(*syntax.StructPat)
	assert.Equal(t, "S", structPat.Path.Last())
	assert.True(t, structPat.Rest)
	require.Len(t, structPat.Fields, 2)
	assert.IsType(t, &syntax.WildPat{}, structPat.Fields[0].Pat)
	assert.False(t, structPat.Fields[0].Shorthand)
	assert.True(t, structPat.Fields[1].Shorthand)
	assert.True(t, structPat.Fields[1].Pat.(*syntax.IdentPat).ByRef)

	binding := block.Stmts[1].(*syntax.LetStmt).Pat.(*syntax.IdentPat)
	assert.Equal(t, "y", binding.Name)
	assert.IsType(t, &syntax.WildPat{}, binding.Sub)

	assert.IsType(t, &syntax.OrPat{}, block.Stmts[2].(*syntax.LetStmt).Pat)

	slice := block.Stmts[3].(*syntax.LetStmt).Pat.(*syntax.SlicePat)
	require.Len(t, slice.Elems, 3)
	assert.IsType(t, &syntax.RestPat{}, slice.Elems[1])
	assert.IsType(t, &syntax.RangePat{}, slice.Elems[2])
}

func TestParseItems(t *testing.T) {
	src := `
#![allow(dead_code)]
use std::collections::HashMap;

/// Docs.
pub struct Pair<'a, T: Clone + 'a, const N: usize> { pub a: &'a T, b: [u8; N] }
struct Unit;
struct Tup(u8, pub String);

enum E<u32> { A, B(u8), C { x: i32 } = 3 }

type Alias<T> = Vec<Vec<T>>;

const X: u32 = 0123;
static mut Y: u8 = 1u8;

trait Tr<U>: Sized { fn m(&self, x: U) -> U; }

impl<T> Tr<T> for Pair<'_, T, 3> where T: Clone {
	fn m(&self, x: T) -> T { x }
}

macro_rules! twice { ($e:expr) => { $e + $e }; }

mod inner {
	fn f(a: i32, _a: i32) {}
}
`
	file, err := parser.Parse("items.rs", src)
	require.NoError(t, err)
	require.Len(t, file.Items, 12)

	pair := file.Items[1].(*syntax.StructDecl)
	assert.Equal(t, "Pair", pair.Name)
	require.Len(t, pair.Generics.Params, 3)
	assert.Equal(t, syntax.GenericLifetime, pair.Generics.Params[0].Kind)
	assert.Equal(t, "a", pair.Generics.Params[0].Name)
	assert.Equal(t, syntax.GenericType, pair.Generics.Params[1].Kind)
	assert.Equal(t, syntax.GenericConst, pair.Generics.Params[2].Kind)

	assert.True(t, file.Items[2].(*syntax.StructDecl).Unit)
	assert.True(t, file.Items[3].(*syntax.StructDecl).Tuple)

	enum := file.Items[4].(*syntax.EnumDecl)
	assert.Equal(t, "u32", enum.Generics.Params[0].Name)
	require.Len(t, enum.Variants, 3)
	assert.NotNil(t, enum.Variants[2].Discriminant)

	assert.IsType(t, &syntax.TypeAlias{}, file.Items[5])
	assert.IsType(t, &syntax.ConstItem{}, file.Items[6])
	assert.True(t, file.Items[7].(*syntax.ConstItem).Static)

	trait := file.Items[8].(*syntax.TraitDecl)
	require.Len(t, trait.Items, 1)
	assert.Nil(t, trait.Items[0].(*syntax.FnDecl).Body)
	assert.True(t, trait.Items[0].(*syntax.FnDecl).Params[0].SelfParam)

	impl := file.Items[9].(*syntax.ImplBlock)
	assert.NotNil(t, impl.Trait)
	assert.Equal(t, "Pair", impl.SelfType.Path.Last())

	assert.IsType(t, &syntax.MacroItem{}, file.Items[10])

	mod := file.Items[11].(*syntax.ModDecl)
	fn := mod.Items[0].(*syntax.FnDecl)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "_a", fn.Params[1].Pat.(*syntax.IdentPat).Name)

	require.NotEmpty(t, file.Comments)
	assert.Equal(t, "/ Docs.", file.Comments[0].Body())
}

func TestParseStatements(t *testing.T) {
	block, err := parser.ParseBlockBody(`
		let f = || 1;
		x = f();
		if a { b } else if c { d } else { e }
		match v { Some(n) if n > 0 => n, _ => { 0 } }
		for i in 0..n { continue; }
		'outer: loop { break 'outer; }
		while let Some(x) = it.next() {}
		vec![1, 2];
		tail
	`)
	require.NoError(t, err)
	require.Len(t, block.Stmts, 9)

	assert.IsType(t, &syntax.LetStmt{}, block.Stmts[0])
	semi := block.Stmts[1].(*syntax.SemiStmt)
	assign := semi.X.(*syntax.Assign)
	assert.IsType(t, &syntax.Call{}, assign.RHS)

	assert.IsType(t, &syntax.If{}, block.Stmts[2].(*syntax.ExprStmt).X)
	m := block.Stmts[3].(*syntax.ExprStmt).X.(*syntax.Match)
	require.Len(t, m.Arms, 2)
	assert.NotNil(t, m.Arms[0].Guard)
	assert.IsType(t, &syntax.For{}, block.Stmts[4].(*syntax.ExprStmt).X)
	assert.Equal(t, "'outer", block.Stmts[5].(*syntax.ExprStmt).X.(*syntax.Loop).Label)
	assert.IsType(t, &syntax.LetExpr{}, block.Stmts[6].(*syntax.ExprStmt).X.(*syntax.While).Cond)
	assert.IsType(t, &syntax.MacroCall{}, block.Stmts[7].(*syntax.SemiStmt).X)
	assert.IsType(t, &syntax.Path{}, block.Stmts[8].(*syntax.ExprStmt).X)
}

func TestParseNoStructInConditions(t *testing.T) {
	block, err := parser.ParseBlockBody(`if x == y { z } match s { S { a, .. } => a }`)
	require.NoError(t, err)
	require.Len(t, block.Stmts, 2)

	cond := block.Stmts[0].(*syntax.ExprStmt).X.(*syntax.If).Cond.(*syntax.Binary)
	assert.IsType(t, &syntax.Path{}, cond.Y)
}

func TestParseNestedGenericsClose(t *testing.T) {
	_, err := parser.Parse("g.rs", "fn f(x: Vec<Vec<u8>>) -> Option<Vec<Vec<u8>>> { x }")
	require.NoError(t, err)
}

func TestParseSpans(t *testing.T) {
	file, err := parser.Parse("s.rs", "fn foo(a: u8,\n       _a: u8) {}")
	require.NoError(t, err)

	fn := file.Items[0].(*syntax.FnDecl)
	first := fn.Params[0].Pat.Span()
	second := fn.Params[1].Pat.Span()
	assert.Equal(t, token.Position{Line: 1, Column: 8, Offset: 7}, first.Start)
	assert.Equal(t, token.Position{Line: 1, Column: 9, Offset: 8}, first.End)
	assert.Equal(t, token.Position{Line: 2, Column: 8, Offset: 21}, second.Start)
	assert.Equal(t, 23, second.End.Offset)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"missing semicolon", "fn f() { let x = 1 }", "expected `;`"},
		{"unterminated string", `fn f() { "abc }`, "unterminated string literal"},
		{"stray char", "fn f() { ` }", "unexpected character"},
		{"bad item", "let x = 1;", "expected item"},
		{"unbalanced", "fn f() { (1 }", "unexpected token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse("bad.rs", tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "bad.rs", perr.File)
			assert.True(t, perr.Pos.IsValid())
		})
	}
}
