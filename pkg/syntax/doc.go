// Package syntax defines the syntax tree consumed by the lint engine.
//
// The tree is a read-only view produced by a front-end (see pkg/parser for the
// reference one). Node families are closed sum types: Expr, Pat, Stmt and Item
// are interfaces with unexported marker methods, so only this package can add
// variants and consumers dispatch with type switches.
//
// Every node carries a token.Span. Raw source text is never stored on the
// node; it is recovered through a source.Map from the span.
package syntax
