// Package ast provides syntax-tree helpers shared by lint rules.
package ast

import (
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

// ContainsReturn reports whether root contains an early exit: a `return`
// expression or a `?` operator. With stopAtClosures set, nested closure bodies
// are not searched.
func ContainsReturn(root syntax.Node, stopAtClosures bool) bool {
	found := false
	syntax.Walk(root, func(n syntax.Node) bool {
		if found {
			return false
		}
		switch n.(type) {
		case *syntax.Return, *syntax.Try:
			found = true
			return false
		case *syntax.Closure:
			return !stopAtClosures
		}
		return true
	})
	return found
}

// IsWildcard reports whether p is the wildcard pattern `_`.
func IsWildcard(p syntax.Pat) bool {
	_, ok := p.(*syntax.WildPat)
	return ok
}

// SimpleBinding returns the identifier pattern when p is a plain binding
// without a `@` subpattern.
func SimpleBinding(p syntax.Pat) (*syntax.IdentPat, bool) {
	id, ok := p.(*syntax.IdentPat)
	if !ok || id.Sub != nil {
		return nil, false
	}
	return id, true
}

// PathName returns the last segment of a path, the name shown in messages.
func PathName(p *syntax.Path) string {
	return p.Last()
}
