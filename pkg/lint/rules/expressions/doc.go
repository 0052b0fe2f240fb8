// Package expressions provides lint rules for operator expressions.
//
// Rules in this package:
//   - double-negation: `--x` and `-(-x)`
package expressions
