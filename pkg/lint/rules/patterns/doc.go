// Package patterns provides lint rules for binding and struct patterns.
//
// Rules in this package:
//   - unneeded-field-pattern: struct pattern fields matched with `_`
//   - redundant-pattern: `name @ _`
package patterns
