// Package rules provides the early-pass lint rule catalog.
//
// Rules are organized by the syntax they inspect:
//   - literals: numeric literal spelling (suffixes, hex casing, leading zeros)
//   - patterns: struct and binding patterns
//   - functions: function and closure parameter lists
//   - closures: closures called where they are declared
//   - expressions: unary operator chains
//   - generics: generic parameter names
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/earlylint/pkg/lint/rules"
//
// Individual rule groups can also be imported:
//
//	import _ "github.com/leapstack-labs/earlylint/pkg/lint/rules/literals"
package rules
