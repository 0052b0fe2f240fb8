// Package generics provides lint rules for generic parameter lists.
//
// Rules in this package:
//   - builtin-type-shadow: `<u32>` as a type parameter name
//
// Options:
//
//	builtin-type-shadow:
//	  extra_types: [String, Vec]  # more names to treat as built-in
package generics
