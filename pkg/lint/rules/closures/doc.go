// Package closures provides lint rules about how closures are used.
//
// Rules in this package:
//   - redundant-closure-call: `(|| x)()` and `let f = || x; y = f();`
//
// Options:
//
//	redundant-closure-call:
//	  stop_at_nested_closures: false  # skip nested closures when looking for `return`/`?`
package closures
