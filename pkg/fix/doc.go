// Package fix applies lint suggestions to source text and renders the result
// as a unified diff.
//
// Only one suggestion per diagnostic is applied: the first whose
// applicability the caller allows. Edits that overlap an already accepted
// edit are skipped and reported, never merged.
package fix
