// Package functions provides lint rules for function and closure signatures.
package functions
