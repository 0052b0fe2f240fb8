// Package literals provides lint rules about how numeric literals are written.
//
// Rules in this package:
//   - unseparated-literal-suffix: `1u8` instead of `1_u8`
//   - mixed-case-hex-literal: `0xaBc`
//   - zero-prefixed-literal: `0123`, which reads as octal to C programmers
//
// All three inspect the literal's source text; literals whose text cannot be
// recovered are skipped.
package literals
