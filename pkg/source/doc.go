// Package source gives rules read-only access to the text behind spans.
//
// Map is the lookup contract the lint engine depends on. File is the
// in-memory implementation used by the reference front-end and the CLI.
package source
