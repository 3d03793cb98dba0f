// Package textenc detects subtitle file byte encodings and rewrites files as
// UTF-8, which the alignment tool requires.
package textenc
