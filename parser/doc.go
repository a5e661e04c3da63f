// Package parser provides decoding helpers for model output.
//
// Chat models asked for JSON occasionally wrap the payload in markdown
// code fences or surround it with prose. CleanJSON isolates the JSON
// payload so stage responses decode reliably.
package parser
