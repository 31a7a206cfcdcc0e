// Package lang implements the small query language the dispatcher
// exposes: a lexer, a parser producing dispatcher requests, and a
// runtime that drives a source string against a *server.Server.
package lang

// token is one lexical unit produced by the lexer, carrying the 1-based
// source position it was emitted at.
type token struct {
	value  string
	line   int
	column int
}
