// Package shell turns a line of input into a command tree.
//
// The grammar is deliberately small:
//
//	line      := pipeline ( '&' )* ( ';' line )?
//	pipeline  := exec ( '|' pipeline )?
//	exec      := group | simple
//	group     := '(' line ')' redirs
//	simple    := redirs ( word redirs )*
//	redirs    := ( ('<' | '>' | '>>') word )*
//
// There is no quoting, expansion or globbing: a word is any run of characters
// that are neither whitespace nor one of the operator characters "<|>&;()".
package shell
