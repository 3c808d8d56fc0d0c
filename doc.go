/*
Package lox runs programs written in a small dynamically typed scripting
language in the Lox family. Source text is scanned into tokens, parsed into
an abstract syntax tree by a recursive-descent parser, and executed by
walking that tree.

The supported language is deliberately small: number, string, boolean and
nil literals; unary '-' and '!'; the arithmetic, comparison and equality
operators with the usual precedence; grouping; global variable declarations;
expression statements and print statements.

	var greeting = "hello, " + "world";
	print greeting;     // hello, world
	print (1 + 2) * 3;  // 9
	print nil == false; // false

A Runner keeps its global variables between calls to Run, so it can back an
interactive session as well as run whole files:

	r, err := lox.New(lox.WithOutput(os.Stdout))
	if err != nil {
		// handle error
	}
	if err := r.Run(src); err != nil {
		// err is errors.Diagnostics for lexical and syntax errors, which
		// prevent the program from running at all, or *errors.RuntimeError
		// for the runtime error that stopped it.
	}

Diagnostics are delivered to a Reporter as they are found; the default
reporter writes them to standard error.
*/
package lox
