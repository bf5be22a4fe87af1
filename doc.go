/*
Package turtle implements the execution engine of a small Logo-derived
procedural language.

Programs manipulate numbers, strings, booleans, lists, and commands through
procedures, either defined by the program itself or provided by Go code in
modules. The canonical module drives a cursor, the turtle, which leaves a path
behind it as it moves. Rendering that path is left to the embedder.

This package does not parse source text. A parser, or any other producer,
hands the engine a Program: a sequence of top-level invocations and a table of
procedures. Programs can also be persisted to and loaded from YAML with
MarshalProgram and UnmarshalProgram.

To run a program, create an Interpreter with New, passing the modules to load,
then call Run:

	prog, err := turtle.UnmarshalProgram(data)
	if err != nil {
		// ...
	}
	in, err := turtle.New(turtle.DefaultConfig(), prog, coreext.Modules()...)
	if err != nil {
		// ...
	}
	if err := in.Run(); err != nil {
		// err is a *turtle.Error
	}

# Logo Primer

A Logo program is a sequence of procedure calls. Every call names a procedure
and supplies its inputs:

	forward 100
	right 90

Each input is an expression. Numbers combine with the usual arithmetic and
comparison operators, evaluated left to right with multiplication and
division binding tighter than addition and subtraction:

	forward 1 + 2 * 3

Variables are read with a colon and named with a quote. make assigns to the
nearest scope which already has the variable, or creates it in the innermost
scope:

	make "size 10
	forward :size

Procedures are defined with inputs. A procedure returns a value by calling
output, and ends early by calling stop:

	to double :x
	  output :x * 2
	end

	forward double 21

A procedure may take a rest input, which collects every surplus input into a
list:

	to sum :a [:rest]
	  ...
	end

Blocks in square brackets are commands: they are not run where they appear,
but are passed to procedures like if and repeat, which run them later in the
caller's scope. A stop or output inside a block acts on the procedure that
contains it:

	to spiral :n
	  if :n > 200 [stop]
	  forward :n
	  right 91
	  spiral :n + 2
	end

When the last statement of a procedure calls the procedure itself, the call
does not nest. The engine rebinds the inputs and starts the body over, so
spiral above runs in constant depth no matter how many times it recurses.
Other recursion is bounded by the configured maximum frame depth.
*/
package turtle

// Version is the interpreter version.
const Version = "1"
