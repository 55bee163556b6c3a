/*

Process of compilation

MIR Text ->
	parse ->
Mid-level Intermediate Representation (mir) ->
	lower ->
Backend Trees (back) ->
	gimplify, finalize ->
Finalized Declarations

The mir of one function is a list of basic blocks over indexed storage
slots. Lowering walks the blocks in order and emits one flat statement
list per function, which is bound to the function declaration and handed
to the backend side of the unit. Constructs outside the supported subset
abort the whole unit.

*/
package compiler
