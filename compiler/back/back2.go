package back

// Gimplify normalizes the function body attached with SetBody into a flat
// statement sequence stored on the declaration. It stands in for the real
// backend's lowering pass and is opaque to callers.
func (u *Unit) Gimplify(fn Tree) {
	n := u.fnode(fn)
	if n.saved == NilTree {
		panic("no body")
	}

	n.gimple = u.flatten(make([]Tree, 0, 8), n.saved)
}

func (u *Unit) flatten(g []Tree, t Tree) []Tree {
	n := &u.nodes[t]

	switch n.code {
	case BindExpr:
		return u.flatten(g, n.ops[1])
	case StatementList:
		for _, s := range n.ops {
			g = u.flatten(g, s)
		}

		return g
	case LabelExpr, InitExpr, ReturnExpr:
		return append(g, t)
	default:
		panic(n.code)
	}
}

// Finalize releases the declaration to the unit: it is registered on
// Decls and no further construction against it is expected. With
// noCollect unset the unit is free to drop the unflattened body.
func (u *Unit) Finalize(fn Tree, noCollect bool) {
	n := u.fnode(fn)
	if n.gimple == nil {
		panic("not gimplified")
	}

	if !noCollect {
		n.saved = NilTree
	}

	u.Decls = append(u.Decls, fn)
}

// Gimple returns the flattened statement sequence of a gimplified
// function.
func (u *Unit) Gimple(fn Tree) []Tree { return u.fnode(fn).gimple }

func (u *Unit) CodeOf(t Tree) Code { return u.nodes[t].code }
func (u *Unit) TypeOf(t Tree) Tree { return u.nodes[t].typ }
func (u *Unit) IntVal(t Tree) int64 {
	n := &u.nodes[t]
	if n.code != IntegerCst {
		panic(n.code)
	}

	return n.val
}

// Operand returns the i-th operand of a node.
func (u *Unit) Operand(t Tree, i int) Tree { return u.nodes[t].ops[i] }

// Stmts returns the statements of a statement list in order.
func (u *Unit) Stmts(list Tree) []Tree {
	n := &u.nodes[list]
	if n.code != StatementList {
		panic(n.code)
	}

	return n.ops
}

func (u *Unit) DeclName(t Tree) string { return u.nodes[t].name }
func (u *Unit) Result(fn Tree) Tree    { return u.fnode(fn).result }
func (u *Unit) Parms(fn Tree) []Tree   { return u.fnode(fn).parms }
func (u *Unit) Body(fn Tree) Tree      { return u.fnode(fn).saved }
func (u *Unit) External(fn Tree) bool  { return u.fnode(fn).ext }
func (u *Unit) Preserved(fn Tree) bool { return u.fnode(fn).pres }
