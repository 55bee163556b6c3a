// Package back is the target tree layer the lowering emits into.
//
// It mimics a compiler backend's tree construction api: opaque handles into
// a per-unit arena, interned primitive types, a closed set of node
// constructors, and gimplify/finalize as the handoff points. Handles are
// plain indices; NilTree is the zero handle.
package back

import (
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	// Tree is a handle to a node owned by a Unit.
	Tree int32

	Code int32

	// IntKind selects one of the interned integer primitives.
	IntKind int32

	node struct {
		code Code
		typ  Tree
		ops  []Tree

		name string
		val  int64

		bits   int16
		signed bool

		// function decl wiring
		fn      Tree
		result  Tree
		initial Tree
		saved   Tree
		parms   []Tree
		ext     bool
		pres    bool
		gimple  []Tree
	}

	// Unit owns the tree arena for one compilation unit.
	//
	// A Unit is not synchronized: all construction for one unit happens on
	// a single goroutine.
	Unit struct {
		Name string

		nodes []node

		void Tree
		ints [intKinds]Tree

		// Decls collects finalized declarations in finalization order.
		Decls []Tree
	}
)

const (
	Nil Code = iota
	VoidType
	IntegerType
	FunctionType
	FunctionDecl
	ResultDecl
	ParmDecl
	VarDecl
	LabelDecl
	LabelExpr
	InitExpr
	ReturnExpr
	BindExpr
	Block
	StatementList
	IntegerCst
)

const (
	SignedChar IntKind = iota
	Short
	Int
	Long
	LongLong
	UnsignedChar
	UnsignedShort
	UnsignedInt
	UnsignedLong
	UnsignedLongLong

	intKinds
)

const NilTree Tree = 0

func NewUnit(name string) *Unit {
	u := &Unit{
		Name:  name,
		nodes: make([]node, 1), // node 0 is NilTree
	}

	u.void = u.alloc(node{code: VoidType})

	for k := SignedChar; k < intKinds; k++ {
		u.ints[k] = u.alloc(node{
			code:   IntegerType,
			bits:   k.bits(),
			signed: k < UnsignedChar,
		})
	}

	return u
}

func (k IntKind) bits() int16 {
	switch k {
	case SignedChar, UnsignedChar:
		return 8
	case Short, UnsignedShort:
		return 16
	case Int, UnsignedInt:
		return 32
	default:
		return 64
	}
}

func (u *Unit) alloc(n node) Tree {
	id := Tree(len(u.nodes))
	u.nodes = append(u.nodes, n)

	tlog.V("tree_alloc").Printw("tree node", "id", id, "code", n.code, "from", loc.Caller(2))

	return id
}

// Void returns the interned void type.
func (u *Unit) Void() Tree { return u.void }

// Primitive returns the interned integer type of the given kind.
// The handle is the same for every call within one unit.
func (u *Unit) Primitive(k IntKind) Tree {
	if k < 0 || k >= intKinds {
		panic(k)
	}

	return u.ints[k]
}

// Build constructs a generic node with 0 to 5 operands.
func (u *Unit) Build(code Code, typ Tree, ops ...Tree) Tree {
	if len(ops) > 5 {
		panic(len(ops))
	}

	return u.alloc(node{code: code, typ: typ, ops: ops})
}

func (u *Unit) IntConstant(typ Tree, val int64) Tree {
	return u.alloc(node{code: IntegerCst, typ: typ, val: val})
}

// FunctionType builds a function type node from a return type and ordered
// argument types.
func (u *Unit) FunctionType(ret Tree, args []Tree) Tree {
	ops := append([]Tree{ret}, args...)

	return u.alloc(node{code: FunctionType, ops: ops})
}

func (u *Unit) FnDecl(name string, typ Tree) Tree {
	return u.alloc(node{code: FunctionDecl, typ: typ, name: name, ext: true})
}

func (u *Unit) ResultDecl(typ Tree) Tree {
	return u.alloc(node{code: ResultDecl, typ: typ})
}

// ParmDecls builds one parameter declaration per argument type, bound to
// fn in argument order.
func (u *Unit) ParmDecls(fn Tree, argTypes []Tree) []Tree {
	decls := make([]Tree, len(argTypes))

	for i, tt := range argTypes {
		decls[i] = u.alloc(node{code: ParmDecl, typ: tt, fn: fn})
	}

	u.fnode(fn).parms = decls

	return decls
}

func (u *Unit) VarDecl(typ Tree, name string) Tree {
	return u.alloc(node{code: VarDecl, typ: typ, name: name})
}

// Label builds an artificial label declaration bound to fn.
func (u *Unit) Label(fn Tree) Tree {
	return u.alloc(node{code: LabelDecl, typ: u.void, fn: fn})
}

// NewBlock builds a lexical scope node with fn as its supercontext.
func (u *Unit) NewBlock(fn Tree) Tree {
	return u.alloc(node{code: Block, fn: fn})
}

func (u *Unit) StmtList() Tree {
	return u.alloc(node{code: StatementList})
}

// Append adds stmt to the end of a statement list.
func (u *Unit) Append(list, stmt Tree) {
	n := &u.nodes[list]
	if n.code != StatementList {
		panic(n.code)
	}

	n.ops = append(n.ops, stmt)
}

// BindExpr wraps a variable chain, a body and a lexical scope into one
// bound scope node. vars may be NilTree.
func (u *Unit) BindExpr(vars, body, block Tree) Tree {
	return u.alloc(node{code: BindExpr, typ: u.void, ops: []Tree{vars, body, block}})
}

func (u *Unit) SetExternal(fn Tree, v bool)  { u.fnode(fn).ext = v }
func (u *Unit) SetPreserved(fn Tree, v bool) { u.fnode(fn).pres = v }
func (u *Unit) SetResult(fn, res Tree)       { u.fnode(fn).result = res }
func (u *Unit) SetInitial(fn, block Tree)    { u.fnode(fn).initial = block }

// SetBody attaches the executable body (a bind expression) to fn.
func (u *Unit) SetBody(fn, body Tree) { u.fnode(fn).saved = body }

func (u *Unit) fnode(fn Tree) *node {
	n := &u.nodes[fn]
	if n.code != FunctionDecl {
		panic(n.code)
	}

	return n
}
