package back

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveIntern(t *testing.T) {
	u := NewUnit("test")

	assert.Equal(t, u.Void(), u.Void())
	assert.Equal(t, VoidType, u.CodeOf(u.Void()))

	seen := map[Tree]IntKind{u.Void(): -1}

	for k := SignedChar; k < intKinds; k++ {
		tt := u.Primitive(k)
		assert.Equal(t, tt, u.Primitive(k), "kind %v", k)
		assert.Equal(t, IntegerType, u.CodeOf(tt))

		if prev, ok := seen[tt]; ok {
			t.Errorf("kind %v shares handle with %v", k, prev)
		}

		seen[tt] = k
	}
}

func TestStmtList(t *testing.T) {
	u := NewUnit("test")

	list := u.StmtList()
	assert.Empty(t, u.Stmts(list))

	a := u.Build(ReturnExpr, u.Void())
	b := u.Build(ReturnExpr, u.Void())

	u.Append(list, a)
	u.Append(list, b)

	assert.Equal(t, []Tree{a, b}, u.Stmts(list))
}

func TestBuildArity(t *testing.T) {
	u := NewUnit("test")

	ops := make([]Tree, 6)

	assert.Panics(t, func() {
		u.Build(InitExpr, u.Void(), ops...)
	})
}

func TestFnDeclWiring(t *testing.T) {
	u := NewUnit("test")

	ft := u.FunctionType(u.Primitive(Int), []Tree{u.Primitive(Int)})
	fn := u.FnDecl("f", ft)

	assert.True(t, u.External(fn))

	u.SetExternal(fn, false)
	u.SetPreserved(fn, true)

	res := u.ResultDecl(u.Primitive(Int))
	u.SetResult(fn, res)

	parms := u.ParmDecls(fn, []Tree{u.Primitive(Int)})
	require.Len(t, parms, 1)
	assert.Equal(t, parms, u.Parms(fn))

	assert.False(t, u.External(fn))
	assert.True(t, u.Preserved(fn))
	assert.Equal(t, res, u.Result(fn))
}

func TestGimplifyFlattens(t *testing.T) {
	u := NewUnit("test")

	fn := u.FnDecl("f", u.FunctionType(u.Void(), nil))
	block := u.NewBlock(fn)
	u.SetInitial(fn, block)

	lab := u.Build(LabelExpr, u.Void(), u.Label(fn))
	ret := u.Build(ReturnExpr, u.Void(), u.ResultDecl(u.Void()))

	inner := u.StmtList()
	u.Append(inner, ret)

	list := u.StmtList()
	u.Append(list, lab)
	u.Append(list, inner)

	u.SetBody(fn, u.BindExpr(NilTree, list, block))
	u.Gimplify(fn)

	assert.Equal(t, []Tree{lab, ret}, u.Gimple(fn))

	u.Finalize(fn, true)

	require.Equal(t, []Tree{fn}, u.Decls)
	assert.NotEqual(t, NilTree, u.Body(fn))
}

func TestFinalizeRequiresGimplify(t *testing.T) {
	u := NewUnit("test")

	fn := u.FnDecl("f", u.FunctionType(u.Void(), nil))

	assert.Panics(t, func() {
		u.Finalize(fn, true)
	})
}
