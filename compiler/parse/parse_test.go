package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gimel-lang/gimel/compiler/mir"
)

func TestParseIdentity(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`
// the simplest function
func identity(i32) i32 {
	bb0: {
		_0 = copy _1
		return
	}
}
`))
	require.NoError(t, err)
	require.Len(t, p.Funcs, 1)

	i32 := mir.Int{Bits: 32, Signed: true}

	assert.Equal(t, &mir.Body{
		Name:     "identity",
		ArgCount: 1,
		Locals:   []mir.Local{{Type: i32}, {Type: i32}},
		Blocks: []mir.Block{{
			Stmts: []mir.Stmt{
				mir.Assign{P: mir.Place{Local: 0}, R: mir.Use{X: mir.Copy{P: mir.Place{Local: 1}}}},
			},
			Term: mir.Return{},
		}},
	}, p.Funcs[0])
}

func TestParseFull(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`
func f(u8, isize) () {
	let _3 i64

	bb0: {
		live _3
		_3 = const -1 i64
		nop
		goto bb1
	}

	bb1: {
		_0 = move _2
		dead _3
		return
	}
}

func answer() u64 {
	bb0: {
		_0 = const 42 u64
		return
	}
}
`))
	require.NoError(t, err)
	require.Len(t, p.Funcs, 2)

	f := p.Funcs[0]

	assert.Equal(t, "f", f.Name)
	assert.Equal(t, 2, f.ArgCount)
	assert.Equal(t, []mir.Local{
		{Type: mir.Unit{}},
		{Type: mir.Int{Bits: 8}},
		{Type: mir.Int{Signed: true}},
		{Type: mir.Int{Bits: 64, Signed: true}},
	}, f.Locals)

	require.Len(t, f.Blocks, 2)
	assert.Equal(t, []mir.Stmt{
		mir.StorageLive{Local: 3},
		mir.Assign{P: mir.Place{Local: 3}, R: mir.Use{X: mir.Const{Type: mir.Int{Bits: 64, Signed: true}, Raw: ^uint64(0)}}},
		mir.Nop{},
	}, f.Blocks[0].Stmts)
	assert.Equal(t, mir.Goto{Block: 1}, f.Blocks[0].Term)

	assert.Equal(t, []mir.Stmt{
		mir.Assign{P: mir.Place{Local: 0}, R: mir.Use{X: mir.Move{P: mir.Place{Local: 2}}}},
		mir.StorageDead{Local: 3},
	}, f.Blocks[1].Stmts)
	assert.Equal(t, mir.Return{}, f.Blocks[1].Term)

	a := p.Funcs[1]
	assert.Equal(t, "answer", a.Name)
	assert.Equal(t, 0, a.ArgCount)
	assert.Equal(t, mir.Use{X: mir.Const{Type: mir.Int{Bits: 64}, Raw: 42}}, a.Blocks[0].Stmts[0].(mir.Assign).R)
}

func TestParseErrors(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		text string
	}{
		{"bad token", `func f() () { bb0: { return } } @`},
		{"bad type", `func f(f32) () { bb0: { return } }`},
		{"block order", `func f() () { bb1: { return } }`},
		{"let order", `func f() () { let _2 i32 bb0: { return } }`},
		{"bad rvalue", `func f() () { bb0: { _0 = ref _1 return } }`},
		{"no term", `func f() () { bb0: { _0 = copy _1 } }`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(ctx, []byte(tc.text))
			assert.Error(t, err)
		})
	}
}
