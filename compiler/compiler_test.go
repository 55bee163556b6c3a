package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSmoke(t *testing.T) {
	ctx := context.Background()

	obj, err := Compile(ctx, "test.mir", []byte(`
func identity(i32) i32 {
	bb0: {
		_0 = copy _1
		return
	}
}
`))
	require.NoError(t, err)

	assert.Equal(t, `function identity (int32) int32
{
<L0>:
	<retval> = _p1
	return <retval>
}

`, string(obj))

	t.Logf("result:\n%s", obj)
}

func TestCompileConstant(t *testing.T) {
	ctx := context.Background()

	obj, err := Compile(ctx, "test.mir", []byte(`
func answer() u64 {
	bb0: {
		_0 = const 42 u64
		return
	}
}
`))
	require.NoError(t, err)

	assert.Equal(t, `function answer () uint64
{
<L0>:
	<retval> = 42
	return <retval>
}

`, string(obj))
}

func TestCompileAborts(t *testing.T) {
	ctx := context.Background()

	_, err := Compile(ctx, "test.mir", []byte(`
func loops() () {
	bb0: {
		goto bb1
	}

	bb1: {
		return
	}
}
`))
	assert.Error(t, err)
}
