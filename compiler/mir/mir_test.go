package mir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstInt64(t *testing.T) {
	for _, tc := range []struct {
		tp  Type
		raw uint64
		v   int64
	}{
		{Int{Bits: 32, Signed: true}, 42, 42},
		{Int{Bits: 8, Signed: true}, 0xff, -1},
		{Int{Bits: 8}, 0xff, 255},
		{Int{Bits: 16, Signed: true}, 0x8000, math.MinInt16},
		{Int{Bits: 16}, 0x1_0000 | 5, 5}, // stray high bits are dropped
		{Int{Bits: 64, Signed: true}, 0xffff_ffff_ffff_ffff, -1},
		{Int{Signed: true}, 7, 7},

		// wrapping policy: u64 above MaxInt64 keeps its bits
		{Int{Bits: 64}, math.MaxUint64, -1},
		{Int{}, 1 << 63, math.MinInt64},
	} {
		c := Const{Type: tc.tp, Raw: tc.raw}

		assert.Equal(t, tc.v, c.Int64(), "%+v raw %#x", tc.tp, tc.raw)
	}
}

func TestTypeSize(t *testing.T) {
	assert.Equal(t, 0, Unit{}.Size())
	assert.Equal(t, 1, Int{Bits: 8}.Size())
	assert.Equal(t, 4, Int{Bits: 32, Signed: true}.Size())
	assert.Equal(t, 8, Int{}.Size())
}

func TestBodySlots(t *testing.T) {
	i32 := Int{Bits: 32, Signed: true}
	u8 := Int{Bits: 8}

	b := &Body{
		ArgCount: 2,
		Locals:   []Local{{Type: Unit{}}, {Type: i32}, {Type: u8}, {Type: i32}},
	}

	assert.Equal(t, Unit{}, b.ReturnType())
	assert.Equal(t, []Type{i32, u8}, b.ArgTypes())
}
