package mir

type (
	// Package is one compilation unit worth of function bodies.
	Package struct {
		Path string

		Funcs []*Body
	}

	// Body is a function body in control-flow-graph form.
	//
	// Local slot 0 is the return value slot, slots 1..ArgCount are the
	// parameters in order, the rest are temporaries.
	Body struct {
		Name string

		ArgCount int
		Locals   []Local
		Blocks   []Block
	}

	Local struct {
		Type Type
	}

	// Block is a basic block: statements followed by exactly one terminator.
	Block struct {
		Stmts []Stmt
		Term  Terminator
	}

	Type interface {
		Size() int
	}

	// Unit is the empty tuple type.
	Unit struct{}

	// Int is a scalar integer type. Bits 0 means pointer width.
	Int struct {
		Bits   int16
		Signed bool
	}

	// Place references a storage slot, optionally projected into.
	Place struct {
		Local int
		Proj  []Proj
	}

	Proj interface{ proj() }

	Field struct{ Index int }
	Index struct{ Local int }
	Deref struct{}

	Operand interface{ operand() }

	Copy struct{ P Place }
	Move struct{ P Place }

	// Const is a literal: a type plus the raw scalar bit encoding.
	Const struct {
		Type Type
		Raw  uint64
	}

	Rvalue interface{ rvalue() }

	// Use reads a single operand.
	Use struct{ X Operand }

	// Ref takes a reference to a place.
	Ref struct{ P Place }

	Stmt interface{ stmt() }

	Assign struct {
		P Place
		R Rvalue
	}

	StorageLive struct{ Local int }
	StorageDead struct{ Local int }

	Nop struct{}

	SetDiscriminant struct {
		P       Place
		Variant int
	}

	Terminator interface{ term() }

	// Return transfers control out of the function, yielding slot 0.
	Return struct{}

	// Goto falls through to another block.
	Goto struct{ Block int }
)

func (x Unit) Size() int { return 0 }

func (x Int) Size() int {
	if x.Bits == 0 {
		return 8
	}

	return int(x.Bits) / 8
}

func (b *Body) ReturnType() Type {
	return b.Locals[0].Type
}

func (b *Body) ArgTypes() []Type {
	args := make([]Type, b.ArgCount)

	for i := range args {
		args[i] = b.Locals[1+i].Type
	}

	return args
}

// Int64 converts the raw scalar bits to a signed 64-bit value.
//
// Conversion is wrapping: bits are sign-extended from the type width for
// signed types and zero-extended for unsigned ones, then reinterpreted as
// int64. An unsigned 64-bit value above MaxInt64 keeps its bit pattern.
func (c Const) Int64() int64 {
	t, ok := c.Type.(Int)
	if !ok {
		panic(c.Type)
	}

	bits := t.Bits
	if bits == 0 {
		bits = 64
	}

	v := c.Raw

	if bits < 64 {
		v &= 1<<bits - 1

		if t.Signed && v&(1<<(bits-1)) != 0 {
			v |= ^uint64(0) << bits
		}
	}

	return int64(v)
}

func (Field) proj() {}
func (Index) proj() {}
func (Deref) proj() {}

func (Copy) operand()  {}
func (Move) operand()  {}
func (Const) operand() {}

func (Use) rvalue() {}
func (Ref) rvalue() {}

func (Assign) stmt()          {}
func (StorageLive) stmt()     {}
func (StorageDead) stmt()     {}
func (Nop) stmt()             {}
func (SetDiscriminant) stmt() {}

func (Return) term() {}
func (Goto) term()   {}
