package lower

import (
	"context"

	"tlog.app/go/errors"

	"github.com/gimel-lang/gimel/compiler/back"
	"github.com/gimel-lang/gimel/compiler/mir"
)

// ConvertType maps a mir scalar type to the backend primitive.
//
// Pointer-width integers map to long / unsigned long, which assumes the
// target's long is pointer wide.
func ConvertType(u *back.Unit, t mir.Type) (back.Tree, error) {
	switch t := t.(type) {
	case mir.Unit:
		return u.Void(), nil
	case mir.Int:
		var k back.IntKind

		switch t.Bits {
		case 0:
			k = back.Long
		case 8:
			k = back.SignedChar
		case 16:
			k = back.Short
		case 32:
			k = back.Int
		case 64:
			k = back.LongLong
		default:
			return back.NilTree, errors.Wrap(ErrType, "%+v", t)
		}

		if !t.Signed {
			k += back.UnsignedChar - back.SignedChar
		}

		return u.Primitive(k), nil
	}

	return back.NilTree, errors.Wrap(ErrType, "%T", t)
}

// place resolves a storage reference to its declaration.
func (fl *funcLowering) place(p mir.Place) (back.Tree, error) {
	if len(p.Proj) != 0 {
		return back.NilTree, errors.Wrap(ErrProjection, "place _%d.%T", p.Local, p.Proj[0])
	}

	switch n := p.Local; {
	case n == 0:
		return fl.res, nil
	case n <= len(fl.parms):
		return fl.parms[n-1], nil
	default:
		// user locals are not allocated yet
		return back.NilTree, errors.Wrap(ErrLocal, "_%d", n)
	}
}

func (fl *funcLowering) rvalue(rv mir.Rvalue) (back.Tree, error) {
	switch rv := rv.(type) {
	case mir.Use:
		return fl.operand(rv.X)
	}

	return back.NilTree, errors.Wrap(ErrRvalue, "%T", rv)
}

// operand lowers one operand read. Copy and move collapse to the same
// declaration read: ownership transfer has no tree representation here.
func (fl *funcLowering) operand(x mir.Operand) (back.Tree, error) {
	switch x := x.(type) {
	case mir.Copy:
		return fl.place(x.P)
	case mir.Move:
		return fl.place(x.P)
	case mir.Const:
		if _, ok := x.Type.(mir.Int); !ok {
			return back.NilTree, errors.Wrap(ErrConst, "%T", x.Type)
		}

		tt, err := ConvertType(fl.u, x.Type)
		if err != nil {
			return back.NilTree, err
		}

		return fl.u.IntConstant(tt, x.Int64()), nil
	default:
		panic(x)
	}
}

// convertBlock appends the block label, then every statement, then the
// terminator to the flat statement list.
func (fl *funcLowering) convertBlock(ctx context.Context, i int, b *mir.Block) error {
	u := fl.u

	u.Append(fl.list, u.Build(back.LabelExpr, u.Void(), fl.labels[i]))

	for j, st := range b.Stmts {
		switch st := st.(type) {
		case mir.StorageLive, mir.StorageDead, mir.Nop:
			// no tree representation
		case mir.Assign:
			dst, err := fl.place(st.P)
			if err != nil {
				return errors.Wrap(err, "stmt %d: dst", j)
			}

			val, err := fl.rvalue(st.R)
			if err != nil {
				return errors.Wrap(err, "stmt %d: value", j)
			}

			u.Append(fl.list, u.Build(back.InitExpr, u.Void(), dst, val))
		default:
			return errors.Wrap(ErrStatement, "stmt %d: %T", j, st)
		}
	}

	switch b.Term.(type) {
	case mir.Return:
		u.Append(fl.list, u.Build(back.ReturnExpr, u.Void(), fl.res))
	default:
		return errors.Wrap(ErrTerminator, "%T", b.Term)
	}

	return nil
}
