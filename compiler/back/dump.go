package back

import (
	"github.com/nikandfor/hacked/hfmt"
)

type dumper struct {
	u *Unit

	lab map[Tree]int
}

// Dump renders a finalized function declaration to a readable text form,
// appending to b.
func (u *Unit) Dump(b []byte, fn Tree) []byte {
	d := &dumper{u: u, lab: map[Tree]int{}}

	n := u.fnode(fn)

	b = hfmt.Appendf(b, "function %s (", n.name)

	for i, p := range n.parms {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = d.typ(b, u.nodes[p].typ)
	}

	b = append(b, ") "...)
	b = d.typ(b, u.nodes[u.nodes[fn].typ].ops[0])
	b = append(b, "\n{\n"...)

	for _, s := range n.gimple {
		b = d.stmt(b, s)
	}

	b = append(b, "}\n"...)

	return b
}

func (d *dumper) stmt(b []byte, t Tree) []byte {
	n := &d.u.nodes[t]

	switch n.code {
	case LabelExpr:
		b = d.expr(b, n.ops[0])
		b = append(b, ":\n"...)
	case InitExpr:
		b = append(b, '\t')
		b = d.expr(b, n.ops[0])
		b = append(b, " = "...)
		b = d.expr(b, n.ops[1])
		b = append(b, '\n')
	case ReturnExpr:
		b = append(b, "\treturn "...)
		b = d.expr(b, n.ops[0])
		b = append(b, '\n')
	default:
		panic(n.code)
	}

	return b
}

func (d *dumper) expr(b []byte, t Tree) []byte {
	u := d.u
	n := &u.nodes[t]

	switch n.code {
	case ResultDecl:
		b = append(b, "<retval>"...)
	case ParmDecl:
		b = hfmt.Appendf(b, "_p%d", d.parmIndex(t)+1)
	case VarDecl, FunctionDecl:
		b = append(b, n.name...)
	case LabelDecl:
		l, ok := d.lab[t]
		if !ok {
			l = len(d.lab)
			d.lab[t] = l
		}

		b = hfmt.Appendf(b, "<L%d>", l)
	case IntegerCst:
		b = hfmt.Appendf(b, "%d", n.val)
	default:
		panic(n.code)
	}

	return b
}

func (d *dumper) parmIndex(t Tree) int {
	fn := d.u.nodes[t].fn

	for i, p := range d.u.fnode(fn).parms {
		if p == t {
			return i
		}
	}

	panic(t)
}

func (d *dumper) typ(b []byte, t Tree) []byte {
	n := &d.u.nodes[t]

	switch n.code {
	case VoidType:
		return append(b, "void"...)
	case IntegerType:
		if !n.signed {
			b = append(b, 'u')
		}

		return hfmt.Appendf(b, "int%d", n.bits)
	default:
		panic(n.code)
	}
}
