// Package parse reads the textual form of mir used by the cli.
//
//	func identity(i32) i32 {
//		bb0: {
//			_0 = copy _1
//			return
//		}
//	}
//
// Temporaries are declared with `let _2 i64` lines before the first block.
package parse

import (
	"context"
	"os"
	"strconv"

	"tlog.app/go/errors"

	"github.com/gimel-lang/gimel/compiler/mir"
)

type (
	state struct {
		b []byte
	}

	token interface{}

	ident   []byte
	number  []byte
	punct   []byte
	comment []byte
)

func ParseFile(ctx context.Context, name string) (*mir.Package, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	p, err := Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	p.Path = name

	return p, nil
}

func Parse(ctx context.Context, text []byte) (*mir.Package, error) {
	s := &state{b: text}
	p := &mir.Package{}

	for i := 0; i < len(s.b); {
		t, e, err := s.token(i)
		if err != nil {
			return nil, errors.Wrap(err, "at pos %d", i)
		}

		switch t := t.(type) {
		case nil:
			i = e
		case comment:
			i = e
		case ident:
			if string(t) != "func" {
				return nil, errors.New("unexpected ident at pos %d: %s", i, t)
			}

			f, e, err := s.parseFunc(ctx, e)
			if err != nil {
				return nil, errors.Wrap(err, "at pos %d", i)
			}

			p.Funcs = append(p.Funcs, f)
			i = e
		default:
			return nil, errors.New("unexpected token at pos %d: %s (%[2]T)", i, t)
		}
	}

	return p, nil
}

func (s *state) parseFunc(ctx context.Context, st int) (f *mir.Body, i int, err error) {
	t, i, err := s.token(st)
	if err != nil {
		return nil, i, err
	}

	name, ok := t.(ident)
	if !ok {
		return nil, st, errors.New("func name expected, got %s (%[1]T)", t)
	}

	f = &mir.Body{
		Name: string(name),
	}

	i, err = s.expect(i, "(")
	if err != nil {
		return
	}

	var args []mir.Type

	for {
		t, _, err = s.token(i)
		if err != nil {
			return
		}

		if p, ok := t.(punct); ok && string(p) == ")" {
			break
		}

		if len(args) != 0 {
			i, err = s.expect(i, ",")
			if err != nil {
				return
			}
		}

		var tp mir.Type

		tp, i, err = s.parseType(i)
		if err != nil {
			return
		}

		args = append(args, tp)
	}

	i, err = s.expect(i, ")")
	if err != nil {
		return
	}

	ret, i, err := s.parseType(i)
	if err != nil {
		return
	}

	f.ArgCount = len(args)
	f.Locals = append(f.Locals, mir.Local{Type: ret})

	for _, tp := range args {
		f.Locals = append(f.Locals, mir.Local{Type: tp})
	}

	i, err = s.expect(i, "{")
	if err != nil {
		return
	}

	i, err = s.parseBody(ctx, i, f)
	if err != nil {
		return
	}

	i, err = s.expect(i, "}")

	return
}

func (s *state) parseBody(ctx context.Context, st int, f *mir.Body) (i int, err error) {
	i = st

	for {
		t, e, err := s.token(i)
		if err != nil {
			return i, err
		}

		if _, ok := t.(comment); ok {
			i = e
			continue
		}

		id, ok := t.(ident)

		switch {
		case ok && string(id) == "let":
			i, err = s.parseLet(e, f)
		case ok:
			i, err = s.parseBlock(ctx, e, f, string(id))
		default:
			return i, nil // closing brace
		}

		if err != nil {
			return i, err
		}
	}
}

// parseLet declares the next temporary slot: let _N TYPE.
func (s *state) parseLet(st int, f *mir.Body) (i int, err error) {
	n, i, err := s.parseLocal(st)
	if err != nil {
		return
	}

	if n != len(f.Locals) {
		return i, errors.New("let _%d out of order, _%d expected", n, len(f.Locals))
	}

	tp, i, err := s.parseType(i)
	if err != nil {
		return
	}

	f.Locals = append(f.Locals, mir.Local{Type: tp})

	return
}

func (s *state) parseBlock(ctx context.Context, st int, f *mir.Body, label string) (i int, err error) {
	n, err := blockIndex(label)
	if err != nil {
		return st, err
	}

	if n != len(f.Blocks) {
		return st, errors.New("block bb%d out of order, bb%d expected", n, len(f.Blocks))
	}

	i, err = s.expect(st, ":")
	if err != nil {
		return
	}

	i, err = s.expect(i, "{")
	if err != nil {
		return
	}

	b := mir.Block{}

	for b.Term == nil {
		t, e, err := s.token(i)
		if err != nil {
			return i, err
		}

		if _, ok := t.(comment); ok {
			i = e
			continue
		}

		id, ok := t.(ident)
		if !ok {
			return i, errors.New("statement expected, got %s (%[1]T)", t)
		}

		switch w := string(id); w {
		case "return":
			b.Term = mir.Return{}
			i = e
		case "goto":
			var to string

			to, i, err = s.parseIdent(e)
			if err != nil {
				return i, err
			}

			n, err := blockIndex(to)
			if err != nil {
				return i, err
			}

			b.Term = mir.Goto{Block: n}
		case "live", "dead":
			var n int

			n, i, err = s.parseLocal(e)
			if err != nil {
				return i, err
			}

			if w == "live" {
				b.Stmts = append(b.Stmts, mir.StorageLive{Local: n})
			} else {
				b.Stmts = append(b.Stmts, mir.StorageDead{Local: n})
			}
		case "nop":
			b.Stmts = append(b.Stmts, mir.Nop{})
			i = e
		default:
			var st mir.Stmt

			st, i, err = s.parseAssign(e, id)
			if err != nil {
				return i, err
			}

			b.Stmts = append(b.Stmts, st)
		}
	}

	i, err = s.expect(i, "}")
	if err != nil {
		return
	}

	f.Blocks = append(f.Blocks, b)

	return
}

// parseAssign parses _N = copy _M | move _M | const VAL TYPE.
func (s *state) parseAssign(st int, dst ident) (x mir.Stmt, i int, err error) {
	n, err := localIndex(string(dst))
	if err != nil {
		return nil, st, err
	}

	i, err = s.expect(st, "=")
	if err != nil {
		return
	}

	op, i, err := s.parseIdent(i)
	if err != nil {
		return
	}

	a := mir.Assign{
		P: mir.Place{Local: n},
	}

	switch op {
	case "copy", "move":
		var m int

		m, i, err = s.parseLocal(i)
		if err != nil {
			return
		}

		if op == "copy" {
			a.R = mir.Use{X: mir.Copy{P: mir.Place{Local: m}}}
		} else {
			a.R = mir.Use{X: mir.Move{P: mir.Place{Local: m}}}
		}
	case "const":
		var c mir.Const

		c, i, err = s.parseConst(i)
		if err != nil {
			return
		}

		a.R = mir.Use{X: c}
	default:
		return nil, i, errors.New("rvalue expected, got %v", op)
	}

	return a, i, nil
}

func (s *state) parseConst(st int) (c mir.Const, i int, err error) {
	t, i, err := s.token(st)
	if err != nil {
		return
	}

	neg := false

	if p, ok := t.(punct); ok && string(p) == "-" {
		neg = true

		t, i, err = s.token(i)
		if err != nil {
			return
		}
	}

	num, ok := t.(number)
	if !ok {
		return c, i, errors.New("const value expected, got %s (%[1]T)", t)
	}

	v, err := strconv.ParseUint(string(num), 10, 64)
	if err != nil {
		return c, i, errors.Wrap(err, "const value")
	}

	if neg {
		v = -v
	}

	c.Raw = v

	c.Type, i, err = s.parseType(i)

	return
}

func (s *state) parseType(st int) (tp mir.Type, i int, err error) {
	t, i, err := s.token(st)
	if err != nil {
		return
	}

	if p, ok := t.(punct); ok && string(p) == "(" {
		i, err = s.expect(i, ")")
		if err != nil {
			return
		}

		return mir.Unit{}, i, nil
	}

	id, ok := t.(ident)
	if !ok {
		return nil, i, errors.New("type expected, got %s (%[1]T)", t)
	}

	switch string(id) {
	case "i8":
		tp = mir.Int{Bits: 8, Signed: true}
	case "i16":
		tp = mir.Int{Bits: 16, Signed: true}
	case "i32":
		tp = mir.Int{Bits: 32, Signed: true}
	case "i64":
		tp = mir.Int{Bits: 64, Signed: true}
	case "isize":
		tp = mir.Int{Signed: true}
	case "u8":
		tp = mir.Int{Bits: 8}
	case "u16":
		tp = mir.Int{Bits: 16}
	case "u32":
		tp = mir.Int{Bits: 32}
	case "u64":
		tp = mir.Int{Bits: 64}
	case "usize":
		tp = mir.Int{}
	default:
		return nil, i, errors.New("unknown type: %s", id)
	}

	return
}

func (s *state) parseIdent(st int) (w string, i int, err error) {
	t, i, err := s.token(st)
	if err != nil {
		return
	}

	id, ok := t.(ident)
	if !ok {
		return "", i, errors.New("ident expected, got %s (%[1]T)", t)
	}

	return string(id), i, nil
}

func (s *state) parseLocal(st int) (n int, i int, err error) {
	w, i, err := s.parseIdent(st)
	if err != nil {
		return
	}

	n, err = localIndex(w)

	return
}

func (s *state) expect(st int, p string) (i int, err error) {
	t, i, err := s.token(st)
	if err != nil {
		return
	}

	if q, ok := t.(punct); !ok || string(q) != p {
		return st, errors.New("%v expected, got %s (%[2]T)", p, t)
	}

	return i, nil
}

func localIndex(w string) (int, error) {
	if len(w) < 2 || w[0] != '_' {
		return 0, errors.New("local expected, got %v", w)
	}

	n, err := strconv.Atoi(w[1:])
	if err != nil {
		return 0, errors.Wrap(err, "local %v", w)
	}

	return n, nil
}

func blockIndex(w string) (int, error) {
	if len(w) < 3 || w[:2] != "bb" {
		return 0, errors.New("block label expected, got %v", w)
	}

	n, err := strconv.Atoi(w[2:])
	if err != nil {
		return 0, errors.Wrap(err, "block %v", w)
	}

	return n, nil
}
