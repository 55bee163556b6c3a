// Package lower translates function bodies from mir into back trees.
//
// One function is lowered to completion before the next one starts; any
// construct outside the supported subset aborts the whole unit. Nothing is
// cached across functions, so lowering the same body twice produces two
// independent declarations.
package lower

import (
	"context"

	"nikand.dev/go/heap"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/gimel-lang/gimel/compiler/back"
	"github.com/gimel-lang/gimel/compiler/mir"
)

type (
	funcLowering struct {
		u *back.Unit
		b *mir.Body

		fn    back.Tree
		scope back.Tree
		res   back.Tree

		parms  []back.Tree
		labels []back.Tree

		list back.Tree
	}
)

var (
	ErrType       = errors.New("unsupported type")
	ErrProjection = errors.New("unsupported projection")
	ErrLocal      = errors.New("unsupported local")
	ErrStatement  = errors.New("unsupported statement")
	ErrTerminator = errors.New("unsupported terminator")
	ErrRvalue     = errors.New("unsupported rvalue")
	ErrConst      = errors.New("unsupported constant")
)

// Unit lowers every function of the package into u, name-ordered, stopping
// at the first failure.
func Unit(ctx context.Context, u *back.Unit, p *mir.Package) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "lower package", "path", p.Path, "funcs", len(p.Funcs))
	defer tr.Finish("err", &err)

	fq := heap.Heap[*mir.Body]{Less: bodyLess}

	for _, f := range p.Funcs {
		fq.Push(f)
	}

	for fq.Len() != 0 {
		f := fq.Pop()

		err = Func(ctx, u, f)
		if err != nil {
			return errors.Wrap(err, "func %v", f.Name)
		}
	}

	return nil
}

// Func lowers one function body into u and hands the finished declaration
// to the backend side of the unit.
func Func(ctx context.Context, u *back.Unit, f *mir.Body) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "lower func", "name", f.Name, "args", f.ArgCount, "blocks", len(f.Blocks))
	defer tr.Finish("err", &err)

	if tr.If("dump_mir") {
		for i, b := range f.Blocks {
			for j, st := range b.Stmts {
				tr.Printw("stmt", "block", i, "stmt", j, "typ", tlog.NextAsType, st, "val", st)
			}

			tr.Printw("term", "block", i, "typ", tlog.NextAsType, b.Term, "val", b.Term)
		}
	}

	fl, err := newFuncLowering(u, f)
	if err != nil {
		return err
	}

	for i := range f.Blocks {
		err = fl.convertBlock(ctx, i, &f.Blocks[i])
		if err != nil {
			return errors.Wrap(err, "block %d", i)
		}
	}

	fl.finish()

	return nil
}

// newFuncLowering resolves types and allocates every declaration the body
// walk references: the function itself, its scope, result and parameters,
// and one label per basic block so forward references are always there.
func newFuncLowering(u *back.Unit, f *mir.Body) (_ *funcLowering, err error) {
	ret, err := ConvertType(u, f.ReturnType())
	if err != nil {
		return nil, errors.Wrap(err, "return type")
	}

	args := make([]back.Tree, f.ArgCount)

	for i, t := range f.ArgTypes() {
		args[i], err = ConvertType(u, t)
		if err != nil {
			return nil, errors.Wrap(err, "arg %d type", i)
		}
	}

	fn := u.FnDecl(f.Name, u.FunctionType(ret, args))
	u.SetExternal(fn, false)
	u.SetPreserved(fn, true)

	scope := u.NewBlock(fn)
	u.SetInitial(fn, scope)

	res := u.ResultDecl(ret)
	u.SetResult(fn, res)

	fl := &funcLowering{
		u: u,
		b: f,

		fn:    fn,
		scope: scope,
		res:   res,

		parms:  u.ParmDecls(fn, args),
		labels: make([]back.Tree, len(f.Blocks)),

		list: u.StmtList(),
	}

	for i := range fl.labels {
		fl.labels[i] = u.Label(fn)
	}

	return fl, nil
}

// finish binds the accumulated statement list to the function and hands it
// over. There are no lowered user locals yet, so the bound scope carries no
// variable chain.
func (fl *funcLowering) finish() {
	u := fl.u

	bind := u.BindExpr(back.NilTree, fl.list, fl.scope)
	u.SetBody(fl.fn, bind)

	u.Gimplify(fl.fn)
	u.Finalize(fl.fn, true)
}

func bodyLess(d []*mir.Body, i, j int) bool {
	return d[i].Name < d[j].Name
}
