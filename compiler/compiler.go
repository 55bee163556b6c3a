package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/gimel-lang/gimel/compiler/back"
	"github.com/gimel-lang/gimel/compiler/lower"
	"github.com/gimel-lang/gimel/compiler/parse"
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

// Compile parses the textual mir, lowers it into a fresh backend unit and
// renders the finalized declarations.
func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	p, err := parse.Parse(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	p.Path = name

	u := back.NewUnit(name)

	err = lower.Unit(ctx, u, p)
	if err != nil {
		return nil, errors.Wrap(err, "lower")
	}

	for _, d := range u.Decls {
		obj = u.Dump(obj, d)
		obj = append(obj, '\n')
	}

	return obj, nil
}
