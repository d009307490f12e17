// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package engine

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// EVAL_STEP_LIMIT bounds the work of a single expression.
const EVAL_STEP_LIMIT = 1 << 20

// predeclared returns the engine state as Starlark values.
//
//	AC    accumulator
//	PC    program counter
//	LINES number of program lines
//	MEM   dict of set memory cells
//	mem   mem(addr) reads a cell, 0 if unset
func (e *Engine) predeclared() (pred starlark.StringDict) {
	mem := starlark.NewDict(len(e.Memory))
	for addr, value := range e.Cells() {
		_ = mem.SetKey(starlark.MakeInt64(addr), starlark.MakeInt64(value))
	}
	mem.Freeze()

	peek := starlark.NewBuiltin("mem", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var addr starlark.Int
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr); err != nil {
			return nil, err
		}
		a, ok := addr.Int64()
		if !ok {
			return starlark.MakeInt(0), nil
		}
		return starlark.MakeInt64(e.Peek(a)), nil
	})

	pred = starlark.StringDict{
		"AC":    starlark.MakeInt64(e.Ac),
		"PC":    starlark.MakeInt(e.Pc),
		"LINES": starlark.MakeInt(len(e.program)),
		"MEM":   mem,
		"mem":   peek,
	}

	return
}

// Eval evaluates a Starlark expression against the current engine state.
// The engine is not modified.
func (e *Engine) Eval(expr string) (value starlark.Value, err error) {
	thread := starlark.Thread{Name: "eval"}
	thread.SetMaxExecutionSteps(EVAL_STEP_LIMIT)
	opts := syntax.FileOptions{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, e.predeclared())
	if err != nil {
		return
	}

	value, ok := dict["rc"]
	if !ok {
		err = ErrExpression(expr)
		return
	}

	return
}

// EvalInt evaluates a Starlark expression that must produce a 64-bit integer.
func (e *Engine) EvalInt(expr string) (value int64, err error) {
	st_rc, err := e.Eval(expr)
	if err != nil {
		return
	}

	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrExpression(expr)
		return
	}

	return
}
