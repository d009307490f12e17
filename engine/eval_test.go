package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"
)

func TestEval(t *testing.T) {
	assert := assert.New(t)

	e, _ := doRun(t, []string{"CONST 6", "STORE 2", "CONST 7", "MUL 2", "STORE 3"})

	table := [](struct {
		expr     string
		expected string
	}){
		{"AC", "42"},
		{"AC // 5", "8"},
		{"-AC // 5", "-9"},
		{"mem(2) + mem(3)", "48"},
		{"mem(100)", "0"},
		{"MEM[3]", "42"},
		{"len(MEM)", "2"},
		{"sorted(MEM.keys())", "[2, 3]"},
		{"LINES", "5"},
		{"PC", "5"},
		{"AC == 42", "True"},
		{"3 * (1 << 40)", "3298534883328"},
	}

	for _, entry := range table {
		value, err := e.Eval(entry.expr)
		if assert.NoError(err, entry.expr) {
			assert.Equal(entry.expected, value.String(), entry.expr)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()

	_, err := e.Eval("nope + 1")
	assert.Error(err)

	_, err = e.Eval("MEM[0]")
	assert.Error(err)

	_, err = e.Eval("1 +")
	assert.Error(err)

	_, err = e.Eval("[x for x in range(10000000)]")
	assert.Error(err)
}

func TestEvalInt(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	e.Ac = -3

	value, err := e.EvalInt("AC * 4 + 1")
	assert.NoError(err)
	assert.Equal(int64(-11), value)

	_, err = e.EvalInt("'text'")
	assert.ErrorIs(err, ErrExpression("'text'"))

	_, err = e.EvalInt("1 << 70")
	assert.ErrorIs(err, ErrExpression("1 << 70"))
}

func TestEvalFrozen(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	assert.NoError(e.Poke(1, 1))

	_, err := e.Eval("MEM.update({1: 5})")
	assert.Error(err)
	assert.Equal(int64(1), e.Peek(1))

	value, err := e.Eval("mem")
	assert.NoError(err)
	_, ok := value.(*starlark.Builtin)
	assert.True(ok)
}
