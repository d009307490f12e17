package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line     string
		expected Instruction
	}){
		{"", Instruction{}},
		{" \t ", Instruction{}},
		{"HALT", Instruction{Op: OP_HALT, Mnemonic: "HALT"}},
		{"halt", Instruction{Op: OP_HALT, Mnemonic: "HALT"}},
		{"  Clr  ", Instruction{Op: OP_CLR, Mnemonic: "CLR"}},
		{"CONST 5", Instruction{Op: OP_CONST, Mnemonic: "CONST", Operand: 5, HasOperand: true}},
		{"CONST -17", Instruction{Op: OP_CONST, Mnemonic: "CONST", Operand: -17, HasOperand: true}},
		{"CONST +3", Instruction{Op: OP_CONST, Mnemonic: "CONST", Operand: 3, HasOperand: true}},
		{"CONST abc", Instruction{Op: OP_CONST, Mnemonic: "CONST"}},
		{"CONST 0x10", Instruction{Op: OP_CONST, Mnemonic: "CONST"}},
		{"CONST 99999999999999999999", Instruction{Op: OP_CONST, Mnemonic: "CONST"}},
		{"CONST 5_000", Instruction{Op: OP_CONST, Mnemonic: "CONST", Operand: 5000, HasOperand: true}},
		{"CONST -1_2_3", Instruction{Op: OP_CONST, Mnemonic: "CONST", Operand: -123, HasOperand: true}},
		{"CONST 5__0", Instruction{Op: OP_CONST, Mnemonic: "CONST"}},
		{"CONST _5", Instruction{Op: OP_CONST, Mnemonic: "CONST"}},
		{"CONST 5_", Instruction{Op: OP_CONST, Mnemonic: "CONST"}},
		{"CONST -_5", Instruction{Op: OP_CONST, Mnemonic: "CONST"}},
		{"CONST _", Instruction{Op: OP_CONST, Mnemonic: "CONST"}},
		{"load\t7", Instruction{Op: OP_LOAD, Mnemonic: "LOAD", Operand: 7, HasOperand: true}},
		{"STORE 1 2 3", Instruction{Op: OP_STORE, Mnemonic: "STORE", Operand: 1, HasOperand: true}},
		{"jzero 012", Instruction{Op: OP_JZERO, Mnemonic: "JZERO", Operand: 12, HasOperand: true}},
		{"FOO 1", Instruction{Op: OP_UNKNOWN, Mnemonic: "FOO", Operand: 1, HasOperand: true}},
		{"%run", Instruction{Op: OP_UNKNOWN, Mnemonic: "%RUN"}},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, Decode(entry.line), entry.line)
	}
}

func TestDecodeAllOps(t *testing.T) {
	assert := assert.New(t)

	for name, op := range opMap {
		inst := Decode(name + " 1")
		assert.Equal(op, inst.Op, name)
		assert.Equal(name, op.String())
	}
}

func TestOpClasses(t *testing.T) {
	assert := assert.New(t)

	for op := OP_NOP; op <= OP_UNKNOWN; op++ {
		switch op {
		case OP_LOAD, OP_STORE, OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD:
			assert.True(op.Address(), op.String())
			assert.False(op.Jump(), op.String())
		case OP_JMP, OP_JNEG, OP_JZERO:
			assert.False(op.Address(), op.String())
			assert.True(op.Jump(), op.String())
		default:
			assert.False(op.Address(), op.String())
			assert.False(op.Jump(), op.String())
		}
	}

	assert.Equal("Op(99)", Op(99).String())
	assert.Equal("Op(-1)", Op(-1).String())
}

func TestOpNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("NOP", OP_NOP.String())
	assert.Equal("JZERO", OP_JZERO.String())
	assert.Equal("HALT", OP_HALT.String())
	assert.Equal("?", OP_UNKNOWN.String())
}

func TestStateNames(t *testing.T) {
	assert := assert.New(t)

	table := map[State]string{
		STATE_IDLE:      "idle",
		STATE_RUNNING:   "running",
		STATE_HALTED:    "halted",
		STATE_FAULTED:   "faulted",
		STATE_EXHAUSTED: "exhausted",
		STATE_LIMITED:   "limited",
		State(9):        "State(9)",
	}

	for st, name := range table {
		assert.Equal(name, st.String())
	}
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", Decode("").String())
	assert.Equal("HALT", Decode("halt 1x").String())
	assert.Equal("CONST -4", Decode(" const   -4 ").String())
	assert.Equal("FOO 2", Decode("foo 2").String())
}

func FuzzDecode(f *testing.F) {
	for _, seed := range []string{"", "CONST 5", "jmp -1", "FOO", "DIV 0 0", "\t\n"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, line string) {
		inst := Decode(line)
		if inst.Op == OP_NOP {
			assert.Empty(t, inst.Mnemonic)
			assert.False(t, inst.HasOperand)
			return
		}
		assert.NotEmpty(t, inst.Mnemonic)
		if inst.Op != OP_UNKNOWN {
			assert.Equal(t, inst.Op, Decode(inst.String()).Op)
		}
	})
}

func FuzzRun(f *testing.F) {
	f.Add("CONST 5\nSTORE 0\nLOAD 0\nADD 0")
	f.Add("CONST -1\nJNEG 4\nCONST 99\nHALT\nCONST 1\nHALT")
	f.Add("CONST 7\nDIV 1")
	f.Add("JMP 0")

	f.Fuzz(func(t *testing.T, text string) {
		e := NewEngine()
		e.MaxSteps = 1000
		for line := range strings.SplitSeq(text, "\n") {
			e.Append(line)
		}

		result := e.Run()

		assert.True(t, result.State.Terminal())
		assert.False(t, e.Running)
		assert.LessOrEqual(t, result.Steps, 1000)
		if result.State == STATE_FAULTED {
			assert.True(t, IsFault(result.Err))
		}
		for addr := range e.Memory {
			assert.GreaterOrEqual(t, addr, int64(0))
		}
	})
}
