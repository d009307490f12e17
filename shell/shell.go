// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package shell implements the interactive command shell for the
// accumulator machine.
//
// Input lines starting with '%' are shell commands. Any other line, including
// an empty one, is appended to the program.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"github.com/ezrec/acvm/engine"
	"github.com/ezrec/acvm/listing"
	"github.com/ezrec/acvm/translate"
)

const (
	PROMPT       = ">>> "
	CLEAR_SCREEN = "\033[H\033[2J"
)

const helpText = `Commands:
  %open [file] - Replace the program with the instructions in a file
  %save [file] - Write the program to a file
  %list - List the current program
  %run - Run the program
  %eval [expr] - Evaluate an expression over AC, PC, LINES, MEM and mem(addr)
  %set [addr] [expr] - Store the value of an expression in memory
  %reset - Reset the virtual machine
  %clear - Clear the screen
  %exit - Exit the REPL
`

// LineReader reads one line of input after showing a prompt.
// It returns io.EOF at end of input and ErrInterrupt if the line was aborted.
type LineReader interface {
	Prompt(prompt string) (line string, err error)
}

// Scanner is a LineReader over a plain reader. Prompts are not shown.
type Scanner struct {
	*bufio.Scanner
}

var _ LineReader = (*Scanner)(nil)

// NewScanner creates a LineReader that reads lines from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{Scanner: bufio.NewScanner(r)}
}

// Prompt returns the next line of input.
func (sc *Scanner) Prompt(prompt string) (line string, err error) {
	if sc.Scan() {
		line = sc.Text()
		return
	}

	err = sc.Err()
	if err == nil {
		err = io.EOF
	}
	return
}

// Shell is the command interpreter. It owns a single engine.
type Shell struct {
	Verbose bool // If set, enables verbose engine logging.

	Engine *engine.Engine // Machine the commands act on.
	Output io.Writer      // Destination for all shell output.
	FS     listing.FS     // File system for %open and %save.
}

// NewShell creates a shell with a fresh engine, writing to out and using
// the operating system file system.
func NewShell(out io.Writer) (sh *Shell) {
	sh = &Shell{
		Engine: engine.NewEngine(),
		Output: out,
		FS:     &listing.OsFS{},
	}

	return
}

func (sh *Shell) printf(format string, args ...any) {
	translate.Fprintf(sh.Output, format, args...)
}

// Banner prints the greeting.
func (sh *Shell) Banner() {
	sh.printf("Simple Virtual Machine REPL. Type '%%help' for commands.\n")
}

// Serve prints the banner, then executes lines from in until %exit or end
// of input.
func (sh *Shell) Serve(in LineReader) (err error) {
	sh.Banner()

	for {
		var line string
		line, err = in.Prompt(PROMPT)
		switch {
		case errors.Is(err, io.EOF):
			err = nil
			return
		case errors.Is(err, ErrInterrupt):
			continue
		case err != nil:
			return
		}

		if sh.Exec(line) {
			return
		}
	}
}

// Exec executes a single line of input. Returns true on %exit.
func (sh *Shell) Exec(input string) (exit bool) {
	command := strings.TrimSpace(input)

	if sh.Verbose {
		log.Printf("shell: %q", command)
	}

	name, arg, _ := strings.Cut(command, " ")
	arg = strings.TrimSpace(arg)

	switch {
	case command == "%exit":
		exit = true
	case command == "%help":
		sh.printf("%s", helpText)
	case command == "%list":
		sh.list()
	case command == "%run":
		sh.Run()
	case command == "%reset":
		sh.Engine.Reset()
		sh.printf("Virtual machine reset.\n")
	case command == "%clear":
		fmt.Fprint(sh.Output, CLEAR_SCREEN)
	case name == "%open" && len(arg) > 0:
		sh.open(arg)
	case name == "%save" && len(arg) > 0:
		sh.save(arg)
	case name == "%eval" && len(arg) > 0:
		sh.eval(arg)
	case name == "%set" && len(arg) > 0:
		sh.set(arg)
	case strings.HasPrefix(command, "%"):
		sh.printf("Unknown command. Type '%%help' for a list of commands.\n")
	default:
		sh.Engine.Append(command)
	}

	return
}

// Run runs the program from the first line and prints the result.
func (sh *Shell) Run() (result engine.Result) {
	sh.Engine.Verbose = sh.Verbose

	result = sh.Engine.Run()

	for _, diag := range result.Diagnostics {
		sh.printf("%v\n", describe(diag))
	}
	if result.Err != nil {
		sh.printf("Error: %v\n", describe(result.Err))
	}

	fmt.Fprintf(sh.Output, "  AC:  %d\n", sh.Engine.Ac)
	fmt.Fprintf(sh.Output, "  Memory: %v\n", FormatMemory(sh.Engine))

	return
}

// describe returns the message for a run error, without its location.
func describe(err error) string {
	var eu engine.ErrUnknown
	switch {
	case errors.As(err, &eu):
		return f("Unknown instruction: %v", string(eu))
	case errors.Is(err, engine.ErrDivideByZero):
		return f("Division by zero")
	case errors.Is(err, engine.ErrModuloByZero):
		return f("Modulo by zero")
	}
	return err.Error()
}

// FormatMemory formats the set memory cells as {addr: value, ...}, in
// ascending address order.
func FormatMemory(e *engine.Engine) string {
	var cells []string
	for addr, value := range e.Cells() {
		cells = append(cells, fmt.Sprintf("%d: %d", addr, value))
	}

	return "{" + strings.Join(cells, ", ") + "}"
}

func (sh *Shell) list() {
	for lineno, line := range sh.Engine.Listing() {
		fmt.Fprintf(sh.Output, "%d: %s\n", lineno, line)
	}
}

func (sh *Shell) open(name string) {
	lines, err := listing.Open(sh.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		sh.printf("File %s not found.\n", name)
		return
	}
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}

	sh.Engine.Load(lines)
	sh.printf("Loaded program from %s\n", name)
}

func (sh *Shell) save(name string) {
	err := listing.Save(sh.FS, name, sh.Engine.Program())
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}

	sh.printf("Saved program to %s\n", name)
}

func (sh *Shell) eval(expr string) {
	value, err := sh.Engine.Eval(expr)
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}

	fmt.Fprintln(sh.Output, value.String())
}

func (sh *Shell) set(args string) {
	addr_expr, value_expr, ok := strings.Cut(args, " ")
	value_expr = strings.TrimSpace(value_expr)
	if !ok || len(value_expr) == 0 {
		sh.printf("Usage: %%set [addr] [expr]\n")
		return
	}

	addr, err := sh.Engine.EvalInt(addr_expr)
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}

	value, err := sh.Engine.EvalInt(value_expr)
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}

	err = sh.Engine.Poke(addr, value)
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}

	fmt.Fprintf(sh.Output, "  Memory[%d]: %d\n", addr, value)
}
