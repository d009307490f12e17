// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/ezrec/acvm/engine"
	"github.com/ezrec/acvm/listing"
	"github.com/ezrec/acvm/shell"
)

const historyFile = ".acvm_history"

// linePrompter is the part of liner.State used by the shell.
type linePrompter interface {
	Prompt(prompt string) (line string, err error)
	AppendHistory(item string)
}

var _ linePrompter = (*liner.State)(nil)

// prompter adapts liner to shell.LineReader, recording history.
type prompter struct {
	linePrompter
}

func (pr prompter) Prompt(prompt string) (line string, err error) {
	line, err = pr.linePrompter.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		err = shell.ErrInterrupt
		return
	}
	if err == nil && len(line) > 0 {
		pr.AppendHistory(line)
	}
	return
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

// run runs the command with its arguments, returning the exit code.
func run(args []string, stdout io.Writer) int {
	var program string
	var batch bool
	var maxSteps int
	var verbose bool
	var history string

	flags := flag.NewFlagSet("acvm", flag.ContinueOnError)
	flags.StringVar(&program, "f", "", "program file to load")
	flags.BoolVar(&batch, "r", false, "Run the program once and exit")
	flags.IntVar(&maxSteps, "m", 0, "Maximum steps per run (0 is unlimited)")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.StringVar(&history, "history", defaultHistory(), "History file (empty to disable)")

	err := flags.Parse(args)
	if err != nil {
		return 2
	}

	if flags.NArg() != 0 {
		log.Printf("%v: Unknown arguments: %v", flags.Name(), flags.Args())
		return 2
	}

	sh := shell.NewShell(stdout)
	sh.Verbose = verbose
	sh.Engine.MaxSteps = maxSteps

	if len(program) != 0 {
		lines, err := listing.Open(sh.FS, program)
		if err != nil {
			log.Printf("%v", err)
			return 1
		}
		sh.Engine.Load(lines)
	}

	if batch {
		result := sh.Run()
		if engine.IsFault(result.Err) {
			return 1
		}
		return 0
	}

	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	if len(history) != 0 {
		if inf, err := os.Open(history); err == nil {
			_, _ = ln.ReadHistory(inf)
			inf.Close()
		}
	}

	err = sh.Serve(prompter{ln})

	if len(history) != 0 {
		if ouf, err := os.Create(history); err == nil {
			_, _ = ln.WriteHistory(ouf)
			ouf.Close()
		}
	}

	ln.Close()

	if err != nil {
		log.Print(err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
