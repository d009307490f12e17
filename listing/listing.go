// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package listing reads and writes program text.
//
// A program file holds one instruction per line. Lines are stripped of
// surrounding whitespace; blank lines are kept so that jump targets keep
// their positions.
package listing

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LINE_LIMIT is the longest line accepted by Read.
const LINE_LIMIT = 1 << 20

// FS defines the file system used to open and save program files.
type FS interface {
	// Open opens a file for reading.
	Open(name string) (file io.ReadCloser, err error)
	// Create creates or truncates a file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

// OsFS is the operating system file system. Relative names are resolved
// against Dir, if set.
type OsFS struct {
	Dir string
}

var _ FS = (*OsFS)(nil)

func (osfs *OsFS) path(name string) string {
	if len(osfs.Dir) == 0 || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(osfs.Dir, name)
}

// Open opens a file for reading.
func (osfs *OsFS) Open(name string) (file io.ReadCloser, err error) {
	return os.Open(osfs.path(name))
}

// Create creates or truncates a file for writing.
func (osfs *OsFS) Create(name string) (file io.WriteCloser, err error) {
	return os.Create(osfs.path(name))
}

// Read reads program lines from r.
func Read(r io.Reader) (lines []string, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, LINE_LIMIT)

	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}

	err = scanner.Err()
	return
}

// Write writes program lines to w, one per line.
func Write(w io.Writer, lines []string) (err error) {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		_, err = fmt.Fprintln(bw, line)
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

// Open reads the program lines of a file.
func Open(fsys FS, name string) (lines []string, err error) {
	defer func() {
		if err != nil {
			err = &ErrFile{Name: name, Err: err}
		}
	}()

	file, err := fsys.Open(name)
	if err != nil {
		return
	}
	defer file.Close()

	lines, err = Read(file)
	return
}

// Save writes program lines to a file.
func Save(fsys FS, name string, lines []string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrFile{Name: name, Err: err}
		}
	}()

	file, err := fsys.Create(name)
	if err != nil {
		return
	}

	err = Write(file, lines)
	cerr := file.Close()
	if err == nil {
		err = cerr
	}

	return
}
