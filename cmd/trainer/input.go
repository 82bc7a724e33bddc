package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const ctrlC = 0x03

// keySource yields one command key at a time.
type keySource interface {
	Next() (byte, error)
}

// keyReader reads single keypresses in raw mode, or the first non-blank
// character of each line when stdin is not a terminal.
type keyReader struct {
	r   *bufio.Reader
	raw bool
}

// openKeys puts stdin into raw mode when it is a terminal. The returned
// func restores the previous terminal state.
func openKeys(f *os.File) (*keyReader, func(), error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return &keyReader{r: bufio.NewReader(f)}, func() {}, nil
	}

	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("enable raw mode: %w", err)
	}
	restore := func() { _ = term.Restore(fd, prev) }
	return &keyReader{r: bufio.NewReader(f), raw: true}, restore, nil
}

func (k *keyReader) Next() (byte, error) {
	if k.raw {
		b, err := k.r.ReadByte()
		if err != nil {
			return 0, err
		}
		return toLower(b), nil
	}

	for {
		line, err := k.r.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return toLower(trimmed[0]), nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

// crlfWriter turns "\n" into "\r\n", which a raw-mode terminal needs to
// return the cursor to column zero.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}
