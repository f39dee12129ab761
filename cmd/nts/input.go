package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readSource reads the named file, or all of stdin when name is empty or "-".
func readSource(name string, stdin io.Reader) (b []byte, err error) {
	if name == "" || name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

// readLine reads one line from r without its line ending.
func readLine(r io.Reader) (line string, err error) {
	if line, err = bufio.NewReader(r).ReadString('\n'); err == io.EOF && line != "" {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

// readPassword prompts without echo when stdin is a terminal, and otherwise
// reads one line.
func readPassword(stdin io.Reader) (pw string, err error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(os.Stderr, "password: ")
		var b []byte
		b, err = term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	return readLine(stdin)
}
