// Command vtcoredemo drives a real shell through a pseudo-terminal and
// renders the resulting screen via vtcore, printed once the shell exits.
// It exists to exercise vtcore.Terminal end-to-end against a live shell
// rather than canned byte sequences; it is not part of the core library.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/creack/pty"

	"github.com/ttygroup/vtcore"
)

func main() {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.Command(shell, "-i")
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		log.Fatalf("start pty: %v", err)
	}
	defer ptmx.Close()

	term := vtcore.New(
		vtcore.WithSize(24, 80),
		vtcore.WithResponse(ptmx),
		vtcore.WithResizeObserver(resizeObserver{ptmx}),
	)

	go io.Copy(term, ptmx)

	cmd.Wait()

	fmt.Println(term.String())
}

type resizeObserver struct {
	pty *os.File
}

func (r resizeObserver) ResizeRequested(cols, rows int) {
	pty.Setsize(r.pty, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}
