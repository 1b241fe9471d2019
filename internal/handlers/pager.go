package handlers

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-shellwords"
)

const defaultPager = "less -FRX"

// TerminalPager pipes output through $PAGER when Out is a terminal and
// writes straight to Out otherwise.
type TerminalPager struct {
	Out    *os.File
	Getenv func(string) string
}

func NewTerminalPager(out *os.File) *TerminalPager {
	return &TerminalPager{Out: out, Getenv: os.Getenv}
}

func (p *TerminalPager) IsTerminal() bool {
	fd := p.Out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *TerminalPager) Open() (io.WriteCloser, error) {
	if !p.IsTerminal() {
		return nopCloser{p.Out}, nil
	}
	line := p.Getenv("PAGER")
	if line == "" {
		line = defaultPager
	}
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse PAGER %q: %w", line, err)
	}
	if len(args) == 0 {
		return nopCloser{p.Out}, nil
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = p.Out
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start pager %q: %w", line, err)
	}
	return &pagerPipe{WriteCloser: stdin, cmd: cmd}, nil
}

type pagerPipe struct {
	io.WriteCloser
	cmd *exec.Cmd
}

func (p *pagerPipe) Close() error {
	cerr := p.WriteCloser.Close()
	if err := p.cmd.Wait(); err != nil {
		return err
	}
	return cerr
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
