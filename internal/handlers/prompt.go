package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NumberedPrompt lists the choices with 1-based numbers on Out and reads the
// answer from In. A single choice is taken without asking.
type NumberedPrompt struct {
	In  io.Reader
	Out io.Writer

	r *bufio.Reader
}

func (p *NumberedPrompt) Choose(preamble string, choices []string) (int, bool, error) {
	switch len(choices) {
	case 0:
		return 0, false, nil
	case 1:
		return 0, true, nil
	}
	if p.r == nil {
		p.r = bufio.NewReader(p.In)
	}

	if preamble != "" {
		fmt.Fprintln(p.Out, preamble)
	}
	for i, c := range choices {
		fmt.Fprintf(p.Out, "%3d. %s\n", i+1, c)
	}
	for {
		fmt.Fprintf(p.Out, "Choose 1-%d (q to quit): ", len(choices))
		line, err := p.r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, false, err
		}
		answer := strings.TrimSpace(line)
		switch {
		case strings.EqualFold(answer, "q"):
			return 0, false, nil
		case answer == "" && errors.Is(err, io.EOF):
			fmt.Fprintln(p.Out)
			return 0, false, nil
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(choices) {
			return n - 1, true, nil
		}
		fmt.Fprintf(p.Out, "Invalid choice: %q\n", answer)
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
	}
}
