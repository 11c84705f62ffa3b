// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads a Request from an interactive session: the keyword, the
// advanced option, and the option parameter when it takes one.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter returns a Prompter reading answers from r and writing
// questions to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// Ask runs the prompts and returns the completed Request. An invalid option,
// or a non-integer maximum length, is asked again.
func (p *Prompter) Ask() (Request, error) {
	var req Request
	var err error

	if req.Keyword, err = p.line("Enter a keyword to search for: "); err != nil {
		return req, err
	}

	fmt.Fprintln(p.out, "Which advanced search option would you like?")
	for _, o := range Options {
		fmt.Fprintf(p.out, "  %d. %s\n", int(o), o.Description())
	}
	for {
		answer, err := p.line(fmt.Sprintf("Enter an option (%d-%d): ", int(Options[0]), int(Options[len(Options)-1])))
		if err != nil {
			return req, err
		}
		req.Option, err = ParseOption(answer)
		if err == nil {
			break
		}
		fmt.Fprintf(p.out, "%v\n", err)
	}

	if !req.Option.NeedsValue() {
		return req, nil
	}
	for {
		if req.Value, err = p.line(req.Option.Prompt()); err != nil {
			return req, err
		}
		if req.Option != OptionLength {
			return req, nil
		}
		if _, err := strconv.Atoi(req.Value); err == nil {
			return req, nil
		}
		fmt.Fprintf(p.out, "%q is not a whole number\n", req.Value)
	}
}

func (p *Prompter) line(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return "", fmt.Errorf("reading answer: %w", io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// IsEOF reports whether err came from input ending before all answers were given.
func IsEOF(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
