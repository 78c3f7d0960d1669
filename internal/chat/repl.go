// ABOUTME: Line-oriented chat loop for the terminal
// ABOUTME: Errors are shown inline and the loop keeps going until exit, EOF, or cancellation
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const maxLineBytes = 64 * 1024

// ErrLineTooLong is reported for an input line over maxLineBytes; the line is discarded
var ErrLineTooLong = fmt.Errorf("input line exceeds %d bytes", maxLineBytes)

// REPL reads questions and prints answers
type REPL struct {
	service *Service
	prompt  string
}

// NewREPL creates a loop around service
func NewREPL(service *Service) *REPL {
	return &REPL{service: service, prompt: "> "}
}

type inputLine struct {
	text string
	err  error
}

// Run serves questions from in until "exit", "quit", EOF, or ctx is done.
// Cancelling ctx returns immediately, even while waiting for input.
func (r *REPL) Run(ctx context.Context, in io.Reader, out io.Writer, session *Session) error {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	fmt.Fprintln(out, "Ask about restaurant menus. Type 'exit' to quit.")
	for {
		fmt.Fprint(out, r.prompt)

		var line inputLine
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line = <-lines:
		}

		if errors.Is(line.err, ErrLineTooLong) {
			fmt.Fprintf(out, "Error: %v\n\n", line.err)
			continue
		}
		if errors.Is(line.err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if line.err != nil {
			return line.err
		}

		question := strings.TrimSpace(line.text)
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "exit", "quit":
			return nil
		}

		answer, err := r.service.Ask(ctx, session, question)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(out)
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		fmt.Fprintf(out, "%s\n\n", answer.Text)
	}
}

// readLines delivers lines from in until a terminal read error or done is closed.
// A blocked read on in outlives done; the goroutine exits at its next send.
func readLines(in io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		reader := bufio.NewReaderSize(in, 4096)
		for {
			text, err := readLine(reader)
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-done:
				return
			}
			if err != nil && !errors.Is(err, ErrLineTooLong) {
				return
			}
		}
	}()
	return lines
}

// readLine returns one line without its terminator. Lines longer than
// maxLineBytes are consumed to their end and reported as ErrLineTooLong.
func readLine(reader *bufio.Reader) (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				break
			}
			return "", err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	return string(buf), nil
}
