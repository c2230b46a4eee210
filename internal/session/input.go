package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// input reads whitespace-separated tokens, and whole lines when asked, from a
// reader that is drained on its own goroutine so that a read can be
// abandoned when ctx is done.
type input struct {
	lines   <-chan string
	pending []string
}

func newInput(r io.Reader) *input {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return &input{lines: lines}
}

func (in *input) line(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-in.lines:
		if !ok {
			return "", io.EOF
		}
		return l, nil
	}
}

func (in *input) token(ctx context.Context) (string, error) {
	for len(in.pending) == 0 {
		l, err := in.line(ctx)
		if err != nil {
			return "", err
		}
		in.pending = strings.Fields(l)
	}
	t := in.pending[0]
	in.pending = in.pending[1:]
	return t, nil
}

// readInt skips tokens that are not integers, asking again on out.
func (in *input) readInt(ctx context.Context, out io.Writer) (int, error) {
	for {
		t, err := in.token(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(t)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(out, "%q is not a number, try again: ", t)
	}
}

// readLine discards whatever is left of the current line and returns the
// next one.
func (in *input) readLine(ctx context.Context) (string, error) {
	in.pending = nil
	return in.line(ctx)
}
