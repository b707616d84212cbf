package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Line asks questions on w and reads one answer per line from r.
// Choices are answered with the option's number or its exact text; other
// input repeats the question.
type Line struct {
	mu     sync.Mutex
	reader *bufio.Reader
	writer io.Writer
}

// NewLine returns a line-oriented provider.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{reader: bufio.NewReader(r), writer: w}
}

// RequestText prints prompt and returns the next line without its newline.
func (l *Line) RequestText(ctx context.Context, prompt string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := fmt.Fprintf(l.writer, "? %s ", prompt)
	if err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	return l.readLine(ctx)
}

// RequestChoice prints prompt with numbered options and returns the chosen
// option.
func (l *Line) RequestChoice(ctx context.Context, prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		var b strings.Builder

		fmt.Fprintf(&b, "? %s\n", prompt)

		for i, option := range options {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, option)
		}

		fmt.Fprintf(&b, "  Answer [1-%d]: ", len(options))

		_, err := io.WriteString(l.writer, b.String())
		if err != nil {
			return "", fmt.Errorf("writing prompt: %w", err)
		}

		answer, err := l.readLine(ctx)
		if err != nil {
			return "", err
		}

		if choice, ok := matchOption(answer, options); ok {
			return choice, nil
		}

		_, err = fmt.Fprintf(l.writer, "  %q is not one of the options.\n", answer)
		if err != nil {
			return "", fmt.Errorf("writing prompt: %w", err)
		}
	}
}

func (l *Line) readLine(ctx context.Context) (string, error) {
	err := ctx.Err()
	if err != nil {
		return "", fmt.Errorf("reading answer: %w", err)
	}

	line, err := l.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: input closed", ErrCanceled)
		}

		return "", fmt.Errorf("reading answer: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func matchOption(answer string, options []string) (string, bool) {
	answer = strings.TrimSpace(answer)

	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}

	for _, option := range options {
		if strings.EqualFold(answer, option) {
			return option, true
		}
	}

	return "", false
}
