package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/config"
	filefetcher "github.com/Benaiah/netlify-cms-config-examiner-rewrite/config/fetcher/file"
	stdinfetcher "github.com/Benaiah/netlify-cms-config-examiner-rewrite/config/fetcher/stdin"
	yamlparser "github.com/Benaiah/netlify-cms-config-examiner-rewrite/config/parser/yaml"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/document"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"

	"golang.org/x/term"
)

// stdinPath names standard input as the document.
const stdinPath = "-"

const maxDocumentBytes = 8 << 20

// readDocument decodes the document at path, or stdin for "-". A missing
// file is an empty config.
func readDocument(path string, stdin io.Reader) (node.Node, error) {
	var (
		fetcher config.DataFetcher
		err     error
	)

	if path == stdinPath {
		fetcher, err = stdinfetcher.NewFetcher(stdin, stdinfetcher.WithMaxBytes(maxDocumentBytes))()
	} else {
		fetcher, err = filefetcher.NewFetcher(path, filefetcher.WithMaxBytes(maxDocumentBytes))()
		if errors.Is(err, fs.ErrNotExist) {
			return node.NewMapping(), nil
		}
	}

	if err != nil {
		return node.Node{}, err
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return node.Node{}, fmt.Errorf("reading %s: %w", path, err)
	}

	root, err := document.Decode(data)
	if err != nil {
		return node.Node{}, fmt.Errorf("%s: %w", displayName(path), err)
	}

	return root, nil
}

// readAnswers loads a YAML list of answers.
func readAnswers(path string) ([]string, error) {
	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, fmt.Errorf("answers file: %w", err)
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("answers file: %w", err)
	}

	var answers []string

	err = yamlparser.NewParser().Parse(data, &answers, "")
	if err != nil && !errors.Is(err, yamlparser.ErrEmptyData) {
		return nil, fmt.Errorf("answers file %q: %w", path, err)
	}

	return answers, nil
}

func displayName(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}

	return path
}

// isTerminal reports whether r is a terminal.
func isTerminal(r any) bool {
	f, ok := r.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in an int
}
