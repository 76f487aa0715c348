// Package inputprocessor resolves CLI input into text for analysis.
package inputprocessor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"semcat/internal/util"
)

const maxErrorBody = 1024

// Result holds the resolved text and where it came from.
type Result struct {
	Text   string
	Source string // "file", "url", "stdin" or "raw"
}

// Processor turns an input argument into text.
type Processor interface {
	Process(ctx context.Context, input string) (Result, error)
}

// New creates the default processor. A nil client uses http.DefaultClient.
func New(client *http.Client) Processor {
	if client == nil {
		client = http.DefaultClient
	}
	return &defaultProcessor{client: client, stdin: os.Stdin}
}

type defaultProcessor struct {
	client *http.Client
	stdin  io.Reader
}

// Process reads "-" from stdin, an existing path from disk, an http(s) URL
// over the network, and treats anything else as the text itself.
func (p *defaultProcessor) Process(ctx context.Context, input string) (Result, error) {
	if input == "-" {
		data, err := io.ReadAll(p.stdin)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		text, err := util.CleanFileContent(data, "stdin")
		return Result{Text: text, Source: "stdin"}, err
	}

	fi, err := os.Stat(input)
	switch {
	case err == nil && !fi.IsDir():
		log.Debugf("Input '%s' detected as a file.", input)
		text, err := ReadFile(input)
		return Result{Text: text, Source: "file"}, err
	case err == nil:
		return Result{}, fmt.Errorf("input '%s' is a directory, not a file", input)
	case !errors.Is(err, os.ErrNotExist) && !errors.Is(err, os.ErrInvalid):
		// Long raw texts can fail stat with ENAMETOOLONG; treat those as text.
		log.Debugf("Stat failed for input, treating as raw text: %v", err)
	}

	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		log.Debugf("Input '%s' detected as a URL.", input)
		text, err := p.fetch(ctx, u.String())
		return Result{Text: text, Source: "url"}, err
	}

	return Result{Text: input, Source: "raw"}, nil
}

func (p *defaultProcessor) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for URL '%s': %w", target, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL '%s': %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		hint, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("failed to fetch URL '%s': status code %d %s - Body Hint: %s",
			target, resp.StatusCode, http.StatusText(resp.StatusCode), string(hint))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body from URL '%s': %w", target, err)
	}
	return util.CleanFileContent(data, target)
}

// ReadFile reads and cleans a text file, rejecting binary content.
func ReadFile(path string) (string, error) {
	binary, err := util.IsLikelyBinary(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	if binary {
		return "", fmt.Errorf("file '%s' looks binary", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return "", fmt.Errorf("permission denied reading file '%s': %w", path, err)
		}
		return "", fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return util.CleanFileContent(data, path)
}

// ReadLines returns the non-blank lines of r, trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}
