package macro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrSourceUnavailable reports that the macro file could not be opened or
// read. Callers treat it as fatal for the speak feature.
var ErrSourceUnavailable = errors.New("macro source unavailable")

// Load reads and parses the macro file at path.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	store, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return store, nil
}

// Parse builds a Store from line-oriented macro text.
//
// A non-blank line with no leading whitespace starts a new bank; the trimmed
// text is the bank name. A line with leading whitespace is a macro belonging
// to the most recent bank. Blank lines and lines starting with '#' are
// skipped. A macro line seen before any bank header is malformed: the line is
// rejected and parsing continues.
func Parse(r io.Reader) (*Store, error) {
	store := &Store{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indented := strings.HasPrefix(line, "\t") || strings.HasPrefix(line, " ")
		if !indented {
			store.banks = append(store.banks, Bank{Name: trimmed})
			continue
		}

		if len(store.banks) == 0 {
			slog.Warn("Macro line before any bank header, skipping", "line", lineNo)
			continue
		}
		bank := &store.banks[len(store.banks)-1]
		bank.Macros = append(bank.Macros, trimmed)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading macro lines: %w", err)
	}
	return store, nil
}
