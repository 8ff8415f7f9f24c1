// Package errs is the one place the service touches cockroachdb/errors.
// Errors built here carry a stack trace and keep Mark references visible
// across wrapping.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark tags err so that Is(err, markErr) holds without changing its message.
// A nil err yields markErr itself.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is also matches references attached with Mark, which the standard library
// errors.Is does not see.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// ExtractStackLines renders err with its stack and keeps the first maxLines
// non-blank lines. maxLines <= 0 keeps everything.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(fmt.Sprintf("%+v", err), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if maxLines > 0 && len(lines) == maxLines {
			break
		}
	}
	return lines
}
