// Package errs wraps errors with operation context the way the rest of the
// codebase expects: every returned error names the operation that failed.
package errs

import "golang.org/x/xerrors"

// Wrap annotates err with msg, preserving err for errors.Is/As.
func Wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	return xerrors.Errorf("%s: %w", msg, err)
}

// New creates a new error formatted with fmt-style verbs.
func New(format string, args ...interface{}) error {
	return xerrors.Errorf(format, args...)
}
