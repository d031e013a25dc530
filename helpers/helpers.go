package helpers

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPatternNotFound  = errors.New("pattern not found")
	ErrSubstitutionNoop = errors.New("substitution did not change the text")
	ErrSynthesis        = errors.New("unable to synthesize replacement")
	ErrIOFailure        = errors.New("I/O failure")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

func GenError(error_format string, error_txt ...interface{}) error {
	return errors.New(fmt.Sprintf(error_format, error_txt...))
}

// WrapError is GenError for failures callers need to tell apart with errors.Is.
func WrapError(kind error, error_format string, error_txt ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(error_format, error_txt...))
}
