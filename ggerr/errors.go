// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggerr defines the error kinds surfaced by chart compilation.
//
// There are exactly three kinds. Validation errors report a bad chart
// description (unknown column, unsupported geometry, a probability
// outside (0,1), ...). Mapping errors report a bad aesthetic mapping
// (unknown aesthetic name, unsupported mapping value). Compilation
// errors are the catch-all boundary: any other failure during a chart
// build is wrapped as a compilation error carrying the original cause.
//
// All three are *Error values, so callers can use errors.As to get at
// the kind and operation, or errors.Is with the sentinel values
// ErrValidation, ErrMapping, and ErrCompilation.
package ggerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindMapping
	KindCompilation
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMapping:
		return "mapping"
	case KindCompilation:
		return "compilation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel values for errors.Is. An *Error matches the sentinel of
// its kind.
var (
	ErrValidation  = errors.New("validation error")
	ErrMapping     = errors.New("mapping error")
	ErrCompilation = errors.New("compilation failed")
)

// Error is a classified chart error.
type Error struct {
	Kind Kind

	// Op names the stage or operation that failed, such as
	// "stat bin" or "mapping". It may be "".
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	var prefix string
	switch e.Kind {
	case KindCompilation:
		prefix = "compilation failed"
	default:
		prefix = e.Kind.String() + " error"
	}
	if e.Op != "" {
		prefix += " in " + e.Op
	}
	if e.Err == nil {
		return prefix
	}
	return prefix + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrMapping:
		return e.Kind == KindMapping
	case ErrCompilation:
		return e.Kind == KindCompilation
	}
	return false
}

// Validation wraps err as a validation error for op.
func Validation(op string, err error) error {
	return &Error{KindValidation, op, err}
}

// Validationf returns a validation error for op with a formatted
// message.
func Validationf(op, format string, args ...interface{}) error {
	return &Error{KindValidation, op, fmt.Errorf(format, args...)}
}

// Mapping wraps err as a mapping error.
func Mapping(err error) error {
	return &Error{KindMapping, "mapping", err}
}

// Mappingf returns a mapping error with a formatted message.
func Mappingf(format string, args ...interface{}) error {
	return &Error{KindMapping, "mapping", fmt.Errorf(format, args...)}
}

// Compilation wraps err as a compilation error unless it already
// carries a domain kind, in which case it is returned unchanged. A nil
// err yields nil.
func Compilation(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{KindCompilation, op, err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0 if
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsMapping reports whether err is a mapping error.
func IsMapping(err error) bool { return KindOf(err) == KindMapping }

// IsCompilation reports whether err is a compilation error.
func IsCompilation(err error) bool { return KindOf(err) == KindCompilation }
