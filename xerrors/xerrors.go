// Package xerrors defines the error kinds of the openPMD data model.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package xerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// NoSuchFile is raised opening a path that does not exist in a read access mode.
type NoSuchFile struct {
	Path string
}

func (e *NoSuchFile) Error() string { return fmt.Sprintf("no such file: %s", e.Path) }

func NewNoSuchFile(path string) error { return errors.WithStack(&NoSuchFile{Path: path}) }

// WrongAPIUsage is raised when the caller violates a lifecycle precondition:
// mutating a closed iteration, issuing a read-only operation on a write
// handle, naming an unknown backend. Shrinking a written dataset is an
// InvalidOperation, not a WrongAPIUsage.
type WrongAPIUsage struct {
	Msg string
}

func (e *WrongAPIUsage) Error() string { return "wrong API usage: " + e.Msg }

func NewWrongAPIUsage(format string, args ...any) error {
	return errors.WithStack(&WrongAPIUsage{Msg: fmt.Sprintf(format, args...)})
}

// BackendConfigSchema is raised for a malformed JSON/TOML config with a
// locatable error path.
type BackendConfigSchema struct {
	Path string
	Msg  string
}

func (e *BackendConfigSchema) Error() string {
	return fmt.Sprintf("backend config schema error at %q: %s", e.Path, e.Msg)
}

func NewBackendConfigSchema(path, format string, args ...any) error {
	return errors.WithStack(&BackendConfigSchema{Path: path, Msg: fmt.Sprintf(format, args...)})
}

// UnsupportedData is raised when a backend cannot represent a requested
// datatype or option.
type UnsupportedData struct {
	Msg string
}

func (e *UnsupportedData) Error() string { return "unsupported data: " + e.Msg }

func NewUnsupportedData(format string, args ...any) error {
	return errors.WithStack(&UnsupportedData{Msg: fmt.Sprintf(format, args...)})
}

// InvalidOperation is raised for a type/extent mismatch on chunk store/load,
// or an attribute type mismatch. The enqueueing task is never created.
type InvalidOperation struct {
	Msg string
}

func (e *InvalidOperation) Error() string { return "invalid operation: " + e.Msg }

func NewInvalidOperation(format string, args ...any) error {
	return errors.WithStack(&InvalidOperation{Msg: fmt.Sprintf(format, args...)})
}

// BackendError wraps an underlying storage library failure surfaced during
// flush. Subsequent operations on the same Series are undefined.
type BackendError struct {
	Backend string
	Cause   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend error: %v", e.Backend, e.Cause)
}

func (e *BackendError) Unwrap() error { return e.Cause }

func NewBackendError(backend string, cause error) error {
	return errors.WithStack(&BackendError{Backend: backend, Cause: cause})
}

// ReadKind enumerates the structural-violation sub-kinds of ReadError.
type ReadKind int

const (
	ReadNotFound ReadKind = iota
	ReadUnexpectedContent
	ReadOutOfRange
)

func (k ReadKind) String() string {
	switch k {
	case ReadNotFound:
		return "NotFound"
	case ReadUnexpectedContent:
		return "UnexpectedContent"
	case ReadOutOfRange:
		return "OutOfRangeError"
	default:
		return "Unknown"
	}
}

// ReadError signals a structural violation of the openPMD schema during parse.
type ReadError struct {
	Kind ReadKind
	Msg  string
}

func (e *ReadError) Error() string { return fmt.Sprintf("read error (%s): %s", e.Kind, e.Msg) }

func NewReadError(kind ReadKind, format string, args ...any) error {
	return errors.WithStack(&ReadError{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// Wrap attaches a stack trace and message the way the teacher's cmn
// constructors do for backend-originated failures.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
