// Package errors provides custom error types for the biorefs system.
// These errors enable better error handling, programmatic error checking,
// and precise test assertions on why a reference load failed.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the biorefs system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrDuplicatePath indicates the same reference path was supplied more than once
	ErrDuplicatePath = errors.New("duplicate reference path")

	// ErrUnrecognizedFormat indicates a reference path has no known format extension
	ErrUnrecognizedFormat = errors.New("unrecognized reference format")

	// ErrEmptyParse indicates a parser returned zero records for a file
	ErrEmptyParse = errors.New("zero records parsed")

	// ErrDuplicateIdentifier indicates two sequence-only records share an identifier
	ErrDuplicateIdentifier = errors.New("duplicate sequence identifier")

	// ErrMissingSequence indicates an annotated record has no resolvable sequence
	ErrMissingSequence = errors.New("missing sequence")

	// ErrLengthMismatch indicates a matched sequence disagrees with the declared length
	ErrLengthMismatch = errors.New("sequence length mismatch")

	// ErrEmptyResult indicates a load produced no records at all
	ErrEmptyResult = errors.New("empty result")

	// ErrParserFailure indicates an external parser failed unexpectedly
	ErrParserFailure = errors.New("parser failure")
)

// Kind classifies an error for programmatic handling.
type Kind int

// Error kinds, one per failure class of a reference load.
const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindDuplicatePath
	KindUnrecognizedFormat
	KindEmptyParse
	KindDuplicateIdentifier
	KindMissingSequence
	KindLengthMismatch
	KindEmptyResult
	KindParserFailure
	KindCanceled
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindDuplicatePath:
		return "duplicate_path"
	case KindUnrecognizedFormat:
		return "unrecognized_format"
	case KindEmptyParse:
		return "empty_parse"
	case KindDuplicateIdentifier:
		return "duplicate_identifier"
	case KindMissingSequence:
		return "missing_sequence"
	case KindLengthMismatch:
		return "length_mismatch"
	case KindEmptyResult:
		return "empty_result"
	case KindParserFailure:
		return "parser_failure"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// kinded is implemented by every error type in this package that has a Kind.
type kinded interface {
	Kind() Kind
}

// KindOf returns the Kind of the first error in err's chain that carries one.
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	if IsCanceled(err) {
		return KindCanceled
	}
	return KindUnknown
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure, including arguments
// of the wrong shape passed to a load.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Kind implements kinded
func (e *ValidationError) Kind() Kind { return KindInvalidArgument }

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// DuplicatePathError reports a reference path supplied more than once.
type DuplicatePathError struct {
	Path  string
	Count int
}

// Error implements the error interface
func (e *DuplicatePathError) Error() string {
	if e.Path == "" {
		return "some reference files were passed more than once"
	}
	return fmt.Sprintf("reference file %s was passed %d times", e.Path, e.Count)
}

// Is implements errors.Is support
func (e *DuplicatePathError) Is(target error) bool {
	return target == ErrDuplicatePath
}

// Kind implements kinded
func (e *DuplicatePathError) Kind() Kind { return KindDuplicatePath }

// UnrecognizedFormatError reports a path whose extension matches no known format.
type UnrecognizedFormatError struct {
	Path string
}

// Error implements the error interface
func (e *UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("could not identify reference file format, expecting a genbank, GFF, or FASTA file extension: %s", e.Path)
}

// Is implements errors.Is support
func (e *UnrecognizedFormatError) Is(target error) bool {
	return target == ErrUnrecognizedFormat
}

// Kind implements kinded
func (e *UnrecognizedFormatError) Kind() Kind { return KindUnrecognizedFormat }

// EmptyParseError reports a parser that returned zero records for a file.
type EmptyParseError struct {
	Format string
	Parser string
	Path   string
}

// Error implements the error interface
func (e *EmptyParseError) Error() string {
	return fmt.Sprintf("%s parser parsed zero %s records from file: %s", e.Parser, e.Format, e.Path)
}

// Is implements errors.Is support
func (e *EmptyParseError) Is(target error) bool {
	return target == ErrEmptyParse
}

// Kind implements kinded
func (e *EmptyParseError) Kind() Kind { return KindEmptyParse }

// DuplicateIdentifierError reports two sequence-only records sharing an ID.
type DuplicateIdentifierError struct {
	ID         string
	FirstPath  string
	SecondPath string
}

// Error implements the error interface
func (e *DuplicateIdentifierError) Error() string {
	if e.FirstPath != "" && e.SecondPath != "" {
		return fmt.Sprintf("found FASTA records with the same ID: %s (in %s and %s)", e.ID, e.FirstPath, e.SecondPath)
	}
	return fmt.Sprintf("found FASTA records with the same ID: %s", e.ID)
}

// Is implements errors.Is support
func (e *DuplicateIdentifierError) Is(target error) bool {
	return target == ErrDuplicateIdentifier
}

// Kind implements kinded
func (e *DuplicateIdentifierError) Kind() Kind { return KindDuplicateIdentifier }

// MissingReason says why an annotated record could not get its sequence.
type MissingReason int

const (
	// NoSequencePool means no sequence-only records were left to match against.
	NoSequencePool MissingReason = iota
	// IdentifierNotFound means sequence-only records exist but none has the ID.
	IdentifierNotFound
)

// MissingSequenceError reports an annotated record without resolvable sequence.
type MissingSequenceError struct {
	ID     string
	Reason MissingReason
}

// Error implements the error interface
func (e *MissingSequenceError) Error() string {
	if e.Reason == NoSequencePool {
		return fmt.Sprintf("sequence record %s was created without any sequence information", e.ID)
	}
	return fmt.Sprintf("could not find sequence information for sequence record %s", e.ID)
}

// Is implements errors.Is support
func (e *MissingSequenceError) Is(target error) bool {
	return target == ErrMissingSequence
}

// Kind implements kinded
func (e *MissingSequenceError) Kind() Kind { return KindMissingSequence }

// LengthMismatchError reports a matched FASTA record whose length differs from
// the unknown sequence length declared by the annotation.
type LengthMismatchError struct {
	ID              string
	AnnotatedLength int
	SequenceLength  int
}

// Error implements the error interface
func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("sequence record %s has an unknown sequence of length %d; found a FASTA record with the same ID, but its length is %d",
		e.ID, e.AnnotatedLength, e.SequenceLength)
}

// Is implements errors.Is support
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// Kind implements kinded
func (e *LengthMismatchError) Kind() Kind { return KindLengthMismatch }

// EmptyResultError reports a load that produced zero records.
type EmptyResultError struct {
	Paths []string
}

// Error implements the error interface
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("parsed zero sequence records from passed reference files: %s", strings.Join(e.Paths, ", "))
}

// Is implements errors.Is support
func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}

// Kind implements kinded
func (e *EmptyResultError) Kind() Kind { return KindEmptyResult }

// ParserFailureError wraps an unexpected failure raised by a format parser.
type ParserFailureError struct {
	Format string
	Parser string
	Path   string
	Err    error
}

// Error implements the error interface
func (e *ParserFailureError) Error() string {
	return fmt.Sprintf("%s reference file (%s) failed to be parsed by the %s parser: %v", e.Format, e.Path, e.Parser, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParserFailureError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParserFailureError) Is(target error) bool {
	return target == ErrParserFailure
}

// Kind implements kinded
func (e *ParserFailureError) Kind() Kind { return KindParserFailure }

// NewParserFailureError creates a new ParserFailureError
func NewParserFailureError(format, parser, path string, err error) *ParserFailureError {
	return &ParserFailureError{
		Format: format,
		Parser: parser,
		Path:   path,
		Err:    err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "fasta", "genbank", "gff", "yaml"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "open", "map", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error, including
// context cancellation and deadline expiry.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// IsDuplicatePath checks if an error reports a repeated input path
func IsDuplicatePath(err error) bool {
	return errors.Is(err, ErrDuplicatePath)
}

// IsDuplicateIdentifier checks if an error reports a repeated FASTA identifier
func IsDuplicateIdentifier(err error) bool {
	return errors.Is(err, ErrDuplicateIdentifier)
}

// IsMissingSequence checks if an error reports an unresolvable sequence
func IsMissingSequence(err error) bool {
	return errors.Is(err, ErrMissingSequence)
}

// IsLengthMismatch checks if an error reports disagreeing sequence lengths
func IsLengthMismatch(err error) bool {
	return errors.Is(err, ErrLengthMismatch)
}

// IsEmptyResult checks if an error reports a load without records
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}
