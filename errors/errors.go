package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseScan     Phase = "scan"     // bucket discovery
	PhaseLayout   Phase = "layout"   // layout rule checks
	PhaseManifest Phase = "manifest" // manifest load/save/diff
	PhaseInspect  Phase = "inspect"  // binary inspection
	PhaseParse    Phase = "parse"    // WIT sidecar parsing
	PhaseWatch    Phase = "watch"    // filesystem watching
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindNotDirectory  Kind = "not_directory"
	KindNameMismatch  Kind = "name_mismatch"
	KindInvalidName   Kind = "invalid_name"
	KindMissingSource Kind = "missing_source"
	KindMissingBinary Kind = "missing_binary"
	KindStrayEntry    Kind = "stray_entry"
	KindAlreadyExists Kind = "already_exists"
	KindInvalidData   Kind = "invalid_data"
	KindInvalidInput  Kind = "invalid_input"
	KindTruncated     Kind = "truncated"
	KindUnsupported   Kind = "unsupported"
	KindIO            Kind = "io"
	KindClosed        Kind = "closed"
)

// Error is the structured error type used throughout the toolkit
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Module string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Module != "" {
		b.WriteString(" module ")
		b.WriteString(e.Module)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "/"))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Module sets the module name the error refers to
func (b *Builder) Module(name string) *Builder {
	b.err.Module = name
	return b
}

// Path sets the filesystem path elements
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotDirectory reports a path that should be a directory but is not
func NotDirectory(phase Phase, path string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotDirectory,
		Path:   []string{path},
		Detail: "not a directory",
	}
}

// InvalidName creates an invalid module name error
func InvalidName(phase Phase, name, reason string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidName,
		Module: name,
		Detail: reason,
	}
}

// AlreadyExists reports an attempt to create a module that exists
func AlreadyExists(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyExists,
		Module: name,
		Detail: "module already exists",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Truncated reports a binary that ends before a structure completes
func Truncated(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("unexpected end of input in %s", what),
	}
}

// Unsupported creates an unsupported input error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// IO wraps a filesystem error with path context
func IO(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindIO,
		Path:  []string{path},
		Cause: cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Closed reports use of a closed watcher or bucket handle
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}
