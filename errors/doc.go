// Package errors provides structured error types for the wasm-bucket toolkit.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the module name, the filesystem path,
// and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLayout, errors.KindMissingBinary).
//		Module("decode_event").
//		Path("bucket", "decode_event").
//		Detail("decode_event.wasm not found").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseScan, "module", "decode_event")
//	err := errors.Truncated(errors.PhaseInspect, "section header")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
