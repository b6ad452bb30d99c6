package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLayout,
				Kind:   KindMissingBinary,
				Module: "decode_event",
				Path:   []string{"bucket", "decode_event"},
				Detail: "decode_event.wasm not found",
			},
			contains: []string{"[layout]", "missing_binary", "decode_event", "bucket/decode_event", "not found"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseScan,
				Kind:  KindNotDirectory,
			},
			contains: []string{"[scan]", "not_directory"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseManifest,
				Kind:   KindIO,
				Detail: "write manifest",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[manifest]", "io", "write manifest", "caused by", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseScan,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseLayout,
		Kind:   KindNameMismatch,
		Module: "foo",
	}

	if !err.Is(&Error{Phase: PhaseLayout, Kind: KindNameMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseScan, Kind: KindNameMismatch}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseLayout, Kind: KindStrayEntry}) {
		t.Error("Is should not match different kind")
	}

	if err.Is(errors.New("plain")) {
		t.Error("Is should not match non-structured error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseInspect, KindTruncated).
		Module("decode_event").
		Path("bucket", "decode_event", "decode_event.wasm").
		Detail("section %d ends early", 7).
		Cause(cause).
		Build()

	if err.Phase != PhaseInspect || err.Kind != KindTruncated {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Module != "decode_event" {
		t.Errorf("unexpected module: %s", err.Module)
	}
	if err.Detail != "section 7 ends early" {
		t.Errorf("unexpected detail: %s", err.Detail)
	}
	if !errors.Is(err, &Error{Phase: PhaseInspect, Kind: KindTruncated}) {
		t.Error("built error should match by phase and kind")
	}
	if !errors.Is(err, cause) {
		t.Error("built error should unwrap to cause")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		kind     Kind
		contains string
	}{
		{"not found", NotFound(PhaseScan, "module", "abc"), KindNotFound, `module "abc" not found`},
		{"not directory", NotDirectory(PhaseScan, "/tmp/x"), KindNotDirectory, "not a directory"},
		{"invalid name", InvalidName(PhaseLayout, "a/b", "contains path separator"), KindInvalidName, "separator"},
		{"already exists", AlreadyExists(PhaseScan, "abc"), KindAlreadyExists, "already exists"},
		{"truncated", Truncated(PhaseInspect, "import section"), KindTruncated, "import section"},
		{"closed", Closed(PhaseWatch, "watcher"), KindClosed, "closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("kind: got %s, want %s", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("message %q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
