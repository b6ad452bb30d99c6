package bucket_test

import (
	"strings"
	"testing"

	"github.com/wippyai/wasm-bucket/bucket"
	"github.com/wippyai/wasm-bucket/errors"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"decode_event", true},
		{"normalize-v2", true},
		{"a", true},
		{"snake_case_name", true},
		{"", false},
		{".", false},
		{"..", false},
		{".hidden", false},
		{"a/b", false},
		{"dotted.name", false},
		{`a\b`, false},
		{"with space", false},
		{"tab\tname", false},
		{"newline\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bucket.ValidateName(tt.name)
			if tt.valid && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.name, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidateName(%q) = nil, want error", tt.name)
			}
		})
	}
}

func TestIssue_String(t *testing.T) {
	issue := bucket.Issue{
		Module: "decode_event",
		Path:   "decode_event",
		Kind:   errors.KindMissingBinary,
		Detail: "decode_event.wasm not found",
	}

	s := issue.String()
	for _, want := range []string{"missing_binary", "decode_event", "not found"} {
		if !strings.Contains(s, want) {
			t.Errorf("issue string %q does not contain %q", s, want)
		}
	}
}

func TestIssue_Err(t *testing.T) {
	issue := bucket.Issue{
		Module: "x",
		Path:   "x",
		Kind:   errors.KindMissingSource,
	}

	err := issue.Err()
	var e *errors.Error
	if !asError(err, &e) {
		t.Fatalf("Err() did not return *errors.Error: %T", err)
	}
	if e.Phase != errors.PhaseLayout || e.Kind != errors.KindMissingSource {
		t.Errorf("unexpected phase/kind: %s/%s", e.Phase, e.Kind)
	}
}

func asError(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}
