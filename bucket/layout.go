package bucket

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/wippyai/wasm-bucket/errors"
)

// Issue is one deviation from the bucket layout convention. Issues are
// reported by Scan instead of aborting it, so one malformed entry does not
// hide the rest of the bucket.
type Issue struct {
	// Module is the module the issue belongs to, or "" for bucket-level
	// issues such as a stray file at the root.
	Module string

	// Path is the offending entry relative to the bucket root.
	Path string

	Kind   errors.Kind
	Detail string
}

func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(string(i.Kind))
	if i.Module != "" {
		b.WriteString(" module ")
		b.WriteString(i.Module)
	}
	if i.Path != "" {
		b.WriteString(" at ")
		b.WriteString(i.Path)
	}
	if i.Detail != "" {
		b.WriteString(": ")
		b.WriteString(i.Detail)
	}
	return b.String()
}

// Err converts the issue into a structured error.
func (i Issue) Err() error {
	return errors.New(errors.PhaseLayout, i.Kind).
		Module(i.Module).
		Path(i.Path).
		Detail("%s", i.Detail).
		Build()
}

// ValidateName checks that name is usable as a module name. Module names
// become directory and file names, so anything the filesystem or the shell
// would mangle is rejected.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.InvalidName(errors.PhaseLayout, name, "empty name")
	case name == "." || name == "..":
		return errors.InvalidName(errors.PhaseLayout, name, "reserved name")
	case strings.ContainsAny(name, `/\`):
		return errors.InvalidName(errors.PhaseLayout, name, "contains path separator")
	case strings.HasPrefix(name, "."):
		return errors.InvalidName(errors.PhaseLayout, name, "hidden names are reserved")
	case strings.Contains(name, "."):
		// The name doubles as the artifact file stem; dots would collide
		// with extension matching.
		return errors.InvalidName(errors.PhaseLayout, name, "contains dot")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return errors.InvalidName(errors.PhaseLayout, name,
				fmt.Sprintf("contains disallowed character %q", r))
		}
	}
	return nil
}
