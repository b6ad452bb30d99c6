package inspect

// Profile classifies the shape of a binary's interface. Detection is
// purely structural; none of these ABIs are implemented here.
type Profile string

const (
	// ProfileComponent is a Component Model binary.
	ProfileComponent Profile = "component"

	// ProfileLensTransform is a lens-style transform: exports alloc and
	// transform functions and pulls its input stream from the "lens"
	// import module.
	ProfileLensTransform Profile = "lens-transform"

	// ProfileCommand is a WASI command: exports _start.
	ProfileCommand Profile = "wasi-command"

	// ProfileReactor imports WASI but has no _start entry point.
	ProfileReactor Profile = "wasi-reactor"

	// ProfileUnknown matches nothing recognizable.
	ProfileUnknown Profile = "unknown"
)

// Profile detects the binary's interface shape from its imports and
// exports.
func (r *Report) Profile() Profile {
	if r.Component {
		return ProfileComponent
	}

	if r.isLensTransform() {
		return ProfileLensTransform
	}

	if e, ok := r.Export("_start"); ok && e.Kind == KindFunc {
		return ProfileCommand
	}

	if r.ImportsFrom("wasi_snapshot_preview1") {
		return ProfileReactor
	}

	return ProfileUnknown
}

// isLensTransform checks for the lens transform shape: exported alloc and
// transform functions plus the "lens" import module providing next().
func (r *Report) isLensTransform() bool {
	alloc, okAlloc := r.Export("alloc")
	transform, okTransform := r.Export("transform")
	if !okAlloc || !okTransform {
		return false
	}
	if alloc.Kind != KindFunc || transform.Kind != KindFunc {
		return false
	}
	return r.ImportsFrom("lens")
}
