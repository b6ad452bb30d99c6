package watch

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	wasmbucket "github.com/wippyai/wasm-bucket"
)

// Op is a module-level change operation.
type Op int

const (
	// ModuleAdded means a new module directory appeared.
	ModuleAdded Op = iota

	// ModuleRemoved means a module directory went away.
	ModuleRemoved

	// SourceChanged means the module's source file was written or created.
	SourceChanged

	// BinaryChanged means the module's compiled binary was written or
	// created.
	BinaryChanged

	// MetaChanged means the module's WIT sidecar was written or created.
	MetaChanged
)

func (op Op) String() string {
	switch op {
	case ModuleAdded:
		return "module-added"
	case ModuleRemoved:
		return "module-removed"
	case SourceChanged:
		return "source-changed"
	case BinaryChanged:
		return "binary-changed"
	case MetaChanged:
		return "meta-changed"
	default:
		return "unknown"
	}
}

// Event is one module-level change.
type Event struct {
	Module string
	Op     Op
}

// classify maps a raw fsnotify event to a module-level event. The second
// return is false for noise: hidden files, the manifest, stray entries,
// and operations the bucket vocabulary has no word for.
func classify(root string, ev fsnotify.Event) (Event, bool) {
	rel, err := filepath.Rel(root, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Event{}, false
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")

	base := parts[len(parts)-1]
	if strings.HasPrefix(base, ".") || base == wasmbucket.ManifestFile {
		return Event{}, false
	}

	switch len(parts) {
	case 1:
		// Entry directly under the bucket root: a module directory coming
		// or going. Files at the root are stray and ignored here; the next
		// scan reports them.
		module := parts[0]
		if strings.Contains(module, ".") {
			return Event{}, false
		}
		switch {
		case ev.Has(fsnotify.Create):
			return Event{Module: module, Op: ModuleAdded}, true
		case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
			return Event{Module: module, Op: ModuleRemoved}, true
		}
		return Event{}, false

	case 2:
		module := parts[0]
		if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
			return Event{}, false
		}
		switch base {
		case module + wasmbucket.SourceExt:
			return Event{Module: module, Op: SourceChanged}, true
		case module + wasmbucket.BinaryExt:
			return Event{Module: module, Op: BinaryChanged}, true
		case module + wasmbucket.MetaExt:
			return Event{Module: module, Op: MetaChanged}, true
		}
		return Event{}, false
	}

	return Event{}, false
}

// coalesce deduplicates a burst of events, keeping first-seen order.
func coalesce(events []Event) []Event {
	seen := make(map[Event]struct{}, len(events))
	out := events[:0]
	for _, ev := range events {
		if _, dup := seen[ev]; dup {
			continue
		}
		seen[ev] = struct{}{}
		out = append(out, ev)
	}
	return out
}
