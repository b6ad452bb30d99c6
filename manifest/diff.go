package manifest

import (
	"context"
	"sort"

	"github.com/wippyai/wasm-bucket/bucket"
)

// Status classifies one module against the recorded manifest.
type Status int

const (
	// StatusInSync means both digests match the record.
	StatusInSync Status = iota

	// StatusSourceChanged means the source drifted since the record; the
	// binary is presumed stale.
	StatusSourceChanged

	// StatusBinaryChanged means the binary drifted while the source did
	// not. Usually a rebuild, possibly a swapped artifact.
	StatusBinaryChanged

	// StatusBothChanged means source and binary both drifted.
	StatusBothChanged

	// StatusAdded means the module is on disk but not in the manifest.
	StatusAdded

	// StatusRemoved means the module is in the manifest but gone from disk.
	StatusRemoved
)

func (s Status) String() string {
	switch s {
	case StatusInSync:
		return "in-sync"
	case StatusSourceChanged:
		return "source-changed"
	case StatusBinaryChanged:
		return "binary-changed"
	case StatusBothChanged:
		return "both-changed"
	case StatusAdded:
		return "added"
	case StatusRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is the diff result for one module.
type Change struct {
	Name   string
	Status Status
}

// Diff compares the inventory against the manifest and returns one Change
// per module, ordered by name. Modules present in neither direction are
// absent from the result. Diff never mutates the manifest or the bucket.
func (m *Manifest) Diff(ctx context.Context, inv *bucket.Inventory) ([]Change, error) {
	current, err := Snapshot(ctx, inv)
	if err != nil {
		return nil, err
	}

	var changes []Change

	for name, now := range current.Modules {
		recorded, ok := m.Modules[name]
		if !ok {
			changes = append(changes, Change{Name: name, Status: StatusAdded})
			continue
		}

		srcDrift := recorded.SourceDigest != now.SourceDigest
		binDrift := recorded.BinaryDigest != now.BinaryDigest
		status := StatusInSync
		switch {
		case srcDrift && binDrift:
			status = StatusBothChanged
		case srcDrift:
			status = StatusSourceChanged
		case binDrift:
			status = StatusBinaryChanged
		}
		changes = append(changes, Change{Name: name, Status: status})
	}

	for name := range m.Modules {
		if _, ok := current.Modules[name]; !ok {
			changes = append(changes, Change{Name: name, Status: StatusRemoved})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Name < changes[j].Name
	})

	return changes, nil
}
