package manifest

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	wasmbucket "github.com/wippyai/wasm-bucket"
	"github.com/wippyai/wasm-bucket/bucket"
	"github.com/wippyai/wasm-bucket/errors"
)

// Entry records the observed state of one module's artifacts. A missing
// artifact is recorded with an empty digest.
type Entry struct {
	SourceDigest string `toml:"source-digest"`
	SourceSize   int64  `toml:"source-size"`
	BinaryDigest string `toml:"binary-digest"`
	BinarySize   int64  `toml:"binary-size"`
}

// Manifest is the per-bucket digest record, persisted as bucket.toml at
// the bucket root.
type Manifest struct {
	RecordedAt time.Time        `toml:"recorded-at"`
	Modules    map[string]Entry `toml:"modules"`
}

// Entry returns the recorded entry for a module name.
func (m *Manifest) Entry(name string) (Entry, bool) {
	e, ok := m.Modules[name]
	return e, ok
}

// Snapshot digests every artifact in the inventory and returns the
// resulting manifest. Artifacts flagged missing by the scan are recorded
// with empty digests rather than skipped, so Diff can tell "missing then"
// from "never seen".
func Snapshot(ctx context.Context, inv *bucket.Inventory) (*Manifest, error) {
	m := &Manifest{
		RecordedAt: time.Now().UTC(),
		Modules:    make(map[string]Entry, len(inv.Modules)),
	}

	for _, mod := range inv.Modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var entry Entry
		if mod.Source.Exists() {
			digest, err := mod.Source.Digest()
			if err != nil {
				return nil, errors.IO(errors.PhaseManifest, mod.Source.Path, err)
			}
			entry.SourceDigest = digest
			entry.SourceSize = mod.Source.Size
		}
		if mod.Binary.Exists() {
			digest, err := mod.Binary.Digest()
			if err != nil {
				return nil, errors.IO(errors.PhaseManifest, mod.Binary.Path, err)
			}
			entry.BinaryDigest = digest
			entry.BinarySize = mod.Binary.Size
		}
		m.Modules[mod.Name] = entry
	}

	return m, nil
}

// Load reads the manifest from the bucket root.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, wasmbucket.ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(errors.PhaseManifest, "manifest", path)
		}
		return nil, errors.IO(errors.PhaseManifest, path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.PhaseManifest, errors.KindInvalidData, err, "decode manifest")
	}
	if m.Modules == nil {
		m.Modules = make(map[string]Entry)
	}
	return &m, nil
}

// Save writes the manifest to the bucket root, replacing any previous one.
func Save(root string, m *Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return errors.Wrap(errors.PhaseManifest, errors.KindInvalidData, err, "encode manifest")
	}

	path := filepath.Join(root, wasmbucket.ManifestFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.IO(errors.PhaseManifest, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.IO(errors.PhaseManifest, path, err)
	}
	return nil
}
