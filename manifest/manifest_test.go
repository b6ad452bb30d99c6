package manifest_test

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/wasm-bucket/bucket"
	"github.com/wippyai/wasm-bucket/errors"
	"github.com/wippyai/wasm-bucket/manifest"
)

func writeModule(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for f, content := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func scan(t *testing.T, root string) (*bucket.Bucket, *bucket.Inventory) {
	t.Helper()
	b, err := bucket.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	inv, err := b.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return b, inv
}

func TestSnapshotSaveLoad(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "decode_event", map[string]string{
		"decode_event.rs":   "fn main() {}",
		"decode_event.wasm": "\x00asm",
	})

	_, inv := scan(t, root)
	m, err := manifest.Snapshot(context.Background(), inv)
	if err != nil {
		t.Fatal(err)
	}

	entry, ok := m.Entry("decode_event")
	if !ok {
		t.Fatal("missing entry")
	}
	if entry.SourceDigest == "" || entry.BinaryDigest == "" {
		t.Error("digests should be recorded")
	}
	if entry.SourceSize != int64(len("fn main() {}")) {
		t.Errorf("source size: got %d", entry.SourceSize)
	}

	if err := manifest.Save(root, m); err != nil {
		t.Fatal(err)
	}
	loaded, err := manifest.Load(root)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := loaded.Entry("decode_event")
	if !ok {
		t.Fatal("entry lost in roundtrip")
	}
	if got != entry {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, entry)
	}
}

func TestSnapshot_MissingArtifact(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "halfway", map[string]string{"halfway.rs": "x"})

	_, inv := scan(t, root)
	m, err := manifest.Snapshot(context.Background(), inv)
	if err != nil {
		t.Fatal(err)
	}

	entry, _ := m.Entry("halfway")
	if entry.SourceDigest == "" {
		t.Error("source digest should be recorded")
	}
	if entry.BinaryDigest != "" {
		t.Error("missing binary should record an empty digest")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := manifest.Load(t.TempDir())
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseManifest, Kind: errors.KindNotFound}) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "bucket.toml"), []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := manifest.Load(root)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseManifest, Kind: errors.KindInvalidData}) {
		t.Fatalf("expected invalid_data, got %v", err)
	}
}

func TestDiff(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "steady", map[string]string{"steady.rs": "a", "steady.wasm": "b"})
	writeModule(t, root, "edited", map[string]string{"edited.rs": "a", "edited.wasm": "b"})
	writeModule(t, root, "rebuilt", map[string]string{"rebuilt.rs": "a", "rebuilt.wasm": "b"})
	writeModule(t, root, "churned", map[string]string{"churned.rs": "a", "churned.wasm": "b"})
	writeModule(t, root, "dropped", map[string]string{"dropped.rs": "a", "dropped.wasm": "b"})

	_, inv := scan(t, root)
	m, err := manifest.Snapshot(context.Background(), inv)
	if err != nil {
		t.Fatal(err)
	}

	// Mutate the bucket after the snapshot.
	mustWrite := func(path, content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite(filepath.Join(root, "edited", "edited.rs"), "changed")
	mustWrite(filepath.Join(root, "rebuilt", "rebuilt.wasm"), "changed")
	mustWrite(filepath.Join(root, "churned", "churned.rs"), "changed")
	mustWrite(filepath.Join(root, "churned", "churned.wasm"), "changed")
	if err := os.RemoveAll(filepath.Join(root, "dropped")); err != nil {
		t.Fatal(err)
	}
	writeModule(t, root, "brand_new", map[string]string{"brand_new.rs": "a", "brand_new.wasm": "b"})

	_, inv = scan(t, root)
	changes, err := m.Diff(context.Background(), inv)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]manifest.Status{
		"steady":    manifest.StatusInSync,
		"edited":    manifest.StatusSourceChanged,
		"rebuilt":   manifest.StatusBinaryChanged,
		"churned":   manifest.StatusBothChanged,
		"dropped":   manifest.StatusRemoved,
		"brand_new": manifest.StatusAdded,
	}

	if len(changes) != len(want) {
		t.Fatalf("changes: got %d, want %d (%v)", len(changes), len(want), changes)
	}
	for _, c := range changes {
		if want[c.Name] != c.Status {
			t.Errorf("%s: got %s, want %s", c.Name, c.Status, want[c.Name])
		}
	}

	// Ordered by name.
	for i := 1; i < len(changes); i++ {
		if changes[i-1].Name >= changes[i].Name {
			t.Errorf("changes not sorted: %v", changes)
		}
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status manifest.Status
		want   string
	}{
		{manifest.StatusInSync, "in-sync"},
		{manifest.StatusSourceChanged, "source-changed"},
		{manifest.StatusBinaryChanged, "binary-changed"},
		{manifest.StatusBothChanged, "both-changed"},
		{manifest.StatusAdded, "added"},
		{manifest.StatusRemoved, "removed"},
		{manifest.Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
