package watch

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestClassify(t *testing.T) {
	root := filepath.Join("tmp", "bucket")

	tests := []struct {
		name     string
		event    fsnotify.Event
		want     Event
		relevant bool
	}{
		{
			name:     "module dir created",
			event:    fsnotify.Event{Name: filepath.Join(root, "fresh"), Op: fsnotify.Create},
			want:     Event{Module: "fresh", Op: ModuleAdded},
			relevant: true,
		},
		{
			name:     "module dir removed",
			event:    fsnotify.Event{Name: filepath.Join(root, "gone"), Op: fsnotify.Remove},
			want:     Event{Module: "gone", Op: ModuleRemoved},
			relevant: true,
		},
		{
			name:     "module dir renamed away",
			event:    fsnotify.Event{Name: filepath.Join(root, "moved"), Op: fsnotify.Rename},
			want:     Event{Module: "moved", Op: ModuleRemoved},
			relevant: true,
		},
		{
			name:     "source written",
			event:    fsnotify.Event{Name: filepath.Join(root, "m", "m.rs"), Op: fsnotify.Write},
			want:     Event{Module: "m", Op: SourceChanged},
			relevant: true,
		},
		{
			name:     "binary dropped in",
			event:    fsnotify.Event{Name: filepath.Join(root, "m", "m.wasm"), Op: fsnotify.Create},
			want:     Event{Module: "m", Op: BinaryChanged},
			relevant: true,
		},
		{
			name:     "sidecar updated",
			event:    fsnotify.Event{Name: filepath.Join(root, "m", "m.wit"), Op: fsnotify.Write},
			want:     Event{Module: "m", Op: MetaChanged},
			relevant: true,
		},
		{
			name:  "manifest ignored",
			event: fsnotify.Event{Name: filepath.Join(root, "bucket.toml"), Op: fsnotify.Write},
		},
		{
			name:  "hidden file ignored",
			event: fsnotify.Event{Name: filepath.Join(root, ".git"), Op: fsnotify.Create},
		},
		{
			name:  "stray file in module dir ignored",
			event: fsnotify.Event{Name: filepath.Join(root, "m", "notes.txt"), Op: fsnotify.Write},
		},
		{
			name:  "mismatched stem ignored",
			event: fsnotify.Event{Name: filepath.Join(root, "m", "other.rs"), Op: fsnotify.Write},
		},
		{
			name:  "chmod ignored",
			event: fsnotify.Event{Name: filepath.Join(root, "m", "m.rs"), Op: fsnotify.Chmod},
		},
		{
			name:  "too deep ignored",
			event: fsnotify.Event{Name: filepath.Join(root, "m", "sub", "m.rs"), Op: fsnotify.Write},
		},
		{
			name:  "outside bucket ignored",
			event: fsnotify.Event{Name: filepath.Join("tmp", "elsewhere", "m.rs"), Op: fsnotify.Write},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, relevant := classify(root, tt.event)
			if relevant != tt.relevant {
				t.Fatalf("relevant: got %v, want %v", relevant, tt.relevant)
			}
			if relevant && got != tt.want {
				t.Errorf("event: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCoalesce(t *testing.T) {
	in := []Event{
		{Module: "a", Op: SourceChanged},
		{Module: "a", Op: SourceChanged},
		{Module: "a", Op: BinaryChanged},
		{Module: "b", Op: SourceChanged},
		{Module: "a", Op: SourceChanged},
	}

	got := coalesce(in)
	want := []Event{
		{Module: "a", Op: SourceChanged},
		{Module: "a", Op: BinaryChanged},
		{Module: "b", Op: SourceChanged},
	}

	if len(got) != len(want) {
		t.Fatalf("coalesce: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{ModuleAdded, "module-added"},
		{ModuleRemoved, "module-removed"},
		{SourceChanged, "source-changed"},
		{BinaryChanged, "binary-changed"},
		{MetaChanged, "meta-changed"},
		{Op(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
