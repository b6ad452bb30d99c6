// Package manifest tracks whether compiled artifacts are in sync with
// their sources.
//
// Nothing in the bucket convention forces a .wasm to match its .rs; the
// manifest makes drift visible without rebuilding anything. Snapshot
// records a content digest per artifact into bucket.toml at the bucket
// root, and Diff classifies each module against that record:
//
//	inv, _ := b.Scan(ctx)
//	m, err := manifest.Load(b.Root())
//	changes, err := m.Diff(ctx, inv)
//	for _, c := range changes {
//	    fmt.Println(c.Name, c.Status)
//	}
//
// The manifest is derived state, never authoritative: Diff only reads, and
// a stale or deleted manifest is recreated by the next Snapshot.
package manifest
