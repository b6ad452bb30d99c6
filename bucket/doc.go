// Package bucket discovers and validates the contents of a wasm module
// bucket.
//
// A bucket is a directory with one subdirectory per module; each module
// directory holds a source file and a compiled binary sharing the
// directory's base name. Scan walks the bucket and returns every
// well-formed module together with a typed issue for every deviation from
// the layout, so a partially broken bucket can still be listed and
// repaired:
//
//	b, err := bucket.Open("./bucket")
//	inv, err := b.Scan(ctx)
//	for _, issue := range inv.Issues {
//	    fmt.Println(issue)
//	}
//
// The package also covers the module lifecycle the convention implies:
// Create makes a new module directory with a source stub, Remove deletes
// one. Neither touches compiled artifacts of other modules.
package bucket
