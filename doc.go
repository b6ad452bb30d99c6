// Package wasmbucket provides tooling for a bucket of standalone
// WebAssembly modules.
//
// A bucket is a directory holding one subdirectory per module. Each module
// is a pair of artifacts sharing the directory's base name: a source file
// and the compiled binary.
//
//	bucket/
//	├── decode_event/
//	│   ├── decode_event.rs
//	│   └── decode_event.wasm
//	└── normalize/
//	    ├── normalize.rs
//	    ├── normalize.wasm
//	    └── normalize.wit        (optional interface declaration)
//
// Modules are independent: nothing in the bucket links them, and the
// toolkit never instantiates or executes them.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	wasmbucket/          Root package with the Module and Artifact entities
//	├── bucket/          Bucket discovery, layout validation, module lifecycle
//	├── manifest/        Digest manifest and source/binary sync tracking
//	├── inspect/         Static .wasm binary inspection and profile detection
//	├── watch/           Filesystem change notification for bucket contents
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Scan a bucket and validate its layout:
//
//	b, err := bucket.Open("./bucket")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	inv, err := b.Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, mod := range inv.Modules {
//	    fmt.Println(mod.Name)
//	}
//	for _, issue := range inv.Issues {
//	    fmt.Println(issue)
//	}
//
// Inspect a compiled artifact without running it:
//
//	data, _ := os.ReadFile(inv.Modules[0].Binary.Path)
//	report, err := inspect.Inspect(data)
//	fmt.Println(report.Profile(), report.Exports)
//
// # Layout Invariant
//
// For every module directory m under the bucket root, m/m.rs and m/m.wasm
// exist as regular files. Scan reports every deviation as a typed Issue
// rather than failing, so a partially broken bucket remains navigable.
//
// # Sync Tracking
//
// Compiled artifacts can drift from their sources. The manifest package
// records content digests and classifies drift (source changed, binary
// changed, module added or removed) without ever rebuilding anything;
// keeping artifacts in sync is the operator's job.
package wasmbucket
