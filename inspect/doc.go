// Package inspect reads compiled wasm artifacts without running them.
//
// Inspect parses the binary's section structure and surfaces what the
// bucket tooling cares about: imports, exports, memory limits, custom
// section names, and a size breakdown per section. Function bodies are
// never decoded and nothing is instantiated.
//
//	data, _ := os.ReadFile("bucket/decode_event/decode_event.wasm")
//	report, err := inspect.Inspect(data)
//	fmt.Println(report.Profile())      // e.g. lens-transform
//	for _, exp := range report.Exports {
//	    fmt.Println(exp.Name, exp.Kind)
//	}
//
// CompileCheck goes one step deeper and compiles (but does not
// instantiate) the binary with wazero, catching anything the structural
// walk cannot see.
//
// Modules may carry a WIT text sidecar declaring their intended interface;
// ParseDeclarations extracts the declared function signatures and
// CheckDeclared verifies the binary actually exports them.
package inspect
