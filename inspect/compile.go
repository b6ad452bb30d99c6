package inspect

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/wasm-bucket/errors"
)

// CompileCheck validates a binary by compiling it with wazero. Nothing is
// instantiated: imports stay unresolved and no guest code runs, but the
// full body validation the structural walk skips is performed.
//
// Component Model binaries cannot be compiled by a core runtime and are
// rejected up front.
func CompileCheck(ctx context.Context, data []byte) error {
	report, err := Inspect(data)
	if err != nil {
		return err
	}
	if report.Component {
		return errors.Unsupported(errors.PhaseInspect, "compile check of a component binary")
	}

	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		return errors.Wrap(errors.PhaseInspect, errors.KindInvalidData, err, "compile module")
	}
	return compiled.Close(ctx)
}
