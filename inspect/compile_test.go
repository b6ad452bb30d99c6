package inspect_test

import (
	"context"
	"testing"

	"github.com/wippyai/wasm-bucket/inspect"
)

func TestCompileCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("valid module", func(t *testing.T) {
		exports := append(uleb(1), export("run", 0x00, 0)...)
		data := coreModule(
			section(1, 0x01, 0x60, 0x00, 0x00), // type: () -> ()
			section(3, 0x01, 0x00),
			section(7, exports...),
			section(10, 0x01, 0x02, 0x00, 0x0B), // body: (end)
		)
		if err := inspect.CompileCheck(ctx, data); err != nil {
			t.Fatalf("CompileCheck failed on valid module: %v", err)
		}
	})

	t.Run("declared function without body", func(t *testing.T) {
		// Structural walk passes; compilation catches the missing code
		// section.
		data := coreModule(
			section(1, 0x01, 0x60, 0x00, 0x00),
			section(3, 0x01, 0x00),
		)
		if _, err := inspect.Inspect(data); err != nil {
			t.Fatalf("Inspect should pass: %v", err)
		}
		if err := inspect.CompileCheck(ctx, data); err == nil {
			t.Fatal("CompileCheck should fail")
		}
	})

	t.Run("component rejected", func(t *testing.T) {
		data := []byte{0x00, 0x61, 0x73, 0x6D, 0x0D, 0x00, 0x01, 0x00}
		if err := inspect.CompileCheck(ctx, data); err == nil {
			t.Fatal("CompileCheck should reject component binaries")
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if err := inspect.CompileCheck(ctx, []byte("not wasm at all")); err == nil {
			t.Fatal("CompileCheck should reject non-wasm input")
		}
	})
}
