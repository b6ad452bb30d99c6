package bucket

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	wasmbucket "github.com/wippyai/wasm-bucket"
	"github.com/wippyai/wasm-bucket/errors"
)

// Bucket is a handle to a bucket directory.
type Bucket struct {
	root string
}

// Open binds a bucket directory. The directory must exist.
func Open(root string) (*Bucket, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(errors.PhaseScan, "bucket", root)
		}
		return nil, errors.IO(errors.PhaseScan, root, err)
	}
	if !info.IsDir() {
		return nil, errors.NotDirectory(errors.PhaseScan, root)
	}
	return &Bucket{root: root}, nil
}

// Root returns the bucket's root directory.
func (b *Bucket) Root() string {
	return b.root
}

// Inventory is the result of scanning a bucket: the modules found, in
// lexicographic name order, and every layout deviation encountered.
type Inventory struct {
	Modules []wasmbucket.Module
	Issues  []Issue
}

// Clean reports whether the scan found no layout issues.
func (inv *Inventory) Clean() bool {
	return len(inv.Issues) == 0
}

// Module returns the named module, if the scan found it.
func (inv *Inventory) Module(name string) (wasmbucket.Module, bool) {
	for _, m := range inv.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return wasmbucket.Module{}, false
}

// Names returns the module names in order.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.Modules))
	for i, m := range inv.Modules {
		names[i] = m.Name
	}
	return names
}

// Scan walks the bucket and builds an inventory. Modules with missing
// artifacts are still included when their directory is identifiable; the
// gaps show up as issues and as zero-valued artifacts.
func (b *Bucket) Scan(ctx context.Context) (*Inventory, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, errors.IO(errors.PhaseScan, b.root, err)
	}

	inv := &Inventory{}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		if name == wasmbucket.ManifestFile || strings.HasPrefix(name, ".") {
			continue
		}

		if !entry.IsDir() {
			inv.Issues = append(inv.Issues, Issue{
				Path:   name,
				Kind:   errors.KindStrayEntry,
				Detail: "regular file at bucket root",
			})
			continue
		}

		if err := ValidateName(name); err != nil {
			inv.Issues = append(inv.Issues, Issue{
				Module: name,
				Path:   name,
				Kind:   errors.KindInvalidName,
				Detail: err.Error(),
			})
			continue
		}

		mod, issues, err := b.scanModule(name)
		if err != nil {
			return nil, err
		}
		inv.Modules = append(inv.Modules, mod)
		inv.Issues = append(inv.Issues, issues...)
	}

	sort.Slice(inv.Modules, func(i, j int) bool {
		return inv.Modules[i].Name < inv.Modules[j].Name
	})

	Logger().Debug("bucket scanned",
		zap.String("root", b.root),
		zap.Int("modules", len(inv.Modules)),
		zap.Int("issues", len(inv.Issues)))

	return inv, nil
}

// scanModule reads one module directory and classifies its entries.
func (b *Bucket) scanModule(name string) (wasmbucket.Module, []Issue, error) {
	dir := filepath.Join(b.root, name)
	mod := wasmbucket.Module{Name: name, Dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return mod, nil, errors.IO(errors.PhaseScan, dir, err)
	}

	var issues []Issue
	for _, entry := range entries {
		entryName := entry.Name()
		if strings.HasPrefix(entryName, ".") {
			continue
		}

		rel := filepath.Join(name, entryName)
		if entry.IsDir() {
			issues = append(issues, Issue{
				Module: name,
				Path:   rel,
				Kind:   errors.KindStrayEntry,
				Detail: "nested directory inside module",
			})
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return mod, issues, errors.IO(errors.PhaseScan, filepath.Join(dir, entryName), err)
		}

		art := wasmbucket.Artifact{
			Path:    filepath.Join(dir, entryName),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}

		switch entryName {
		case name + wasmbucket.SourceExt:
			mod.Source = art
		case name + wasmbucket.BinaryExt:
			mod.Binary = art
		case name + wasmbucket.MetaExt:
			mod.Meta = art
		default:
			issues = append(issues, Issue{
				Module: name,
				Path:   rel,
				Kind:   errors.KindStrayEntry,
				Detail: "base name does not match module directory",
			})
		}
	}

	if !mod.Source.Exists() {
		issues = append(issues, Issue{
			Module: name,
			Path:   name,
			Kind:   errors.KindMissingSource,
			Detail: name + wasmbucket.SourceExt + " not found",
		})
	}
	if !mod.Binary.Exists() {
		issues = append(issues, Issue{
			Module: name,
			Path:   name,
			Kind:   errors.KindMissingBinary,
			Detail: name + wasmbucket.BinaryExt + " not found",
		})
	}

	return mod, issues, nil
}
