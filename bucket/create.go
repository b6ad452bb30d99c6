package bucket

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	wasmbucket "github.com/wippyai/wasm-bucket"
	"github.com/wippyai/wasm-bucket/errors"
)

// sourceStub seeds a freshly created module so the layout check points at
// the missing binary rather than an empty directory.
const sourceStub = `// Standalone module. Compile to a sibling .wasm with the same base name.
`

// Create makes a new module directory with a source stub. The binary is
// expected to be compiled and dropped in by the operator; until then the
// module scans as missing_binary.
func Create(b *Bucket, name string) (wasmbucket.Module, error) {
	if err := ValidateName(name); err != nil {
		return wasmbucket.Module{}, err
	}

	dir := filepath.Join(b.root, name)
	if _, err := os.Stat(dir); err == nil {
		return wasmbucket.Module{}, errors.AlreadyExists(errors.PhaseScan, name)
	} else if !os.IsNotExist(err) {
		return wasmbucket.Module{}, errors.IO(errors.PhaseScan, dir, err)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return wasmbucket.Module{}, errors.IO(errors.PhaseScan, dir, err)
	}

	srcPath := filepath.Join(dir, name+wasmbucket.SourceExt)
	if err := os.WriteFile(srcPath, []byte(sourceStub), 0o644); err != nil {
		// Roll back the directory so a failed create leaves no half module.
		os.Remove(dir)
		return wasmbucket.Module{}, errors.IO(errors.PhaseScan, srcPath, err)
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return wasmbucket.Module{}, errors.IO(errors.PhaseScan, srcPath, err)
	}

	Logger().Info("module created", zap.String("name", name), zap.String("dir", dir))

	return wasmbucket.Module{
		Name: name,
		Dir:  dir,
		Source: wasmbucket.Artifact{
			Path:    srcPath,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		},
	}, nil
}

// Remove deletes a module directory and everything in it.
func Remove(b *Bucket, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := filepath.Join(b.root, name)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound(errors.PhaseScan, "module", name)
		}
		return errors.IO(errors.PhaseScan, dir, err)
	}
	if !info.IsDir() {
		return errors.NotDirectory(errors.PhaseScan, dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return errors.IO(errors.PhaseScan, dir, err)
	}

	Logger().Info("module removed", zap.String("name", name))
	return nil
}
