package wasmbucket

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"time"
)

// ManifestFile is the digest manifest kept at the bucket root. It is the
// only regular file the bucket convention allows outside module directories.
const ManifestFile = "bucket.toml"

// Extensions of the artifacts that make up a module.
const (
	SourceExt = ".rs"
	BinaryExt = ".wasm"

	// MetaExt is the optional sidecar interface declaration. Core wasm
	// binaries carry no type metadata, so the declared interface rides
	// alongside as WIT text.
	MetaExt = ".wit"
)

// Artifact is one file belonging to a module.
type Artifact struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Exists reports whether the artifact was found on disk during the scan.
func (a Artifact) Exists() bool {
	return a.Path != ""
}

// Digest returns the hex-encoded SHA-256 of the artifact's content.
func (a Artifact) Digest() (string, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Module is one entry of the bucket: a named pair of artifacts sharing a
// base name, located together in one subdirectory of the bucket. The name
// is the module's identity.
type Module struct {
	Name   string
	Dir    string
	Source Artifact
	Binary Artifact

	// Meta is the optional <name>.wit sidecar. Zero value when absent.
	Meta Artifact
}

// Complete reports whether both required artifacts are present.
func (m *Module) Complete() bool {
	return m.Source.Exists() && m.Binary.Exists()
}

// HasMeta reports whether the module carries an interface declaration.
func (m *Module) HasMeta() bool {
	return m.Meta.Exists()
}
