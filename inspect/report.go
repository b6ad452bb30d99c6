package inspect

// Section IDs define the binary identifiers for each module section.
// Sections must appear in increasing canonical order (except custom
// sections, which may appear anywhere).
const (
	sectionCustom    byte = 0
	sectionType      byte = 1
	sectionImport    byte = 2
	sectionFunction  byte = 3
	sectionTable     byte = 4
	sectionMemory    byte = 5
	sectionGlobal    byte = 6
	sectionExport    byte = 7
	sectionStart     byte = 8
	sectionElement   byte = 9
	sectionCode      byte = 10
	sectionData      byte = 11
	sectionDataCount byte = 12
	sectionTag       byte = 13
)

// Kind identifies the type of an imported or exported item.
type Kind byte

const (
	KindFunc   Kind = 0
	KindTable  Kind = 1
	KindMemory Kind = 2
	KindGlobal Kind = 3
	KindTag    Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindTable:
		return "table"
	case KindMemory:
		return "memory"
	case KindGlobal:
		return "global"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Section is one section of the binary with its payload size.
type Section struct {
	ID   byte
	Name string
	Size uint32
}

// Import is one imported item.
type Import struct {
	Module string
	Name   string
	Kind   Kind
}

// Export is one exported item.
type Export struct {
	Name string
	Kind Kind
}

// Memory describes one linear memory's limits, in 64KB pages.
type Memory struct {
	Min    uint32
	Max    uint32
	HasMax bool
}

// Report is the result of inspecting a wasm binary.
type Report struct {
	// Version is the binary format version field.
	Version uint32

	// Component is true for Component Model binaries (layer 1). Those are
	// recognized but not walked further.
	Component bool

	Sections  []Section
	Customs   []string
	Imports   []Import
	Exports   []Export
	Memories  []Memory
	HasStart  bool
	FuncCount uint32
}

// Export returns the named export, if present.
func (r *Report) Export(name string) (Export, bool) {
	for _, e := range r.Exports {
		if e.Name == name {
			return e, true
		}
	}
	return Export{}, false
}

// ImportsFrom reports whether any import comes from the given module name.
func (r *Report) ImportsFrom(module string) bool {
	for _, imp := range r.Imports {
		if imp.Module == module {
			return true
		}
	}
	return false
}

func sectionName(id byte) string {
	switch id {
	case sectionCustom:
		return "custom"
	case sectionType:
		return "type"
	case sectionImport:
		return "import"
	case sectionFunction:
		return "function"
	case sectionTable:
		return "table"
	case sectionMemory:
		return "memory"
	case sectionGlobal:
		return "global"
	case sectionExport:
		return "export"
	case sectionStart:
		return "start"
	case sectionElement:
		return "element"
	case sectionCode:
		return "code"
	case sectionData:
		return "data"
	case sectionDataCount:
		return "data count"
	case sectionTag:
		return "tag"
	default:
		return "unknown"
	}
}

// sectionOrder returns the canonical ordering for a section ID. The spec
// order differs from raw section IDs (tag and data count sit mid-stream).
func sectionOrder(id byte) int {
	switch id {
	case sectionType:
		return 1
	case sectionImport:
		return 2
	case sectionFunction:
		return 3
	case sectionTable:
		return 4
	case sectionMemory:
		return 5
	case sectionTag:
		return 6
	case sectionGlobal:
		return 7
	case sectionExport:
		return 8
	case sectionStart:
		return 9
	case sectionElement:
		return 10
	case sectionDataCount:
		return 11
	case sectionCode:
		return 12
	case sectionData:
		return 13
	default:
		return 0
	}
}
