package inspect

import (
	"encoding/binary"

	"github.com/wippyai/wasm-bucket/errors"
)

// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
const Magic uint32 = 0x6D736100

// coreVersion is the binary format version used by core modules.
const coreVersion uint32 = 0x1

// componentLayer marks Component Model binaries in the upper half of the
// version field.
const componentLayer uint16 = 0x1

// Inspect parses a wasm binary's section structure. Function bodies are
// skipped; only the parts relevant to the bucket tooling are decoded.
func Inspect(data []byte) (*Report, error) {
	if len(data) < 8 {
		return nil, errors.Truncated(errors.PhaseInspect, "header")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != Magic {
		return nil, errors.InvalidData(errors.PhaseInspect, "invalid wasm magic number")
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	report := &Report{Version: version}

	// Component Model binaries split the version field into version and
	// layer halves. Layer 1 is a component; recognized but not walked.
	if uint16(version>>16) == componentLayer {
		report.Component = true
		report.Version = version & 0xFFFF
		return report, nil
	}

	if version != coreVersion {
		return nil, errors.New(errors.PhaseInspect, errors.KindUnsupported).
			Detail("unsupported wasm version 0x%x", version).
			Build()
	}

	r := newSectionReader(data[8:])
	var lastOrder int

	for r.remaining() > 0 {
		id, err := r.ReadByte()
		if err != nil {
			return nil, errors.Truncated(errors.PhaseInspect, "section header")
		}
		if id > sectionTag {
			return nil, errors.New(errors.PhaseInspect, errors.KindUnsupported).
				Detail("unknown section ID 0x%02x", id).
				Build()
		}

		// Custom sections can appear anywhere; all others must follow the
		// canonical order.
		if id != sectionCustom {
			order := sectionOrder(id)
			if order <= lastOrder {
				return nil, errors.New(errors.PhaseInspect, errors.KindInvalidData).
					Detail("%s section appears out of order", sectionName(id)).
					Build()
			}
			lastOrder = order
		}

		size, err := readLEB128u(r)
		if err != nil {
			return nil, err
		}
		payload, err := r.take(int(size))
		if err != nil {
			return nil, errors.Truncated(errors.PhaseInspect, sectionName(id)+" section")
		}

		report.Sections = append(report.Sections, Section{
			ID:   id,
			Name: sectionName(id),
			Size: size,
		})

		sr := newSectionReader(payload)
		switch id {
		case sectionCustom:
			name, err := readName(sr)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseInspect, errors.KindInvalidData, err, "custom section name")
			}
			report.Customs = append(report.Customs, name)
		case sectionImport:
			if err := parseImports(sr, report); err != nil {
				return nil, err
			}
		case sectionFunction:
			count, err := readLEB128u(sr)
			if err != nil {
				return nil, err
			}
			report.FuncCount = count
		case sectionMemory:
			if err := parseMemories(sr, report); err != nil {
				return nil, err
			}
		case sectionExport:
			if err := parseExports(sr, report); err != nil {
				return nil, err
			}
		case sectionStart:
			report.HasStart = true
		}
	}

	return report, nil
}

func parseImports(r *sectionReader, report *Report) error {
	count, err := readLEB128u(r)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		module, err := readName(r)
		if err != nil {
			return errors.Truncated(errors.PhaseInspect, "import module name")
		}
		name, err := readName(r)
		if err != nil {
			return errors.Truncated(errors.PhaseInspect, "import name")
		}
		kind, err := r.ReadByte()
		if err != nil {
			return errors.Truncated(errors.PhaseInspect, "import descriptor")
		}
		if err := skipImportDesc(r, kind); err != nil {
			return err
		}
		report.Imports = append(report.Imports, Import{
			Module: module,
			Name:   name,
			Kind:   Kind(kind),
		})
	}
	return nil
}

// skipImportDesc consumes the descriptor payload so the next import entry
// starts at the right offset.
func skipImportDesc(r *sectionReader, kind byte) error {
	switch Kind(kind) {
	case KindFunc:
		_, err := readLEB128u(r)
		return err
	case KindTable:
		if _, err := r.ReadByte(); err != nil { // reference type
			return errors.Truncated(errors.PhaseInspect, "table import")
		}
		_, err := readLimits(r)
		return err
	case KindMemory:
		_, err := readLimits(r)
		return err
	case KindGlobal:
		if _, err := r.take(2); err != nil { // value type + mutability
			return errors.Truncated(errors.PhaseInspect, "global import")
		}
		return nil
	case KindTag:
		if _, err := r.ReadByte(); err != nil { // attribute
			return errors.Truncated(errors.PhaseInspect, "tag import")
		}
		_, err := readLEB128u(r)
		return err
	default:
		return errors.New(errors.PhaseInspect, errors.KindInvalidData).
			Detail("unknown import kind 0x%02x", kind).
			Build()
	}
}

func parseMemories(r *sectionReader, report *Report) error {
	count, err := readLEB128u(r)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		mem, err := readLimits(r)
		if err != nil {
			return err
		}
		report.Memories = append(report.Memories, mem)
	}
	return nil
}

func readLimits(r *sectionReader) (Memory, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return Memory{}, errors.Truncated(errors.PhaseInspect, "limits")
	}
	min, err := readLEB128u(r)
	if err != nil {
		return Memory{}, err
	}
	mem := Memory{Min: min}
	if flags&0x1 != 0 {
		max, err := readLEB128u(r)
		if err != nil {
			return Memory{}, err
		}
		mem.Max = max
		mem.HasMax = true
	}
	return mem, nil
}

func parseExports(r *sectionReader, report *Report) error {
	count, err := readLEB128u(r)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		name, err := readName(r)
		if err != nil {
			return errors.Truncated(errors.PhaseInspect, "export name")
		}
		kind, err := r.ReadByte()
		if err != nil {
			return errors.Truncated(errors.PhaseInspect, "export descriptor")
		}
		if _, err := readLEB128u(r); err != nil { // index
			return err
		}
		report.Exports = append(report.Exports, Export{
			Name: name,
			Kind: Kind(kind),
		})
	}
	return nil
}
