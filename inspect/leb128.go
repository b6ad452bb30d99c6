package inspect

import (
	"io"

	"github.com/wippyai/wasm-bucket/errors"
)

// readLEB128u reads an unsigned 32-bit LEB128 value.
func readLEB128u(r io.ByteReader) (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, errors.Truncated(errors.PhaseInspect, "LEB128 value")
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, errors.InvalidData(errors.PhaseInspect, "LEB128 value overflows 32 bits")
		}
	}
}

// readName reads a length-prefixed UTF-8 name.
func readName(r *sectionReader) (string, error) {
	n, err := readLEB128u(r)
	if err != nil {
		return "", err
	}
	buf, err := r.take(int(n))
	if err != nil {
		return "", errors.Truncated(errors.PhaseInspect, "name")
	}
	return string(buf), nil
}

// sectionReader walks one section payload with bounds checking.
type sectionReader struct {
	data []byte
	pos  int
}

func newSectionReader(data []byte) *sectionReader {
	return &sectionReader{data: data}
}

func (r *sectionReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *sectionReader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, io.EOF
	}
	buf := r.data[r.pos : r.pos+n]
	r.pos += n
	return buf, nil
}

func (r *sectionReader) remaining() int {
	return len(r.data) - r.pos
}
