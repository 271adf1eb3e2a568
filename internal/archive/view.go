package archive

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/zeebo/xxh3"
)

// View is a read-only window over one encoded record. Accessors borrow from
// the underlying buffer; the View must not outlive it. Layout and checksum
// are validated once in Decode, accessors perform no further checks beyond
// field-type assertions.
type View struct {
	schema *Schema
	buf    []byte
	varOff []uint32 // absolute offset of each var field's length prefix
}

// Decode validates bytes against the schema and returns a zero-copy view.
func (s *Schema) Decode(buf []byte) (*View, error) {
	minLen := headerLen + s.fixedLen + s.varCount*lenPrefix + checksumLen
	if len(buf) < minLen {
		return nil, &ValidationError{Schema: s.name, Reason: fmt.Sprintf("short record: %d bytes", len(buf))}
	}
	if buf[0] != layoutVersion {
		return nil, &ValidationError{Schema: s.name, Reason: fmt.Sprintf("unknown layout version %d", buf[0])}
	}

	body := buf[:len(buf)-checksumLen]
	sum := binary.LittleEndian.Uint64(buf[len(buf)-checksumLen:])
	if xxh3.Hash(body) != sum {
		return nil, &ValidationError{Schema: s.name, Reason: "checksum mismatch"}
	}

	v := &View{schema: s, buf: buf}
	if s.varCount > 0 {
		v.varOff = make([]uint32, s.varCount)
	}

	off := headerLen + s.fixedLen
	slot := 0
	for i, f := range s.fields {
		if !f.Type.variable() {
			continue
		}
		if off+lenPrefix > len(body) {
			return nil, &ValidationError{Schema: s.name, Reason: fmt.Sprintf("field %s: truncated length prefix", f.Name)}
		}
		v.varOff[slot] = uint32(off)
		n := int(binary.LittleEndian.Uint32(buf[off:]))
		switch f.Type {
		case U64Slice:
			off += lenPrefix + n*8
		case StrSlice:
			// n counts items; each carries its own length prefix
			off += lenPrefix
			for k := 0; k < n; k++ {
				if off+lenPrefix > len(body) {
					return nil, &ValidationError{Schema: s.name, Reason: fmt.Sprintf("field %s: truncated item prefix", f.Name)}
				}
				off += lenPrefix + int(binary.LittleEndian.Uint32(buf[off:]))
			}
		default:
			off += lenPrefix + n
		}
		if off > len(body) {
			return nil, &ValidationError{Schema: s.name, Reason: fmt.Sprintf("field %s: payload exceeds record", s.fields[i].Name)}
		}
		slot++
	}
	if off != len(body) {
		return nil, &ValidationError{Schema: s.name, Reason: "trailing bytes after last field"}
	}

	return v, nil
}

func (v *View) Schema() *Schema { return v.schema }

// Bytes returns the encoded record backing this view.
func (v *View) Bytes() []byte { return v.buf }

func (v *View) fixed(i int, t FieldType) []byte {
	v.schema.field(i, t)
	off := v.schema.offsets[i]
	return v.buf[off : off+t.fixedSize()]
}

func (v *View) varBody(i int, t FieldType) []byte {
	v.schema.field(i, t)
	off := v.varOff[v.schema.varSlot[i]]
	n := binary.LittleEndian.Uint32(v.buf[off:])
	if t == U64Slice {
		n *= 8
	}
	return v.buf[off+lenPrefix : off+lenPrefix+n]
}

func (v *View) U8(i int) uint8   { return v.fixed(i, U8)[0] }
func (v *View) Bool(i int) bool  { return v.fixed(i, Bool)[0] != 0 }
func (v *View) U16(i int) uint16 { return binary.LittleEndian.Uint16(v.fixed(i, U16)) }
func (v *View) U32(i int) uint32 { return binary.LittleEndian.Uint32(v.fixed(i, U32)) }
func (v *View) U64(i int) uint64 { return binary.LittleEndian.Uint64(v.fixed(i, U64)) }
func (v *View) I64(i int) int64  { return int64(binary.LittleEndian.Uint64(v.fixed(i, I64))) }

// Str borrows directly from the record buffer without copying.
func (v *View) Str(i int) string {
	b := v.varBody(i, Str)
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// Strs decodes the string-slice field; each entry borrows from the buffer
// but the slice header itself is freshly allocated.
func (v *View) Strs(i int) []string {
	v.schema.field(i, StrSlice)
	off := v.varOff[v.schema.varSlot[i]]
	n := binary.LittleEndian.Uint32(v.buf[off:])
	if n == 0 {
		return nil
	}
	out := make([]string, n)
	off += lenPrefix
	for j := range out {
		m := binary.LittleEndian.Uint32(v.buf[off:])
		off += lenPrefix
		if m > 0 {
			b := v.buf[off : off+m]
			out[j] = unsafe.String(&b[0], len(b))
		}
		off += m
	}
	return out
}

// U64s decodes the slice field into a fresh slice; entries are not aligned
// in the buffer, so a borrowing view is not possible here.
func (v *View) U64s(i int) []uint64 {
	b := v.varBody(i, U64Slice)
	if len(b) == 0 {
		return nil
	}
	out := make([]uint64, len(b)/8)
	for j := range out {
		out[j] = binary.LittleEndian.Uint64(b[j*8:])
	}
	return out
}

// Mutate applies fn through a sealed handle that only permits fixed-width
// field writes, then refreshes the checksum. The record length is unchanged
// by construction; any resizing update has to go through a decode, mutate,
// re-encode cycle instead.
func (v *View) Mutate(fn func(*Seal) error) error {
	if err := fn(&Seal{v: v}); err != nil {
		return err
	}
	body := v.buf[:len(v.buf)-checksumLen]
	binary.LittleEndian.PutUint64(v.buf[len(v.buf)-checksumLen:], xxh3.Hash(body))
	return nil
}

// Seal is a mutation handle restricted to layout-preserving writes.
type Seal struct {
	v *View
}

func (s *Seal) SetU8(i int, val uint8)   { s.v.fixed(i, U8)[0] = val }
func (s *Seal) SetU16(i int, val uint16) { binary.LittleEndian.PutUint16(s.v.fixed(i, U16), val) }
func (s *Seal) SetU32(i int, val uint32) { binary.LittleEndian.PutUint32(s.v.fixed(i, U32), val) }
func (s *Seal) SetU64(i int, val uint64) { binary.LittleEndian.PutUint64(s.v.fixed(i, U64), val) }
func (s *Seal) SetI64(i int, val int64) {
	binary.LittleEndian.PutUint64(s.v.fixed(i, I64), uint64(val))
}

func (s *Seal) SetBool(i int, val bool) {
	b := s.v.fixed(i, Bool)
	if val {
		b[0] = 1
	} else {
		b[0] = 0
	}
}

func (s *Seal) U8(i int) uint8   { return s.v.U8(i) }
func (s *Seal) U16(i int) uint16 { return s.v.U16(i) }
func (s *Seal) U32(i int) uint32 { return s.v.U32(i) }
func (s *Seal) U64(i int) uint64 { return s.v.U64(i) }
func (s *Seal) I64(i int) int64  { return s.v.I64(i) }
func (s *Seal) Bool(i int) bool  { return s.v.Bool(i) }
