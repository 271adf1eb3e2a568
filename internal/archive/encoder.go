package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"
)

// Marshaler is implemented by record types that can be archived.
// MarshalArchive must write every schema field in declaration order.
type Marshaler interface {
	Schema() *Schema
	MarshalArchive(w *Writer)
}

// Encode serializes a single record.
func Encode(m Marshaler) ([]byte, error) {
	var enc Encoder
	return enc.Encode(m)
}

// Encoder serializes records of one or more batches into a shared backing
// buffer. Slices returned by Encode stay valid after further calls: growth
// reallocates the backing array but never touches already returned bytes.
// The zero value is ready to use.
type Encoder struct {
	buf []byte
}

func (e *Encoder) Encode(m Marshaler) ([]byte, error) {
	s := m.Schema()
	start := len(e.buf)

	e.buf = append(e.buf, layoutVersion)
	e.buf = append(e.buf, make([]byte, s.fixedLen)...)

	w := Writer{schema: s, buf: e.buf, start: start}
	m.MarshalArchive(&w)
	if w.err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.name, w.err)
	}
	if w.next != len(s.fields) {
		return nil, fmt.Errorf("encode %s: %d of %d fields written", s.name, w.next, len(s.fields))
	}

	sum := xxh3.Hash(w.buf[start:])
	e.buf = binary.LittleEndian.AppendUint64(w.buf, sum)

	return e.buf[start:len(e.buf):len(e.buf)], nil
}

// Writer receives field values in schema order. Type mismatches and
// over/underflow of the field list are reported through the Encoder.
type Writer struct {
	schema *Schema
	buf    []byte
	start  int
	next   int
	err    error
}

func (w *Writer) fixed(t FieldType) []byte {
	if w.err != nil {
		return nil
	}
	if w.next >= len(w.schema.fields) {
		w.err = fmt.Errorf("field %d out of range", w.next)
		return nil
	}
	f := w.schema.fields[w.next]
	if f.Type != t {
		w.err = fmt.Errorf("field %d (%s): wrote type %d, declared %d", w.next, f.Name, t, f.Type)
		return nil
	}
	off := w.start + w.schema.offsets[w.next]
	w.next++
	return w.buf[off : off+t.fixedSize()]
}

func (w *Writer) U8(v uint8) {
	if b := w.fixed(U8); b != nil {
		b[0] = v
	}
}

func (w *Writer) U16(v uint16) {
	if b := w.fixed(U16); b != nil {
		binary.LittleEndian.PutUint16(b, v)
	}
}

func (w *Writer) U32(v uint32) {
	if b := w.fixed(U32); b != nil {
		binary.LittleEndian.PutUint32(b, v)
	}
}

func (w *Writer) U64(v uint64) {
	if b := w.fixed(U64); b != nil {
		binary.LittleEndian.PutUint64(b, v)
	}
}

func (w *Writer) I64(v int64) {
	if b := w.fixed(I64); b != nil {
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}

func (w *Writer) Bool(v bool) {
	if b := w.fixed(Bool); b != nil {
		if v {
			b[0] = 1
		} else {
			b[0] = 0
		}
	}
}

func (w *Writer) variable(t FieldType) bool {
	if w.err != nil {
		return false
	}
	if w.next >= len(w.schema.fields) {
		w.err = fmt.Errorf("field %d out of range", w.next)
		return false
	}
	f := w.schema.fields[w.next]
	if f.Type != t {
		w.err = fmt.Errorf("field %d (%s): wrote type %d, declared %d", w.next, f.Name, t, f.Type)
		return false
	}
	w.next++
	return true
}

func (w *Writer) Str(v string) {
	if !w.variable(Str) {
		return
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *Writer) U64s(v []uint64) {
	if !w.variable(U64Slice) {
		return
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(v)))
	for _, u := range v {
		w.buf = binary.LittleEndian.AppendUint64(w.buf, u)
	}
}

func (w *Writer) Strs(v []string) {
	if !w.variable(StrSlice) {
		return
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(v)))
	for _, s := range v {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(s)))
		w.buf = append(w.buf, s...)
	}
}
