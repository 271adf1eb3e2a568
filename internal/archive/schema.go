package archive

import "fmt"

// FieldType enumerates the wire types a schema field can have. Fixed-width
// types live at static offsets inside a record; Str, U64Slice, and StrSlice
// are length-prefixed and appended after the fixed section.
type FieldType uint8

const (
	U8 FieldType = iota + 1
	U16
	U32
	U64
	I64
	Bool
	Str
	U64Slice
	StrSlice
)

func (t FieldType) fixedSize() int {
	switch t {
	case U8, Bool:
		return 1
	case U16:
		return 2
	case U32:
		return 4
	case U64, I64:
		return 8
	default:
		return 0
	}
}

func (t FieldType) variable() bool {
	return t == Str || t == U64Slice || t == StrSlice
}

type Field struct {
	Name string
	Type FieldType
}

// Schema describes the byte layout of one record kind. Offsets of fixed
// fields are computed once at construction; variable fields get slots in
// declaration order. A record is laid out as:
//
//	[version u8][fixed section][var section: u32 len + payload per field][xxh3 u64]
//
// The trailing checksum covers everything before it.
type Schema struct {
	name     string
	fields   []Field
	offsets  []int // byte offset into the fixed section, -1 for variable fields
	varSlot  []int // var-section slot per field, -1 for fixed fields
	fixedLen int
	varCount int
}

const layoutVersion = 1

const (
	headerLen   = 1
	checksumLen = 8
	lenPrefix   = 4
)

func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{
		name:    name,
		fields:  fields,
		offsets: make([]int, len(fields)),
		varSlot: make([]int, len(fields)),
	}

	off := headerLen
	for i, f := range fields {
		if f.Type.variable() {
			s.offsets[i] = -1
			s.varSlot[i] = s.varCount
			s.varCount++
			continue
		}
		s.offsets[i] = off
		s.varSlot[i] = -1
		off += f.Type.fixedSize()
	}
	s.fixedLen = off - headerLen

	return s
}

func (s *Schema) Name() string { return s.name }

func (s *Schema) NumFields() int { return len(s.fields) }

func (s *Schema) field(i int, want FieldType) Field {
	f := s.fields[i]
	if f.Type != want {
		panic(fmt.Sprintf("archive: schema %q field %d (%s) accessed as type %d, declared %d",
			s.name, i, f.Name, want, f.Type))
	}
	return f
}
