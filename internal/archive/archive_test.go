package archive

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

var probeSchema = NewSchema("probe",
	Field{"id", U64},
	Field{"name", Str},
	Field{"position", I64},
	Field{"color", U32},
	Field{"flags", U16},
	Field{"level", U8},
	Field{"active", Bool},
	Field{"refs", U64Slice},
	Field{"tags", StrSlice},
)

const (
	probeID = iota
	probeName
	probePosition
	probeColor
	probeFlags
	probeLevel
	probeActive
	probeRefs
	probeTags
)

type probe struct {
	ID       uint64
	Name     string
	Position int64
	Color    uint32
	Flags    uint16
	Level    uint8
	Active   bool
	Refs     []uint64
	Tags     []string
}

func (p *probe) Schema() *Schema { return probeSchema }

func (p *probe) MarshalArchive(w *Writer) {
	w.U64(p.ID)
	w.Str(p.Name)
	w.I64(p.Position)
	w.U32(p.Color)
	w.U16(p.Flags)
	w.U8(p.Level)
	w.Bool(p.Active)
	w.U64s(p.Refs)
	w.Strs(p.Tags)
}

func TestRoundTrip(t *testing.T) {
	in := &probe{
		ID:       982374,
		Name:     "general",
		Position: -3,
		Color:    0xff00ff,
		Flags:    12,
		Level:    7,
		Active:   true,
		Refs:     []uint64{1, 2, 9000000000000000000},
		Tags:     []string{"alpha", "", "gamma"},
	}

	buf, err := Encode(in)
	require.NoError(t, err)

	v, err := probeSchema.Decode(buf)
	require.NoError(t, err)

	require.Equal(t, in.ID, v.U64(probeID))
	require.Equal(t, in.Name, v.Str(probeName))
	require.Equal(t, in.Position, v.I64(probePosition))
	require.Equal(t, in.Color, v.U32(probeColor))
	require.Equal(t, in.Flags, v.U16(probeFlags))
	require.Equal(t, in.Level, v.U8(probeLevel))
	require.Equal(t, in.Active, v.Bool(probeActive))
	require.Equal(t, in.Refs, v.U64s(probeRefs))
	require.Equal(t, in.Tags, v.Strs(probeTags))
}

func TestRoundTripEmptyVariableFields(t *testing.T) {
	buf, err := Encode(&probe{ID: 1})
	require.NoError(t, err)

	v, err := probeSchema.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, "", v.Str(probeName))
	require.Nil(t, v.U64s(probeRefs))
	require.Nil(t, v.Strs(probeTags))
}

func TestEncoderSharedBuffer(t *testing.T) {
	var enc Encoder

	first, err := enc.Encode(&probe{ID: 1, Name: "first"})
	require.NoError(t, err)
	snapshot := append([]byte(nil), first...)

	for i := uint64(2); i < 50; i++ {
		_, err := enc.Encode(&probe{ID: i, Name: "grow the backing array well past its cap"})
		require.NoError(t, err)
	}

	require.Equal(t, snapshot, first)

	v, err := probeSchema.Decode(first)
	require.NoError(t, err)
	require.Equal(t, uint64(1), v.U64(probeID))
	require.Equal(t, "first", v.Str(probeName))
}

func TestEncodeDeterministic(t *testing.T) {
	p := &probe{ID: 5, Name: "n", Refs: []uint64{4}}

	a, err := Encode(p)
	require.NoError(t, err)
	b, err := Encode(p)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEncodeFieldOrderMismatch(t *testing.T) {
	_, err := Encode(marshalFunc(func(w *Writer) {
		w.Str("out of order")
	}))
	require.Error(t, err)
}

func TestEncodeMissingFields(t *testing.T) {
	_, err := Encode(marshalFunc(func(w *Writer) {
		w.U64(1)
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "fields written")
}

type marshalFunc func(w *Writer)

func (f marshalFunc) Schema() *Schema          { return probeSchema }
func (f marshalFunc) MarshalArchive(w *Writer) { f(w) }

func TestDecodeRejectsCorruption(t *testing.T) {
	buf, err := Encode(&probe{ID: 42, Name: "x", Refs: []uint64{1}})
	require.NoError(t, err)

	cases := map[string]func([]byte) []byte{
		"short":           func(b []byte) []byte { return b[:4] },
		"empty":           func(b []byte) []byte { return nil },
		"bad version":     func(b []byte) []byte { b[0] = 99; return b },
		"flipped payload": func(b []byte) []byte { b[5] ^= 0xff; return b },
		"flipped checksum": func(b []byte) []byte {
			b[len(b)-1] ^= 0xff
			return b
		},
		"truncated var section": func(b []byte) []byte {
			cut := append([]byte(nil), b[:len(b)-10]...)
			return append(cut, b[len(b)-checksumLen:]...)
		},
	}

	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			cp := corrupt(append([]byte(nil), buf...))
			_, err := probeSchema.Decode(cp)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestDecodeRejectsOversizedItemLength(t *testing.T) {
	buf, err := Encode(&probe{ID: 1, Tags: []string{"ab"}})
	require.NoError(t, err)

	// inflate the tag's item length and repair the checksum so the walk
	// itself has to catch the overflow
	itemLenOff := len(buf) - checksumLen - len("ab") - lenPrefix
	binary.LittleEndian.PutUint32(buf[itemLenOff:], 1<<20)
	body := buf[:len(buf)-checksumLen]
	binary.LittleEndian.PutUint64(buf[len(buf)-checksumLen:], xxh3.Hash(body))

	_, err = probeSchema.Decode(buf)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestMutateFixedFields(t *testing.T) {
	buf, err := Encode(&probe{ID: 7, Name: "keep", Position: 10, Active: false})
	require.NoError(t, err)

	v, err := probeSchema.Decode(buf)
	require.NoError(t, err)

	err = v.Mutate(func(s *Seal) error {
		s.SetI64(probePosition, s.I64(probePosition)+1)
		s.SetBool(probeActive, true)
		s.SetU32(probeColor, 0xabcdef)
		return nil
	})
	require.NoError(t, err)

	// the mutated bytes must decode cleanly again
	v2, err := probeSchema.Decode(v.Bytes())
	require.NoError(t, err)
	require.Equal(t, int64(11), v2.I64(probePosition))
	require.True(t, v2.Bool(probeActive))
	require.Equal(t, uint32(0xabcdef), v2.U32(probeColor))
	require.Equal(t, "keep", v2.Str(probeName))
}

func TestMutatePanicsOnVariableField(t *testing.T) {
	buf, err := Encode(&probe{ID: 1})
	require.NoError(t, err)
	v, err := probeSchema.Decode(buf)
	require.NoError(t, err)

	require.Panics(t, func() {
		_ = v.Mutate(func(s *Seal) error {
			s.SetU64(probeName, 0)
			return nil
		})
	})
}
