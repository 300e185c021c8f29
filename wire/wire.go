// Package wire implements the on-disk encodings of spec.md §6's wire
// formats plus a small per-block manifest, grounded on the teacher's
// codec.shardMeta marshal/unmarshal pattern (codec/shard_meta.go).
package wire

import (
	"encoding/binary"

	"github.com/rolandomar/kodo/errs"
	"github.com/rolandomar/kodo/field"
)

// FieldID names one of the three field implementations this module ships,
// so a block manifest can record which one a block was built over.
type FieldID byte

const (
	FieldBinary FieldID = 0
	FieldGF256  FieldID = 1
	FieldGF65536 FieldID = 2
)

// Resolve returns the field.Field implementation for id.
func (id FieldID) Resolve() field.Field {
	switch id {
	case FieldBinary:
		return field.Binary{}
	case FieldGF256:
		return field.GF256{}
	case FieldGF65536:
		return field.GF65536{}
	default:
		panic("wire: unknown field id")
	}
}

// BlockMeta is the per-block manifest written at the head of a block's
// shard, ahead of its symbol records: enough to reconstruct a coder and to
// know where this block's bytes sit inside the original object.
type BlockMeta struct {
	Field      FieldID
	Symbols    uint32
	SymbolSize uint32
	ByteOffset uint32
	BytesUsed  uint32
}

// Marshal encodes m as a fixed 17-byte record.
func (m BlockMeta) Marshal() []byte {
	buf := make([]byte, 17)
	buf[0] = byte(m.Field)
	binary.BigEndian.PutUint32(buf[1:5], m.Symbols)
	binary.BigEndian.PutUint32(buf[5:9], m.SymbolSize)
	binary.BigEndian.PutUint32(buf[9:13], m.ByteOffset)
	binary.BigEndian.PutUint32(buf[13:17], m.BytesUsed)
	return buf
}

// UnmarshalBlockMeta decodes a record written by BlockMeta.Marshal.
func UnmarshalBlockMeta(data []byte) (BlockMeta, error) {
	if len(data) != 17 {
		return BlockMeta{}, errs.New("unmarshal block meta: want 17 bytes, got %d", len(data))
	}
	return BlockMeta{
		Field:      FieldID(data[0]),
		Symbols:    binary.BigEndian.Uint32(data[1:5]),
		SymbolSize: binary.BigEndian.Uint32(data[5:9]),
		ByteOffset: binary.BigEndian.Uint32(data[9:13]),
		BytesUsed:  binary.BigEndian.Uint32(data[13:17]),
	}, nil
}

// symbolKind tags a symbol record as systematic or coded, per spec.md §6's
// two wire formats.
type symbolKind byte

const (
	kindSystematic symbolKind = 0
	kindCoded      symbolKind = 1
)

// MarshalSystematic encodes a systematic symbol: (symbol_index, symbol_data),
// per spec.md §6.
func MarshalSystematic(index uint32, symbolData []byte) []byte {
	buf := make([]byte, 5+len(symbolData))
	buf[0] = byte(kindSystematic)
	binary.BigEndian.PutUint32(buf[1:5], index)
	copy(buf[5:], symbolData)
	return buf
}

// MarshalCoded encodes a coded symbol: (symbol_id, symbol_data), per
// spec.md §6.
func MarshalCoded(symbolID, symbolData []byte) []byte {
	buf := make([]byte, 1+len(symbolID)+len(symbolData))
	buf[0] = byte(kindCoded)
	copy(buf[1:], symbolID)
	copy(buf[1+len(symbolID):], symbolData)
	return buf
}

// Symbol is a decoded wire-format record: either a systematic symbol
// (SymbolID is nil, Index valid) or a coded symbol (Index is ignored).
type Symbol struct {
	Coded      bool
	Index      uint32
	SymbolID   []byte
	SymbolData []byte
}

// UnmarshalSymbol decodes a record written by MarshalSystematic or
// MarshalCoded. vectorLength is the coefficient vector's packed byte
// length for the block's field and symbol count, needed to split a coded
// record's symbol_id from its symbol_data.
func UnmarshalSymbol(data []byte, vectorLength int) (Symbol, error) {
	if len(data) < 1 {
		return Symbol{}, errs.New("unmarshal symbol: empty record")
	}
	switch symbolKind(data[0]) {
	case kindSystematic:
		if len(data) < 5 {
			return Symbol{}, errs.New("unmarshal symbol: systematic record too short")
		}
		return Symbol{
			Coded:      false,
			Index:      binary.BigEndian.Uint32(data[1:5]),
			SymbolData: data[5:],
		}, nil
	case kindCoded:
		if len(data) < 1+vectorLength {
			return Symbol{}, errs.New("unmarshal symbol: coded record too short")
		}
		return Symbol{
			Coded:      true,
			SymbolID:   data[1 : 1+vectorLength],
			SymbolData: data[1+vectorLength:],
		}, nil
	default:
		return Symbol{}, errs.New("unmarshal symbol: unknown kind %d", data[0])
	}
}

// recordLength returns the byte length of a single symbol record given its
// kind, the block's packed vector length and symbol size.
func recordLength(kind symbolKind, vectorLength, symbolSize int) int {
	if kind == kindSystematic {
		return 5 + symbolSize
	}
	return 1 + vectorLength + symbolSize
}

// MarshalBlock combines a block's manifest and symbol records into a single
// shard, grounded on the teacher's shardMeta.marshal/metaToShards pattern of
// writing a shard's header followed directly by its payload to one file.
// Each element of records must be a record produced by MarshalSystematic or
// MarshalCoded.
func MarshalBlock(meta BlockMeta, records [][]byte) []byte {
	buf := append([]byte(nil), meta.Marshal()...)
	for _, r := range records {
		buf = append(buf, r...)
	}
	return buf
}

// UnmarshalBlock splits a shard written by MarshalBlock back into its
// manifest and symbol records. Records are parsed sequentially: each one's
// length is derived from its kind byte plus the manifest's field/symbol
// count/symbol size, so systematic and coded records may be mixed freely
// within the same shard.
func UnmarshalBlock(data []byte) (BlockMeta, []Symbol, error) {
	if len(data) < 17 {
		return BlockMeta{}, nil, errs.New("unmarshal block: shard too short")
	}
	meta, err := UnmarshalBlockMeta(data[:17])
	if err != nil {
		return BlockMeta{}, nil, err
	}

	f := meta.Field.Resolve()
	vectorLength := f.VectorLength(int(meta.Symbols))
	symbolSize := int(meta.SymbolSize)

	var symbols []Symbol
	pos := 17
	for pos < len(data) {
		kind := symbolKind(data[pos])
		if kind != kindSystematic && kind != kindCoded {
			return BlockMeta{}, nil, errs.New("unmarshal block: unknown record kind %d", data[pos])
		}
		length := recordLength(kind, vectorLength, symbolSize)
		if pos+length > len(data) {
			return BlockMeta{}, nil, errs.New("unmarshal block: truncated record")
		}
		sym, err := UnmarshalSymbol(data[pos:pos+length], vectorLength)
		if err != nil {
			return BlockMeta{}, nil, err
		}
		symbols = append(symbols, sym)
		pos += length
	}
	return meta, symbols, nil
}
