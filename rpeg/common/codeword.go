package common

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-rpeg-codec/bitpack"
)

// TryPack packs qb into a codeword. It returns false if any field is out of
// range for its width.
func TryPack(qb QuantizedBlock) (uint32, bool) {
	var word uint64
	ok := true
	set := func(width, lsb uint, v uint64) {
		if ok {
			word, ok = bitpack.SetUnsigned(word, width, lsb, v)
		}
	}
	setSigned := func(width, lsb uint, v int64) {
		if ok {
			word, ok = bitpack.SetSigned(word, width, lsb, v)
		}
	}

	set(ChromaWidth, PrLSB, qb.IndexPr)
	set(ChromaWidth, PbLSB, qb.IndexPb)
	setSigned(BCDWidth, DLSB, qb.D)
	setSigned(BCDWidth, CLSB, qb.C)
	setSigned(BCDWidth, BLSB, qb.B)
	set(AWidth, ALSB, qb.A)

	return uint32(word), ok
}

// Pack packs qb into a codeword. The quantizer never produces
// out-of-range fields, so a field that does not fit panics.
func Pack(qb QuantizedBlock) uint32 {
	word, ok := TryPack(qb)
	if !ok {
		panic(fmt.Sprintf("rpeg: quantized block %+v does not fit a codeword", qb))
	}
	return word
}

// Unpack extracts the fields of a codeword.
func Unpack(codeword uint32) QuantizedBlock {
	word := uint64(codeword)
	return QuantizedBlock{
		A:       bitpack.GetUnsigned(word, AWidth, ALSB),
		B:       bitpack.GetSigned(word, BCDWidth, BLSB),
		C:       bitpack.GetSigned(word, BCDWidth, CLSB),
		D:       bitpack.GetSigned(word, BCDWidth, DLSB),
		IndexPb: bitpack.GetUnsigned(word, ChromaWidth, PbLSB),
		IndexPr: bitpack.GetUnsigned(word, ChromaWidth, PrLSB),
	}
}

// CodewordToBytes serializes a codeword big-endian.
func CodewordToBytes(codeword uint32) [CodewordBytes]byte {
	var b [CodewordBytes]byte
	binary.BigEndian.PutUint32(b[:], codeword)
	return b
}

// BytesToCodeword is the inverse of CodewordToBytes.
func BytesToCodeword(b [CodewordBytes]byte) uint32 {
	return binary.BigEndian.Uint32(b[:])
}
