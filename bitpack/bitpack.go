// Package bitpack reads and writes arbitrary-width bit fields inside a
// 64-bit word.
//
// A field is described by its width in bits and the position of its least
// significant bit (lsb). Fields may be anywhere in the word as long as
// width+lsb <= 64. Signed fields use two's complement.
//
// Reading a field outside the word is a programming error and panics.
// Writing a value that does not fit its field is a data error and is
// reported through the boolean result of SetUnsigned/SetSigned.
package bitpack

import (
	"fmt"
	"math"
)

// WordSize is the number of bits in a word.
const WordSize = 64

// FitsSigned reports whether n can be represented in width signed bits,
// i.e. -2^(width-1) <= n < 2^(width-1). A width of 0 only fits 0.
func FitsSigned(n int64, width uint) bool {
	switch {
	case width == 0:
		return n == 0
	case width > WordSize:
		return false
	case width == WordSize:
		return true
	}
	bound := int64(1) << (width - 1)
	return n >= -bound && n < bound
}

// FitsUnsigned reports whether n can be represented in width unsigned bits.
// A width of 0 only fits 0.
//
// For width 64 the check is strict: math.MaxUint64 is reported as not
// fitting. SetUnsigned uses the same rule, so a 64-bit field can hold any
// value except the all-ones word.
func FitsUnsigned(n uint64, width uint) bool {
	switch {
	case width == 0:
		return n == 0
	case width > WordSize:
		return false
	case width == WordSize:
		return n < math.MaxUint64
	}
	return n < uint64(1)<<width
}

// GetUnsigned extracts the width-bit unsigned field starting at lsb.
// It panics if the field does not lie inside the word.
func GetUnsigned(word uint64, width, lsb uint) uint64 {
	mustFit(width, lsb)
	return srl(shl(word, WordSize-width-lsb), WordSize-width)
}

// GetSigned extracts the width-bit signed field starting at lsb and
// sign-extends it. It panics if the field does not lie inside the word.
func GetSigned(word uint64, width, lsb uint) int64 {
	mustFit(width, lsb)
	if width == 0 {
		return 0
	}
	return sra(int64(shl(word, WordSize-width-lsb)), WordSize-width)
}

// SetUnsigned returns word with the field [lsb, lsb+width) replaced by value.
// The second result is false if value does not fit in width unsigned bits or
// the field does not lie inside the word; word is then returned unchanged.
func SetUnsigned(word uint64, width, lsb uint, value uint64) (uint64, bool) {
	if !inWord(width, lsb) || !FitsUnsigned(value, width) {
		return word, false
	}
	return replace(word, width, lsb, value), true
}

// SetSigned is SetUnsigned for a signed value stored in two's complement.
func SetSigned(word uint64, width, lsb uint, value int64) (uint64, bool) {
	if !inWord(width, lsb) || !FitsSigned(value, width) {
		return word, false
	}
	// drop the sign extension above the field
	field := srl(shl(uint64(value), WordSize-width), WordSize-width)
	return replace(word, width, lsb, field), true
}

func replace(word uint64, width, lsb uint, field uint64) uint64 {
	high := shl(srl(word, width+lsb), width+lsb)
	low := srl(shl(word, WordSize-lsb), WordSize-lsb)
	return high | shl(field, lsb) | low
}

func inWord(width, lsb uint) bool {
	return width <= WordSize && lsb <= WordSize && width+lsb <= WordSize
}

func mustFit(width, lsb uint) {
	if !inWord(width, lsb) {
		panic(fmt.Sprintf("bitpack: field of width %d at lsb %d does not fit in a %d-bit word", width, lsb, WordSize))
	}
}

// The shift helpers pin down shifts by the full word size: logical shifts
// yield 0, an arithmetic right shift of a negative word yields all ones.

func shl(word uint64, bits uint) uint64 {
	if bits >= WordSize {
		return 0
	}
	return word << bits
}

func srl(word uint64, bits uint) uint64 {
	if bits >= WordSize {
		return 0
	}
	return word >> bits
}

func sra(word int64, bits uint) int64 {
	if bits >= WordSize {
		if word < 0 {
			return -1
		}
		return 0
	}
	return word >> bits
}
