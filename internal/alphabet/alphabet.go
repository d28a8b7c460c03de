// Package alphabet maps the fixed DNA alphabet (A, C, G, T) to dense
// integer codes and back.
//
// Every symbol maps to a unique code in [0, Size); anything else maps to
// the Invalid sentinel. Callers must check for Invalid before using a code
// in index arithmetic — nothing in this package ever coerces an unknown
// byte to a valid-looking code.
package alphabet

// Size is the number of symbols in the alphabet.
const Size = 4

// Symbols lists the alphabet in code order: Encode(Symbols[i]) == i.
const Symbols = "ACGT"

// Invalid is the sentinel returned for bytes outside the alphabet.
const Invalid = -1

// codes maps every byte to its code, with Invalid everywhere outside
// the alphabet. Built once at package init.
var codes [256]int8

func init() {
	for i := range codes {
		codes[i] = Invalid
	}
	for code := 0; code < Size; code++ {
		upper := Symbols[code]
		codes[upper] = int8(code)
		codes[upper|0x20] = int8(code) // lower case
	}
}

// Encode returns the code for a symbol, case-insensitively, or Invalid
// for bytes outside the alphabet.
func Encode(b byte) int {
	return int(codes[b])
}

// Decode returns the upper-case symbol for a code. The second return is
// false when the code is outside [0, Size).
func Decode(code int) (byte, bool) {
	if code < 0 || code >= Size {
		return 0, false
	}
	return Symbols[code], true
}

// Complement returns the code of the Watson-Crick complement
// (A<->T, C<->G). The Invalid sentinel passes through unchanged.
func Complement(code int) int {
	if code < 0 || code >= Size {
		return Invalid
	}
	return Size - 1 - code
}

// IsValid reports whether a byte belongs to the alphabet.
func IsValid(b byte) bool {
	return codes[b] != Invalid
}
