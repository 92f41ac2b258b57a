package mark

import "unicode/utf16"

// hashOffset is the FNV-1a 32-bit offset basis.
const hashOffset uint32 = 2166136261

// Hash maps text to a 32-bit word using FNV-1a over the UTF-16 code units of
// text. The multiply by the FNV prime (16777619) is spelled out as the
// shift-and-add sum so the arithmetic matches existing reference seeds.
// All arithmetic wraps modulo 2^32.
func Hash(text string) uint32 {
	h := hashOffset
	for _, c := range utf16.Encode([]rune(text)) {
		h ^= uint32(c)
		h += h<<1 + h<<4 + h<<7 + h<<8 + h<<24
	}
	return h
}
