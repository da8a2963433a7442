// Package asciiscan detects whether a byte slice is pure ASCII.
//
// The teacher dispatches real AVX2 assembly for this (simd.IsASCII,
// simd/ascii_amd64.go) gated on golang.org/x/sys/cpu.X86.HasAVX2, with a
// pure-Go SWAR (SIMD-within-a-register) fallback for everything else
// (simd/ascii_generic.go's isASCIIGeneric). Derivex has no assembly in its
// retrieved sources, so both branches here are pure Go; the amd64 branch
// just widens the SWAR stride once the CPU flag says a wider load is safe,
// the same shape of decision the teacher's dispatch makes, without the
// .s file backing it.
//
// dfa.DFA calls IsASCII once per input: when it reports true, every step
// goes through the per-state transition cache indexed directly by byte
// value (0x00-0x7F) instead of through the class lookup.
package asciiscan

import "encoding/binary"

// scanSWAR processes 8 bytes at a time using uint64 bitwise operations,
// exactly as simd.isASCIIGeneric does: AND against the per-byte high-bit
// mask, any nonzero result means at least one byte is >= 0x80.
func scanSWAR(data []byte) bool {
	const hi8 = uint64(0x8080808080808080)

	n := len(data)
	i := 0
	for i+8 <= n {
		chunk := binary.LittleEndian.Uint64(data[i:])
		if chunk&hi8 != 0 {
			return false
		}
		i += 8
	}
	for ; i < n; i++ {
		if data[i] >= 0x80 {
			return false
		}
	}
	return true
}
