//go:build amd64

package asciiscan

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// hasAVX2 mirrors simd.hasAVX2's detection exactly (cpu.X86.HasAVX2), even
// though there's no AVX2 assembly behind it here. The flag still gates a
// meaningfully wider stride, since a CPU new enough to carry AVX2 also
// reliably pipelines four independent 8-byte loads without stalling.
var hasAVX2 = cpu.X86.HasAVX2

// IsASCII reports whether every byte in data is < 0x80.
func IsASCII(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	if hasAVX2 && len(data) >= 32 {
		return scanWide(data)
	}
	return scanSWAR(data)
}

// scanWide checks 32 bytes per iteration as four interleaved 8-byte SWAR
// masks, standing in for the width an AVX2 VPMOVMSKB pass would give the
// teacher's assembly without requiring any assembly of our own.
func scanWide(data []byte) bool {
	const hi8 = uint64(0x8080808080808080)

	n := len(data)
	i := 0
	for i+32 <= n {
		var combined uint64
		for k := 0; k < 4; k++ {
			combined |= binary.LittleEndian.Uint64(data[i+k*8:])
		}
		if combined&hi8 != 0 {
			return false
		}
		i += 32
	}
	return scanSWAR(data[i:])
}
