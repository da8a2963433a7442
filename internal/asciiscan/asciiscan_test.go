package asciiscan

import (
	"bytes"
	"testing"
)

func TestIsASCII(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected bool
	}{
		{"empty", nil, true},
		{"empty_slice", []byte{}, true},
		{"single_ascii", []byte{'a'}, true},
		{"single_non_ascii", []byte{0x80}, false},
		{"short_ascii", []byte("hello world"), true},
		{"short_non_ascii", []byte("h\xc3\xa9llo"), false},

		{"8_bytes_ascii", []byte("12345678"), true},
		{"8_bytes_non_ascii_first", append([]byte{0x80}, []byte("1234567")...), false},
		{"8_bytes_non_ascii_last", append([]byte("1234567"), 0x80), false},
		{"8_bytes_non_ascii_middle", []byte("123\x805678"), false},

		{"32_bytes_ascii", []byte("12345678901234567890123456789012"), true},
		{"32_bytes_non_ascii_first", append([]byte{0x80}, bytes.Repeat([]byte{'a'}, 31)...), false},
		{"32_bytes_non_ascii_last", append(bytes.Repeat([]byte{'a'}, 31), 0x80), false},
		{"32_bytes_non_ascii_middle", append(append(bytes.Repeat([]byte{'a'}, 15), 0x80), bytes.Repeat([]byte{'b'}, 16)...), false},

		{"large_ascii", bytes.Repeat([]byte{'x'}, 10000), true},
		{"large_non_ascii_tail", append(bytes.Repeat([]byte{'x'}, 9999), 0x80), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsASCII(tt.input); got != tt.expected {
				t.Errorf("IsASCII(%v) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}
