package sparsefile

import "testing"

func TestZeroSpan(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"empty", []byte{}, 0},
		{"no zeroes", []byte{1, 2, 3}, 0},
		{"all zeroes", make([]byte, 300_000), 300_000},
		{"stops at first data byte", []byte{0, 0, 0, 9, 0}, 3},
		{"single zero", []byte{0}, 1},
	}
	for _, tt := range tests {
		if got := zeroSpan(tt.in); got != tt.want {
			t.Errorf("%s: zeroSpan = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDataSpan(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"empty", []byte{}, 0},
		{"all data", []byte{1, 2, 3}, 3},
		{"stops at first zero", []byte{9, 8, 0, 7}, 2},
		{"leading zero", []byte{0, 1}, 0},
	}
	for _, tt := range tests {
		if got := dataSpan(tt.in); got != tt.want {
			t.Errorf("%s: dataSpan = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func BenchmarkZeroSpan(b *testing.B) {
	// A 64KB buffer filled with zeros.
	buf := make([]byte, defaultBufferSize)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = zeroSpan(buf)
	}
}
