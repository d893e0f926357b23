package flicker

import (
	"strings"
	"testing"
)

func TestEncode_Length(t *testing.T) {
	tests := []struct {
		challenge string
		want      int
	}{
		{"", 4}, // prefix alone
		{"1A", 6},
		{"0123456789ABCDEF", 20},
		{"ABC", 7}, // odd length
	}
	for _, tt := range tests {
		table := Encode(tt.challenge)
		if table.Len() != tt.want {
			t.Errorf("Encode(%q) len = %d, want %d", tt.challenge, table.Len(), tt.want)
		}
	}
}

func TestEncode_PairSwap(t *testing.T) {
	// "1A" prefixes to "0FFF1A". Pairs (0,F) (F,F) (1,A) are
	// cross-assigned: the second nibble of each pair lands at the first
	// index and vice versa.
	table := Encode("1A")

	want := []Symbol{
		Pattern(0xF), // index 0 <- 'F'
		Pattern(0x0), // index 1 <- '0'
		Pattern(0xF),
		Pattern(0xF),
		Pattern(0xA), // index 4 <- 'A'
		Pattern(0x1), // index 5 <- '1'
	}
	for i, sym := range want {
		if table[i] != sym {
			t.Errorf("table[%d] = %v, want %v", i, table[i], sym)
		}
	}
}

func TestEncode_EmptyChallenge(t *testing.T) {
	// The prefix "0FFF" still encodes: pairs (0,F) (F,F).
	table := Encode("")
	if table.Len() != 4 {
		t.Fatalf("len = %d, want 4", table.Len())
	}
	want := []Symbol{Pattern(0xF), Pattern(0x0), Pattern(0xF), Pattern(0xF)}
	for i, sym := range want {
		if table[i] != sym {
			t.Errorf("table[%d] = %v, want %v", i, table[i], sym)
		}
	}
}

func TestEncode_OddLengthTrailingNibble(t *testing.T) {
	// With the even 4-char prefix, an odd challenge leaves its final
	// character unpaired; its slot keeps the zero symbol. Long-standing
	// behavior TAN generators are calibrated against; not a bug to fix.
	table := Encode("ABC")
	if table.Len() != 7 {
		t.Fatalf("len = %d, want 7", table.Len())
	}
	if table[6] != (Symbol{}) {
		t.Errorf("trailing slot = %v, want zero symbol", table[6])
	}
	// The paired part still encodes normally: pair (A,B) at indices 4,5.
	if table[4] != Pattern(0xB) || table[5] != Pattern(0xA) {
		t.Errorf("pair (A,B) = %v,%v, want %v,%v",
			table[4], table[5], Pattern(0xB), Pattern(0xA))
	}
}

func TestEncode_LowercaseEqualsUppercase(t *testing.T) {
	upper := Encode("1A2B3C")
	lower := Encode("1a2b3c")
	for i := range upper {
		if upper[i] != lower[i] {
			t.Errorf("case mismatch at %d: %v vs %v", i, upper[i], lower[i])
		}
	}
}

func TestEncode_InvalidCharactersDegradeToZero(t *testing.T) {
	// Upstream validates the challenge; anything that slips through is
	// treated as nibble 0, never an error.
	got := Encode("ZZ")
	want := Encode("00")
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("table[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEncode_Idempotent(t *testing.T) {
	a := Encode("07B5F1")
	b := Encode("07B5F1")
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("table[%d] differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestNibble(t *testing.T) {
	tests := []struct {
		c    byte
		want uint8
	}{
		{'0', 0}, {'9', 9},
		{'A', 10}, {'F', 15},
		{'a', 10}, {'f', 15},
		{'G', 0}, {'z', 0}, {' ', 0}, {'-', 0},
	}
	for _, tt := range tests {
		if got := Nibble(tt.c); got != tt.want {
			t.Errorf("Nibble(%q) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestPattern_BitReversedNibble(t *testing.T) {
	tests := []struct {
		v    uint8
		want Symbol
	}{
		{0x0, Symbol{false, false, false, false, false}},
		{0x1, Symbol{false, true, false, false, false}},  // 1000
		{0x8, Symbol{false, false, false, false, true}},  // 0001
		{0xF, Symbol{false, true, true, true, true}},     // 1111
		{0x5, Symbol{false, true, false, true, false}},   // 1010
	}
	for _, tt := range tests {
		if got := Pattern(tt.v); got != tt.want {
			t.Errorf("Pattern(%#x) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestPattern_ClockSlotAlwaysClear(t *testing.T) {
	for v := uint8(0); v < 16; v++ {
		if Pattern(v)[0] {
			t.Errorf("Pattern(%#x) has clock slot set", v)
		}
	}
}

func TestFrameString(t *testing.T) {
	f := Frame{true, false, true, true, false}
	if got := f.String(); got != "10110" {
		t.Errorf("String() = %q, want %q", got, "10110")
	}
}

func TestFormatTable(t *testing.T) {
	out := FormatTable(Encode("1A"))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "-1111") || !strings.Contains(lines[0], "(sync)") {
		t.Errorf("line 0 = %q, want permuted F tagged as sync", lines[0])
	}
	if !strings.Contains(lines[4], "-0101") {
		t.Errorf("line 4 = %q, want permuted A (0101)", lines[4])
	}
	if strings.Contains(lines[4], "sync") {
		t.Errorf("line 4 = %q, data row tagged as sync", lines[4])
	}
}
