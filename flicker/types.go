package flicker

// SymbolBits is the width of one displayed symbol: 1 clock bit + 4 data bits.
const SymbolBits = 5

// SyncPrefix is the fixed synchronization sequence prepended to every
// challenge before encoding. The TAN generator locks onto it before it
// starts interpreting data nibbles.
const SyncPrefix = "0FFF"

// Symbol is one entry of the symbol table: [clock, b1, b2, b3, b4].
// The clock slot (index 0) is always false at encode time; the animator
// fills it in per frame.
type Symbol [SymbolBits]bool

// SymbolTable is the encoded form of a prefixed challenge, one Symbol per
// hex digit. It is built once by Encode and read-only afterwards.
type SymbolTable []Symbol

// Len returns the number of symbols in the table.
func (t SymbolTable) Len() int {
	return len(t)
}

// Frame is one displayed state of the five bars: a Symbol with the clock
// bit resolved. Bar 0 shows the clock, bars 1-4 the data bits.
type Frame Symbol

// Clock reports the frame's clock bit.
func (f Frame) Clock() bool {
	return f[0]
}

// Bit returns bar i of the frame (0 = clock, 1..4 = data).
func (f Frame) Bit(i int) bool {
	return f[i]
}

// String renders the frame as five '0'/'1' characters, clock first.
func (f Frame) String() string {
	var buf [SymbolBits]byte
	for i, b := range f {
		if b {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf[:])
}

// Nibble maps an ASCII hex digit to its 4-bit value. Characters outside
// 0-9A-Fa-f map to 0: the challenge has already been validated by the
// upstream banking library, so this is a trust boundary rather than a
// guarded precondition.
func Nibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// Pattern returns the permuted bit layout for a nibble value: bit 1 of the
// symbol is the nibble's least significant bit and bit 4 the most
// significant, so 0x1 displays as 1000 and 0x8 as 0001.
func Pattern(v uint8) Symbol {
	return patterns[v&0x0f]
}

// patterns maps each nibble value to its bit-reversed symbol. The clock
// slot is left false.
var patterns = [16]Symbol{
	{false, false, false, false, false}, // 0x0
	{false, true, false, false, false},  // 0x1
	{false, false, true, false, false},  // 0x2
	{false, true, true, false, false},   // 0x3
	{false, false, false, true, false},  // 0x4
	{false, true, false, true, false},   // 0x5
	{false, false, true, true, false},   // 0x6
	{false, true, true, true, false},    // 0x7
	{false, false, false, false, true},  // 0x8
	{false, true, false, false, true},   // 0x9
	{false, false, true, false, true},   // 0xA
	{false, true, true, false, true},    // 0xB
	{false, false, false, true, true},   // 0xC
	{false, true, false, true, true},    // 0xD
	{false, false, true, true, true},    // 0xE
	{false, true, true, true, true},     // 0xF
}
