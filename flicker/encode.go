package flicker

// Encode converts a bank challenge (ASCII hex digits) into its symbol
// table. The table has one entry per character of the prefixed challenge,
// so its length is always len(challenge)+4.
//
// The prefixed string is walked in character pairs and the two nibbles of
// each pair are cross-assigned: the pattern of the second character is
// stored at the first character's index and vice versa (low-order nibble
// first). The chipTAN optical protocol requires this reordering; it is not
// an implementation convenience.
//
// Encode is pure and cannot fail. Non-hex characters degrade to nibble 0
// (see Nibble). If the prefixed length is odd, the trailing character is
// left unpaired and its slot keeps the zero symbol; with the 4-character
// prefix this only happens for odd-length challenges.
func Encode(challenge string) SymbolTable {
	code := SyncPrefix + challenge
	table := make(SymbolTable, len(code))

	for i := 0; i+1 < len(code); i += 2 {
		v1 := Nibble(code[i])
		v2 := Nibble(code[i+1])
		table[i] = Pattern(v2)
		table[i+1] = Pattern(v1)
	}
	return table
}
