package flicker

import (
	"fmt"
	"io"
	"strings"
)

// FormatTable renders a symbol table as text, one symbol per line. For
// Encode("1A"):
//
//	  0  -1111   (sync)
//	  1  -0000   (sync)
//	  2  -1111   (sync)
//	  3  -1111   (sync)
//	  4  -0101
//	  5  -1000
//
// The clock column is printed as '-' because the clock bit is not part of
// the encoded data; the animator supplies it per frame. The first four
// rows are tagged as the synchronization prefix.
func FormatTable(t SymbolTable) string {
	var b strings.Builder
	WriteTable(&b, t)
	return b.String()
}

// WriteTable writes FormatTable's output to w.
func WriteTable(w io.Writer, t SymbolTable) error {
	for i, sym := range t {
		var row [SymbolBits]byte
		row[0] = '-'
		for j := 1; j < SymbolBits; j++ {
			if sym[j] {
				row[j] = '1'
			} else {
				row[j] = '0'
			}
		}

		tag := ""
		if i < len(SyncPrefix) {
			tag = "   (sync)"
		}
		if _, err := fmt.Fprintf(w, "%3d  %s%s\n", i, row[:], tag); err != nil {
			return fmt.Errorf("write table row %d: %w", i, err)
		}
	}
	return nil
}
