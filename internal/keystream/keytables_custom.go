package keystream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LoadCustomKeyTable reads a 64-entry, little-endian uint32 V3 key table
// from r — the on-disk format accepted by the "-k" custom-game-file flag.
//
// Reference: original_source/honokamiku_program.c's "-k" handling (reads
// 64 little-endian uint32s from the file named by the flag).
func LoadCustomKeyTable(r io.Reader) (*[64]uint32, error) {
	var raw [64 * 4]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("keystream: load custom key table: %w", err)
	}
	var table [64]uint32
	for i := range table {
		table[i] = binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
	}
	return &table, nil
}
