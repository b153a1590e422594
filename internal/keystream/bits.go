package keystream

// be32 reads a big-endian uint32 from the first 4 bytes of b.
//
// Reference: spec.md §6.2 — "all multi-byte integers read from the MD5
// digest into Context words are big-endian".
func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// sumBytes returns the unsigned sum of the bytes of s, wrapping mod 2^32.
func sumBytes(s string) uint32 {
	var sum uint32
	for i := 0; i < len(s); i++ {
		sum += uint32(s[i])
	}
	return sum
}

// lcgIndexPlain computes the basename-derived LCG table index used by V5
// (and V6's primary LCG): the basename length plus a
// signed 8-bit running sum of its bytes, masked to the table size.
//
// Reference: original_source/honokamiku_decrypter.c, the `for(; *fn2;
// selected_algo += *fn2++, i++)` loops in honokamiku_einit/
// honokamiku_decrypt_final_init's V5 cases.
func lcgIndexPlain(basename string) int {
	var i int
	var s int8
	for j := 0; j < len(basename); j++ {
		s += int8(basename[j])
		i++
	}
	return (i + int(s)) & 3
}

// lcgIndexComplement computes V6's secondary-LCG basename index, which
// accumulates the bitwise complement of each byte instead of the byte
// itself.
//
// Reference: original_source/honokamiku_decrypter.c's `selected_algo +=
// ((int)(-256)) | ~((int)(*fn2++))` / `select_lcg2 += ((int)(-256)) |
// ~((int)(*basename++))`. Both reduce, for any byte value b in 0..255, to
// an 8-bit wrapping accumulation of ^int8(b) — the (-256) term only
// re-establishes the sign bits that `~` already set for b >= 128, so it
// never changes the result; it is not replicated literally here since
// int8's own wraparound already produces the same bit pattern.
func lcgIndexComplement(basename string) int {
	var i int
	var s int8
	for j := 0; j < len(basename); j++ {
		s += ^int8(basename[j])
		i++
	}
	return (i + int(s)) & 3
}
