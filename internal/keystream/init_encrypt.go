package keystream

// EncryptInit derives key material and writes the plaintext header a file
// of the given version carries, mirroring DecryptInit/DecryptPhase2 in a
// single call (the encrypt side never needs a separate phase 2, since it
// picks the header content instead of reading it back).
//
// header must be at least HeaderSize(version) bytes; a shorter buffer
// returns KindBufferTooSmall. keyTable/nameSum are only consulted for
// V3..V6 when region is RegionUnknown, with the same -1-means-"derive
// from prefix" convention as DecryptPhase2.
//
// Reference: original_source/honokamiku_decrypter.c, honokamiku_einit and
// its honokamiku_encrypt_init wrapper.
func EncryptInit(dst *Context, version Version, region Region, prefix string, keyTable *[64]uint32, nameSum int, filename string, header []byte) (int, error) {
	resolved, err := resolvePrefix(region, prefix)
	if err != nil {
		return 0, err
	}

	if version == VNone {
		*dst = Context{version: VNone, phase2Complete: true}
		return 0, nil
	}

	if version == V1 {
		// V1 has no header; its keying is identical whether the context
		// goes on to encrypt or decrypt (XOR is its own inverse).
		if err := DecryptInit(dst, V1, region, prefix, filename, nil); err != nil {
			return 0, err
		}
		return 0, nil
	}

	digest := digestFor(resolved, filename)

	if version == V2 {
		if len(header) < 4 {
			return 0, errOf("EncryptInit", KindBufferTooSmall)
		}
		initKey := (uint32(digest[0])&0x7F)<<24 | uint32(digest[1])<<16 | uint32(digest[2])<<8 | uint32(digest[3])
		*dst = Context{
			version:        V2,
			initKey:        initKey,
			updateKey:      initKey,
			xorKey:         ((initKey >> 23) & 0xFF) | ((initKey >> 7) & 0xFF00),
			phase2Complete: true,
		}
		copy(header[:4], digest[4:8])
		return 4, nil
	}

	if version < V3 || version > V6 {
		return 0, errOf("EncryptInit", KindInvalidMethod)
	}
	if len(header) < 16 {
		return 0, errOf("EncryptInit", KindBufferTooSmall)
	}

	table, resolvedSum, err := resolveEncryptKeyTable(region, keyTable, nameSum, resolved)
	if err != nil {
		return 0, err
	}

	basename := Basename(filename)

	for i := range header[:16] {
		header[i] = 0
	}
	header[0], header[1], header[2] = ^digest[4], ^digest[5], ^digest[6]
	header[3] = 12
	if version != V3 {
		header[7] = byte(version - V3 + 1)
	}

	*dst = Context{
		version:        version,
		initKey:        be32(digest[8:12]),
		secondInitKey:  be32(digest[12:16]),
		phase2Complete: true,
	}

	switch version {
	case V3:
		fileNameSum := resolvedSum
		for i := 0; i < len(basename); i++ {
			fileNameSum += uint32(basename[i])
		}
		entry := table[fileNameSum&63]
		dst.initKey, dst.updateKey, dst.xorKey = entry, entry, entry
		dst.mulVal, dst.addVal, dst.shiftVal = v3LCG.mul, v3LCG.add, v3LCG.shift
		header[10] = byte(fileNameSum >> 8)
		header[11] = byte(fileNameSum)

	case V4:
		k := lcgTable[0]
		dst.mulVal, dst.addVal, dst.shiftVal = k.mul, k.add, k.shift
		dst.xorKey, dst.updateKey = dst.initKey, dst.initKey

	case V5:
		applyV5PrimaryKeying(dst, basename)
		dst.v5Encrypting = true

	case V6:
		idx2 := lcgIndexComplement(basename)
		k2 := lcgTable[idx2]
		dst.secondMulVal, dst.secondAddVal, dst.secondShiftVal = k2.mul, k2.add, k2.shift
		dst.secondXorKey, dst.secondUpdateKey = dst.secondInitKey, dst.secondInitKey

		// Pre-negate so the V5 keying below, which negates once more,
		// nets out to the original digest-derived init key.
		dst.initKey = ^dst.initKey
		applyV5PrimaryKeying(dst, basename)
		dst.v5Encrypting = false
	}

	return 16, nil
}

// applyV5PrimaryKeying sets the primary LCG parameters and negates
// initKey/xorKey/updateKey in place, exactly as V5's own finalization
// does. V6 relies on being able to call this after pre-negating initKey,
// so that the two negations cancel.
//
// Reference: original_source/honokamiku_decrypter.c — the V5 case in both
// honokamiku_einit and honokamiku_decrypt_final_init falls through from V6.
func applyV5PrimaryKeying(dst *Context, basename string) {
	idx := lcgIndexPlain(basename)
	k := lcgTable[idx]
	dst.mulVal, dst.addVal, dst.shiftVal = k.mul, k.add, k.shift
	dst.initKey = ^dst.initKey
	dst.xorKey, dst.updateKey = dst.initKey, dst.initKey
}

// resolveEncryptKeyTable mirrors resolveKeyTable for the encrypt path,
// where there is no running sum stashed in a pending Context — nameSum -1
// instead means "sum the bytes of the resolved prefix".
func resolveEncryptKeyTable(region Region, keyTable *[64]uint32, nameSum int, resolvedPrefix string) (*[64]uint32, uint32, error) {
	if region != RegionUnknown {
		return regions[region].v3KeyTable, regions[region].nameSum, nil
	}
	if keyTable == nil {
		return nil, 0, errOf("resolveEncryptKeyTable", KindInvalidArg)
	}
	if nameSum != -1 {
		return keyTable, uint32(nameSum), nil
	}
	return keyTable, sumBytes(resolvedPrefix), nil
}
