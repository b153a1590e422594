package keystream

// resolvePrefix implements the region-xor-prefix argument contract shared by
// every Initializer entry point: callers supply exactly one of a known
// Region or an explicit prefix string.
func resolvePrefix(region Region, prefix string) (string, error) {
	if region == RegionUnknown && prefix == "" {
		return "", errOf("resolvePrefix", KindInvalidArg)
	}
	if region != RegionUnknown && prefix != "" {
		return "", errOf("resolvePrefix", KindInvalidArg)
	}
	if region != RegionUnknown {
		return regions[region].prefix, nil
	}
	return prefix, nil
}

// DecryptInit performs phase 1 of decrypt initialization: it derives key
// material from region/prefix and filename, and — for V2 and for V3+ —
// checks the file's first bytes against the expected header signature.
//
// header is the first 4 bytes read from the file (or nil/empty for a
// version that needs none, i.e. V1/None). On success, dst.version is None,
// Auto or V1/V2/V3/V4/V5/V6; callers must check NeedsPhase2(dst) and, if true,
// follow up with DecryptPhase2 before calling Apply.
//
// Reference: original_source/honokamiku_decrypter.c, honokamiku_dinit.
func DecryptInit(dst *Context, version Version, region Region, prefix string, filename string, header []byte) error {
	resolved, err := resolvePrefix(region, prefix)
	if err != nil {
		return err
	}

	if version == VNone {
		*dst = Context{version: VNone, phase2Complete: true}
		return nil
	}

	digest := digestFor(resolved, filename)

	if version == V1 {
		basename := Basename(filename)
		initKey := be32(digest[0:4])
		*dst = Context{
			version:        V1,
			initKey:        initKey,
			updateKey:      uint32(len(basename) + 1),
			xorKey:         initKey,
			phase2Complete: true,
		}
		return nil
	}

	if version == V2 || version == Auto {
		if len(header) >= 4 && bytesEqual4(digest[4:8], header[:4]) {
			initKey := (uint32(digest[0])&0x7F)<<24 | uint32(digest[1])<<16 | uint32(digest[2])<<8 | uint32(digest[3])
			*dst = Context{
				version:        V2,
				initKey:        initKey,
				updateKey:      initKey,
				xorKey:         ((initKey >> 23) & 0xFF) | ((initKey >> 7) & 0xFF00),
				phase2Complete: true,
			}
			return nil
		}
		if version == V2 {
			return errOf("DecryptInit", KindInvalidMethod)
		}
	}

	if version == Auto || version >= V3 {
		var sig [3]byte
		sig[0], sig[1], sig[2] = ^digest[4], ^digest[5], ^digest[6]
		if len(header) >= 3 && sig[0] == header[0] && sig[1] == header[1] && sig[2] == header[2] {
			*dst = Context{
				version:        version,
				initKey:        be32(digest[8:12]),
				secondInitKey:  be32(digest[12:16]),
				xorKey:         sumBytes(resolved),
				phase2Complete: false,
			}
			return nil
		}
		if version != Auto {
			return errOf("DecryptInit", KindInvalidMethod)
		}
	}

	return errOf("DecryptInit", KindDecryptUnknown)
}

// DecryptInitAutoRegion tries DecryptInit with Version Auto against each
// known region in turn (EN, JP, TW, CN) and returns the first one whose
// prefix produces a matching header signature.
//
// Reference: original_source/honokamiku_decrypter.c, honokamiku_decrypt_init_auto.
func DecryptInitAutoRegion(dst *Context, filename string, header []byte) (Region, error) {
	for _, r := range autoRegionOrder {
		if err := DecryptInit(dst, Auto, r, "", filename, header); err == nil {
			return r, nil
		}
	}
	return RegionUnknown, errOf("DecryptInitAutoRegion", KindDecryptUnknown)
}

// NeedsPhase2 reports whether dst still requires DecryptPhase2 before Apply
// can be called: true exactly when phase 1 left the version as Auto or
// V3..V6 and phase 2 hasn't run yet.
func NeedsPhase2(dst *Context) bool {
	if dst.phase2Complete {
		return false
	}
	return dst.version == Auto || dst.version >= V3
}

// DecryptPhase2 reads the next 12 header bytes (file offsets 4..16) and
// finalizes a Context that DecryptInit left pending. It is a no-op
// returning nil if dst doesn't need phase 2.
//
// next must be at least 12 bytes; a shorter slice is a caller bug (the
// header is only ever read in one 16-byte pass) and panics rather than
// returning an error.
//
// region/keyTable/nameSum resolve the V3 key table and canonical name sum
// exactly as DecryptInit/EncryptInit resolve region/prefix: pass a known
// Region and leave keyTable nil and nameSum -1, or pass RegionUnknown with
// an explicit keyTable and (optionally, -1 otherwise) nameSum.
//
// Reference: original_source/honokamiku_decrypter.c, honokamiku_decrypt_final_init.
func DecryptPhase2(dst *Context, region Region, keyTable *[64]uint32, nameSum int, filename string, next []byte) error {
	if !NeedsPhase2(dst) {
		return nil
	}
	if len(next) < 12 {
		panic("keystream: DecryptPhase2: next must be at least 12 bytes")
	}

	table, resolvedSum, err := resolveKeyTable(region, keyTable, nameSum, dst.xorKey)
	if err != nil {
		return err
	}

	var fileVersion Version
	flip := false
	switch next[3] {
	case 0:
		fileVersion = V3
	case 1:
		fileVersion = V3
		flip = true
	case 2:
		fileVersion = V4
	case 3:
		fileVersion = V5
	case 4:
		fileVersion = V6
	case 5:
		return errOf("DecryptPhase2", KindV3Unimplemented)
	default:
		return errOf("DecryptPhase2", KindDecryptUnknown)
	}

	if dst.version == Auto {
		dst.version = fileVersion
	} else if dst.version != fileVersion {
		return errOf("DecryptPhase2", KindInvalidMethod)
	}

	basename := Basename(filename)

	switch fileVersion {
	case V3:
		fileNameSum := uint32(next[6])<<8 | uint32(next[7])
		idx := fileNameSum & 63
		for i := 0; i < len(basename); i++ {
			fileNameSum -= uint32(basename[i])
		}
		if fileNameSum != resolvedSum {
			return errOf("DecryptPhase2", KindDecryptUnknown)
		}
		entry := table[idx]
		if flip {
			entry = ^entry
		}
		dst.initKey, dst.updateKey, dst.xorKey = entry, entry, entry
		dst.mulVal, dst.addVal, dst.shiftVal = v3LCG.mul, v3LCG.add, v3LCG.shift

	case V4:
		k := lcgTable[next[2]&3]
		dst.mulVal, dst.addVal, dst.shiftVal = k.mul, k.add, k.shift
		dst.xorKey, dst.updateKey = dst.initKey, dst.initKey

	case V5:
		idx := lcgIndexPlain(basename)
		k := lcgTable[idx]
		dst.mulVal, dst.addVal, dst.shiftVal = k.mul, k.add, k.shift
		dst.initKey = ^dst.initKey
		dst.xorKey, dst.updateKey = dst.initKey, dst.initKey

	case V6:
		idx2 := lcgIndexComplement(basename)
		k2 := lcgTable[idx2]
		dst.secondMulVal, dst.secondAddVal, dst.secondShiftVal = k2.mul, k2.add, k2.shift
		dst.secondXorKey, dst.secondUpdateKey = dst.secondInitKey, dst.secondInitKey

		idx1 := lcgIndexPlain(basename)
		k1 := lcgTable[idx1]
		dst.mulVal, dst.addVal, dst.shiftVal = k1.mul, k1.add, k1.shift
		dst.xorKey, dst.updateKey = dst.initKey, dst.initKey
	}

	dst.phase2Complete = true
	return nil
}

// resolveKeyTable implements DecryptPhase2's region-or-custom-table
// resolution (EncryptInit uses resolveEncryptKeyTable instead). runningSum
// is the byte sum already captured in a pending Context's xorKey field
// (phase 1 stashes it there); it is returned whenever nameSum is the -1
// sentinel. For a known region that equals the canonical name sum, since a
// region's canonical prefix sums to its own canonical nameSum by
// construction.
func resolveKeyTable(region Region, keyTable *[64]uint32, nameSum int, runningSum uint32) (*[64]uint32, uint32, error) {
	if region != RegionUnknown {
		info := regions[region]
		if nameSum == -1 {
			return info.v3KeyTable, runningSum, nil
		}
		return info.v3KeyTable, info.nameSum, nil
	}
	if keyTable == nil {
		return nil, 0, errOf("resolveKeyTable", KindInvalidArg)
	}
	if nameSum == -1 {
		return keyTable, runningSum, nil
	}
	return keyTable, uint32(nameSum), nil
}

func bytesEqual4(a, b []byte) bool {
	return len(a) >= 4 && len(b) >= 4 && a[0] == b[0] && a[1] == b[1] && a[2] == b[2] && a[3] == b[3]
}
