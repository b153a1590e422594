package keystream

// Region identifies one of the four known SIF regional variants, each with
// a compiled-in prefix, name sum, and V3 key table.
//
// Reference: original_source/honokamiku_decrypter.h's HONOKAMIKU_KEY_SIF_*
// macros and honokamiku_gamefile_id.
type Region int

const (
	RegionUnknown Region = iota
	// RegionEN is SIF EN/WW (the two share one key table in the source).
	RegionEN
	RegionJP
	RegionTW
	RegionCN
)

func (r Region) String() string {
	switch r {
	case RegionEN:
		return "EN/WW"
	case RegionJP:
		return "JP"
	case RegionTW:
		return "TW"
	case RegionCN:
		return "CN"
	default:
		return "unknown"
	}
}

// regionInfo bundles everything a region needs: its keying prefix, its
// canonical V3 name sum, and its key table.
type regionInfo struct {
	prefix     string
	nameSum    uint32
	v3KeyTable *[64]uint32
}

var regions = map[Region]regionInfo{
	RegionEN: {prefix: "BFd3EnkcKa", nameSum: 844, v3KeyTable: &enV3KeyTable},
	RegionJP: {prefix: "Hello", nameSum: 500, v3KeyTable: &jpV3KeyTable},
	RegionTW: {prefix: "M2o2B7i3M6o6N88", nameSum: 1051, v3KeyTable: &twV3KeyTable},
	RegionCN: {prefix: "iLbs0LpvJrXm3zjdhAr4", nameSum: 1847, v3KeyTable: &cnV3KeyTable},
}

// autoRegionOrder is the order honokamiku_decrypt_init_auto() tries
// regions in: EN, JP, TW, CN.
var autoRegionOrder = [4]Region{RegionEN, RegionJP, RegionTW, RegionCN}
