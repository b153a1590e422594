package keystream

// Version identifies one of the six keystream algorithms, or one of the two
// sentinel values None and Auto.
//
// Auto is a request value only: it tells the Initializer to try every
// version signature and settle on whichever matches. By the time
// initialization (including phase 2, for V3+) completes successfully, a
// Context's version is always one of None..V6.
type Version int

const (
	// VNone means the file is stored verbatim; Apply is a no-op.
	VNone Version = iota
	// V1 is the 4-byte-group keystream with no header.
	V1
	// V2 is the 2-byte-group keystream with a 4-byte header.
	V2
	// V3 is a single-LCG keystream with a 16-byte header and a
	// name-sum-indexed key table.
	V3
	// V4 is a single-LCG keystream with a 16-byte header and a
	// header-indexed LCG parameter table.
	V4
	// V5 is a chained-XOR keystream whose encrypt and decrypt paths are
	// structurally distinct. Does not support Seek.
	V5
	// V6 is a dual-LCG keystream (two independent LCGs tap one byte each).
	V6
	// Auto requests that DecryptInit determine the version from the
	// header. Never a resting state.
	Auto Version = -1
)

func (v Version) String() string {
	switch v {
	case VNone:
		return "none"
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	case V4:
		return "v4"
	case V5:
		return "v5"
	case V6:
		return "v6"
	case Auto:
		return "auto"
	default:
		return "invalid"
	}
}

// HeaderSize returns the number of plaintext header bytes a file encrypted
// under v carries, ahead of the ciphertext body.
func HeaderSize(v Version) int {
	switch v {
	case V2:
		return 4
	case V3, V4, V5, V6:
		return 16
	default:
		return 0
	}
}
