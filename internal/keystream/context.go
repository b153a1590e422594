package keystream

// Context is the mutable keystream state. It is created by the Initializer
// (DecryptInit/DecryptPhase2 or EncryptInit), mutated exclusively by Apply
// and Seek, and owned by a single caller — it is not safe for concurrent
// mutation.
//
// Reference: original_source/honokamiku_decrypter.h's honokamiku_context.
type Context struct {
	version Version

	initKey   uint32 // snapshot used by seek-reset
	updateKey uint32 // evolving LCG state
	xorKey    uint32 // byte-tap output of the latest update

	pos uint32 // plaintext bytes processed so far

	shiftVal uint32
	mulVal   uint32
	addVal   uint32

	// Secondary LCG, used by V6 only.
	secondInitKey   uint32
	secondUpdateKey uint32
	secondXorKey    uint32
	secondShiftVal  uint32
	secondMulVal    uint32
	secondAddVal    uint32

	phase2Complete bool
	v5Encrypting   bool
}

// Version returns the Context's resting version. Never Auto once
// initialization (including phase 2, for V3+) has completed.
func (c *Context) Version() Version { return c.version }

// Pos returns the number of plaintext bytes Apply has processed so far.
func (c *Context) Pos() uint32 { return c.pos }
