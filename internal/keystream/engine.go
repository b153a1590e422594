package keystream

// updateV2 advances V2's Lehmer-style generator by one step and refreshes
// xorKey from the new state.
//
// Reference: original_source/honokamiku_decrypter.c's honokamiku_update_v2 macro.
func updateV2(ctx *Context) {
	a := ctx.updateKey >> 16
	b := (a*1101463552)&2147483647 + (ctx.updateKey&65535)*16807
	c := (a * 16807) >> 15
	d := c + b - 2147483647
	if b > 2147483646 {
		b = d
	} else {
		b = b + c
	}
	ctx.updateKey = b
	ctx.xorKey = ((b >> 23) & 255) | ((b >> 7) & 65280)
}

// Apply XORs buf in place with the next len(buf) bytes of ctx's keystream,
// advancing ctx as a side effect. Calling Apply again continues the stream
// from where the previous call left off — except for V5, whose chain byte
// resets to its 0x59 seed on every call (see applyV5 below); a V5 payload
// decrypts correctly only when Apply is called on the same chunks it was
// encrypted in (for example, the whole payload in a single call).
//
// Apply is its own inverse for every version except V5, where the encrypt
// and decrypt directions use different chaining and a Context's encrypt
// orientation is fixed at initialization time (EncryptInit sets it,
// DecryptPhase2 never does).
//
// Reference: original_source/honokamiku_decrypter.c, honokamiku_decrypt_block.
func Apply(ctx *Context, buf []byte) {
	if len(buf) == 0 {
		return
	}
	switch ctx.version {
	case VNone:
		// Stored verbatim; nothing to do.
	case V1:
		applyV1(ctx, buf)
	case V2:
		applyV2(ctx, buf)
	case V3, V4:
		applyLCG(ctx, buf)
	case V5:
		applyV5(ctx, buf)
	case V6:
		applyV6(ctx, buf)
	}
}

func applyV1(ctx *Context, buf []byte) {
	n := len(buf)
	idx := 0
	lastPos := ctx.pos & 3

	if lastPos == 1 {
		buf[idx] ^= byte(ctx.xorKey >> 16)
		idx++
		n--
		if n > 0 {
			lastPos = 2
		} else {
			lastPos = 0
		}
	}
	if lastPos == 2 {
		buf[idx] ^= byte(ctx.xorKey >> 8)
		idx++
		n--
		if n > 0 {
			lastPos = 3
		} else {
			lastPos = 0
		}
	}
	if lastPos == 3 {
		buf[idx] ^= byte(ctx.xorKey)
		idx++
		n--
		ctx.xorKey += ctx.updateKey
	}

	for ; n >= 4; n -= 4 {
		buf[idx+0] ^= byte(ctx.xorKey >> 24)
		buf[idx+1] ^= byte(ctx.xorKey >> 16)
		buf[idx+2] ^= byte(ctx.xorKey >> 8)
		buf[idx+3] ^= byte(ctx.xorKey)
		ctx.xorKey += ctx.updateKey
		idx += 4
	}

	if n >= 1 {
		buf[idx+0] ^= byte(ctx.xorKey >> 24)
	}
	if n >= 2 {
		buf[idx+1] ^= byte(ctx.xorKey >> 16)
	}
	if n >= 3 {
		buf[idx+2] ^= byte(ctx.xorKey >> 8)
	}

	ctx.pos += uint32(len(buf))
}

func applyV2(ctx *Context, buf []byte) {
	n := len(buf)
	idx := 0

	if ctx.pos&1 == 1 {
		buf[idx] ^= byte(ctx.xorKey >> 8)
		idx++
		n--
		updateV2(ctx)
	}

	for ; n >= 2; n -= 2 {
		buf[idx+0] ^= byte(ctx.xorKey)
		buf[idx+1] ^= byte(ctx.xorKey >> 8)
		idx += 2
		updateV2(ctx)
	}

	if n == 1 {
		buf[idx] ^= byte(ctx.xorKey)
	}

	ctx.pos += uint32(len(buf))
}

func applyLCG(ctx *Context, buf []byte) {
	for i := range buf {
		buf[i] ^= byte(ctx.xorKey >> ctx.shiftVal)
		ctx.updateKey = ctx.mulVal*ctx.updateKey + ctx.addVal
		ctx.xorKey = ctx.updateKey
	}
	ctx.pos += uint32(len(buf))
}

func applyV5(ctx *Context, buf []byte) {
	chain := byte(0x59)
	if ctx.v5Encrypting {
		for i := range buf {
			chain ^= byte(ctx.xorKey>>ctx.shiftVal) ^ buf[i]
			buf[i] = chain
			ctx.updateKey = ctx.mulVal*ctx.updateKey + ctx.addVal
			ctx.xorKey = ctx.updateKey
		}
	} else {
		for i := range buf {
			temp := buf[i]
			buf[i] ^= byte(ctx.xorKey>>ctx.shiftVal) ^ chain
			chain = temp
			ctx.updateKey = ctx.mulVal*ctx.updateKey + ctx.addVal
			ctx.xorKey = ctx.updateKey
		}
	}
	ctx.pos += uint32(len(buf))
}

func applyV6(ctx *Context, buf []byte) {
	for i := range buf {
		buf[i] ^= byte(ctx.xorKey>>ctx.shiftVal) ^ byte(ctx.secondXorKey>>ctx.secondShiftVal)
		ctx.updateKey = ctx.mulVal*ctx.updateKey + ctx.addVal
		ctx.xorKey = ctx.updateKey
		ctx.secondUpdateKey = ctx.secondMulVal*ctx.secondUpdateKey + ctx.secondAddVal
		ctx.secondXorKey = ctx.secondUpdateKey
	}
	ctx.pos += uint32(len(buf))
}
