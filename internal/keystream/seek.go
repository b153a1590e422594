package keystream

// Seek repositions ctx to a new plaintext byte offset without re-deriving
// keys, by fast-forwarding or rewinding its LCG/XOR-accumulator state.
// V5 returns KindUnimplemented: its chain byte isn't part of Context (see
// applyV5), so there is no state to rewind to.
//
// Reference: original_source/honokamiku_decrypter.c, honokamiku_jump_offset.
func Seek(ctx *Context, offset uint32) error {
	if ctx.version == V5 {
		return errOf("Seek", KindUnimplemented)
	}
	if offset == ctx.pos {
		return nil
	}

	var loopTimes uint32
	var resetCtx bool
	if offset > ctx.pos {
		loopTimes = offset - ctx.pos
	} else {
		loopTimes = offset
		resetCtx = true
	}

	switch ctx.version {
	case VNone:
		// No state to advance.

	case V1:
		c := ctx.pos - (ctx.pos & 3)
		n := offset - (offset & 3)
		if c > n {
			for i := (c - n) >> 2; i > 0; i-- {
				ctx.xorKey -= ctx.updateKey
			}
		} else if n > c {
			// The source computes this loop count as (c-n)>>2 in both
			// branches; here, with n>c, that subtraction wraps around as
			// unsigned and produces a huge bogus count. We use the true
			// magnitude (n-c)>>2 instead, so forward seeks across a
			// 4-byte boundary actually terminate.
			for i := (n - c) >> 2; i > 0; i-- {
				ctx.xorKey += ctx.updateKey
			}
		}

	case V2:
		if resetCtx {
			ctx.updateKey = ctx.initKey
			ctx.xorKey = ((ctx.initKey >> 23) & 0xFF) | ((ctx.initKey >> 7) & 0xFF00)
		}
		if ctx.pos%2 == 1 && !resetCtx {
			loopTimes--
			updateV2(ctx)
		}
		loopTimes /= 2
		for ; loopTimes != 0; loopTimes-- {
			updateV2(ctx)
		}

	case V3, V4:
		if resetCtx {
			ctx.xorKey, ctx.updateKey = ctx.initKey, ctx.initKey
		}
		for ; loopTimes != 0; loopTimes-- {
			ctx.updateKey = ctx.updateKey*ctx.mulVal + ctx.addVal
			ctx.xorKey = ctx.updateKey
		}

	case V6:
		if resetCtx {
			ctx.xorKey, ctx.updateKey = ctx.initKey, ctx.initKey
			ctx.secondXorKey, ctx.secondUpdateKey = ctx.secondInitKey, ctx.secondInitKey
		}
		for ; loopTimes != 0; loopTimes-- {
			ctx.updateKey = ctx.updateKey*ctx.mulVal + ctx.addVal
			ctx.xorKey = ctx.updateKey
			ctx.secondUpdateKey = ctx.secondUpdateKey*ctx.secondMulVal + ctx.secondAddVal
			ctx.secondXorKey = ctx.secondUpdateKey
		}
	}

	ctx.pos = offset
	return nil
}
