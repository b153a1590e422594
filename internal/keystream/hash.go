package keystream

import "crypto/md5"

// Hasher is the three-call collaborator the Initializer drives to derive
// key material: reset, feed bytes, finalize to a 16-byte digest. The core
// treats the hash algorithm as an opaque black box (spec.md §2) — it never
// reaches into crypto/md5 directly outside this file, so a differently
// keyed cipher family could supply a different Hasher without touching
// init_decrypt.go or init_encrypt.go.
type Hasher interface {
	Reset()
	Write(p []byte) (n int, err error)
	Sum() [16]byte
}

// md5Hasher adapts crypto/md5 to Hasher. MD5 is mandated bit-for-bit by the
// cipher family (every region's header signature is an MD5 digest slice),
// not a choice this package makes, so it is wired directly rather than
// routed through a configurable hash registry.
type md5Hasher struct {
	h interface {
		Reset()
		Write(p []byte) (int, error)
		Sum(b []byte) []byte
	}
}

func newMD5Hasher() *md5Hasher {
	return &md5Hasher{h: md5.New()}
}

func (m *md5Hasher) Reset()                      { m.h.Reset() }
func (m *md5Hasher) Write(p []byte) (int, error) { return m.h.Write(p) }
func (m *md5Hasher) Sum() [16]byte {
	var out [16]byte
	copy(out[:], m.h.Sum(nil))
	return out
}

// digestFor computes MD5(prefix || basename(filename)), the key material
// every region's Initializer derives state from.
func digestFor(prefix, filename string) [16]byte {
	h := newMD5Hasher()
	h.Write([]byte(prefix))
	h.Write([]byte(Basename(filename)))
	return h.Sum()
}
