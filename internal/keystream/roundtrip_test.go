package keystream

import (
	"bytes"
	"testing"
)

func roundtrip(t *testing.T, version Version, region Region, filename string, plaintext []byte) []byte {
	t.Helper()

	var encCtx Context
	header := make([]byte, 16)
	n, err := EncryptInit(&encCtx, version, region, "", nil, -1, filename, header)
	if err != nil {
		t.Fatalf("EncryptInit: %v", err)
	}
	header = header[:n]

	ciphertext := append([]byte(nil), plaintext...)
	Apply(&encCtx, ciphertext)

	var decCtx Context
	// Mimic the CLI peeking the first 4 bytes, then the next 12 if phase 2
	// is needed.
	peek := header
	if len(peek) > 4 {
		peek = peek[:4]
	}
	if err := DecryptInit(&decCtx, version, region, "", filename, peek); err != nil {
		t.Fatalf("DecryptInit: %v", err)
	}
	if NeedsPhase2(&decCtx) {
		if err := DecryptPhase2(&decCtx, region, nil, -1, filename, header[4:16]); err != nil {
			t.Fatalf("DecryptPhase2: %v", err)
		}
	}

	got := append([]byte(nil), ciphertext...)
	Apply(&decCtx, got)
	return got
}

func TestRoundtripAllVersions(t *testing.T) {
	plaintext := []byte("the quick brown fox jumps over the lazy dog, 0123456789, padding padding padding!!")

	for _, v := range []Version{V1, V2, V3, V4, V6} {
		for _, r := range []Region{RegionEN, RegionJP, RegionTW, RegionCN} {
			got := roundtrip(t, v, r, "assets/sprite_0001.png", plaintext)
			if !bytes.Equal(got, plaintext) {
				t.Errorf("version=%v region=%v: roundtrip mismatch\n got=%q\nwant=%q", v, r, got, plaintext)
			}
		}
	}
}

func TestRoundtripV5SingleCall(t *testing.T) {
	// V5's chain byte resets every Apply call, so it only round-trips
	// when the whole payload passes through a single call on each side —
	// exactly what this helper does.
	plaintext := []byte("V5 only chains correctly within one Apply call")
	got := roundtrip(t, V5, RegionJP, "movies/op.mp4", plaintext)
	if !bytes.Equal(got, plaintext) {
		t.Errorf("V5 roundtrip mismatch\n got=%q\nwant=%q", got, plaintext)
	}
}

func TestDecryptPhase2WrongVersionRejected(t *testing.T) {
	var encCtx Context
	header := make([]byte, 16)
	if _, err := EncryptInit(&encCtx, V4, RegionEN, "", nil, -1, "f.dat", header); err != nil {
		t.Fatalf("EncryptInit: %v", err)
	}

	// The header signature alone doesn't distinguish V3..V6 — DecryptInit
	// accepts the explicit V3 request, and only DecryptPhase2 discovers
	// (from the tag byte) that the file is actually V4.
	var decCtx Context
	if err := DecryptInit(&decCtx, V3, RegionEN, "", "f.dat", header[:4]); err != nil {
		t.Fatalf("DecryptInit: %v", err)
	}
	err := DecryptPhase2(&decCtx, RegionEN, nil, -1, "f.dat", header[4:16])
	if err == nil {
		t.Fatal("expected InvalidMethod error, got nil")
	}
	kerr, ok := err.(*Error)
	if !ok || kerr.Kind != KindInvalidMethod {
		t.Fatalf("expected KindInvalidMethod, got %v", err)
	}
}

func TestDecryptInitAutoRegion(t *testing.T) {
	var encCtx Context
	header := make([]byte, 16)
	if _, err := EncryptInit(&encCtx, V3, RegionTW, "", nil, -1, "a/b/c.unity3d", header); err != nil {
		t.Fatalf("EncryptInit: %v", err)
	}

	var decCtx Context
	region, err := DecryptInitAutoRegion(&decCtx, "a/b/c.unity3d", header[:4])
	if err != nil {
		t.Fatalf("DecryptInitAutoRegion: %v", err)
	}
	if region != RegionTW {
		t.Fatalf("expected RegionTW, got %v", region)
	}
}

func TestSeekMatchesSequentialApply(t *testing.T) {
	plaintext := make([]byte, 257)
	for i := range plaintext {
		plaintext[i] = byte(i)
	}

	for _, v := range []Version{V1, V2, V3, V4, V6} {
		var encCtx Context
		header := make([]byte, 16)
		if _, err := EncryptInit(&encCtx, v, RegionCN, "", nil, -1, "data.bin", header); err != nil {
			t.Fatalf("version=%v: EncryptInit: %v", v, err)
		}
		ciphertext := append([]byte(nil), plaintext...)
		Apply(&encCtx, ciphertext)

		// Decrypt sequentially from the start.
		var seqCtx Context
		if err := DecryptInit(&seqCtx, v, RegionCN, "", "data.bin", header[:4]); err != nil {
			t.Fatalf("version=%v: DecryptInit: %v", v, err)
		}
		if NeedsPhase2(&seqCtx) {
			if err := DecryptPhase2(&seqCtx, RegionCN, nil, -1, "data.bin", header[4:16]); err != nil {
				t.Fatalf("version=%v: DecryptPhase2: %v", v, err)
			}
		}
		seqOut := append([]byte(nil), ciphertext...)
		Apply(&seqCtx, seqOut)

		// Decrypt by seeking straight to a midpoint and applying the tail.
		const mid = 131
		var seekCtx Context
		if err := DecryptInit(&seekCtx, v, RegionCN, "", "data.bin", header[:4]); err != nil {
			t.Fatalf("version=%v: DecryptInit: %v", v, err)
		}
		if NeedsPhase2(&seekCtx) {
			if err := DecryptPhase2(&seekCtx, RegionCN, nil, -1, "data.bin", header[4:16]); err != nil {
				t.Fatalf("version=%v: DecryptPhase2: %v", v, err)
			}
		}
		if err := Seek(&seekCtx, mid); err != nil {
			t.Fatalf("version=%v: Seek: %v", v, err)
		}
		tail := append([]byte(nil), ciphertext[mid:]...)
		Apply(&seekCtx, tail)

		if !bytes.Equal(tail, seqOut[mid:]) {
			t.Errorf("version=%v: seek-then-apply diverged from sequential apply\n got=%v\nwant=%v", v, tail, seqOut[mid:])
		}
	}
}

func TestSeekV5Unimplemented(t *testing.T) {
	var ctx Context
	header := make([]byte, 16)
	if _, err := EncryptInit(&ctx, V5, RegionJP, "", nil, -1, "f.dat", header); err != nil {
		t.Fatalf("EncryptInit: %v", err)
	}
	err := Seek(&ctx, 10)
	kerr, ok := err.(*Error)
	if !ok || kerr.Kind != KindUnimplemented {
		t.Fatalf("expected KindUnimplemented, got %v", err)
	}
}

func TestBasename(t *testing.T) {
	cases := map[string]string{
		"foo.png":         "foo.png",
		"a/b/c.png":       "c.png",
		`a\b\c.png`:       "c.png",
		"a/b\\c/d.png":    "d.png",
		"":                "",
		"trailing/slash/": "",
	}
	for in, want := range cases {
		if got := Basename(in); got != want {
			t.Errorf("Basename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadCustomKeyTableRoundtrip(t *testing.T) {
	var want [64]uint32
	for i := range want {
		want[i] = uint32(i)*0x01010101 + 7
	}

	var buf bytes.Buffer
	for _, v := range want {
		buf.WriteByte(byte(v))
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v >> 16))
		buf.WriteByte(byte(v >> 24))
	}

	got, err := LoadCustomKeyTable(&buf)
	if err != nil {
		t.Fatalf("LoadCustomKeyTable: %v", err)
	}
	if *got != want {
		t.Fatalf("LoadCustomKeyTable round-trip mismatch")
	}
}

func TestCustomGameFileRoundtrip(t *testing.T) {
	var customTable [64]uint32
	for i := range customTable {
		customTable[i] = uint32(i*97 + 13)
	}
	const customPrefix = "MyCustomPrefix123"

	var encCtx Context
	header := make([]byte, 16)
	n, err := EncryptInit(&encCtx, V3, RegionUnknown, customPrefix, &customTable, -1, "custom/asset.dat", header)
	if err != nil {
		t.Fatalf("EncryptInit: %v", err)
	}
	header = header[:n]

	plaintext := []byte("custom game file content")
	ciphertext := append([]byte(nil), plaintext...)
	Apply(&encCtx, ciphertext)

	var decCtx Context
	if err := DecryptInit(&decCtx, V3, RegionUnknown, customPrefix, "custom/asset.dat", header[:4]); err != nil {
		t.Fatalf("DecryptInit: %v", err)
	}
	if !NeedsPhase2(&decCtx) {
		t.Fatal("expected phase 2 to be required for V3")
	}
	if err := DecryptPhase2(&decCtx, RegionUnknown, &customTable, -1, "custom/asset.dat", header[4:16]); err != nil {
		t.Fatalf("DecryptPhase2: %v", err)
	}

	got := append([]byte(nil), ciphertext...)
	Apply(&decCtx, got)
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("custom game file roundtrip mismatch\n got=%q\nwant=%q", got, plaintext)
	}
}
