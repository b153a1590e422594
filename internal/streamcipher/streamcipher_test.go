package streamcipher_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/DarkEnergyProcessor/honokamiku/internal/keystream"
	"github.com/DarkEnergyProcessor/honokamiku/internal/streamcipher"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessorEncryptDecryptRoundtrip(t *testing.T) {
	tests := []struct {
		name    string
		version keystream.Version
		region  keystream.Region
	}{
		{"v1 EN", keystream.V1, keystream.RegionEN},
		{"v2 JP", keystream.V2, keystream.RegionJP},
		{"v3 TW", keystream.V3, keystream.RegionTW},
		{"v4 CN", keystream.V4, keystream.RegionCN},
		{"v6 EN", keystream.V6, keystream.RegionEN},
	}

	plaintext := bytes.Repeat([]byte("stream cipher roundtrip across multiple 4096-byte chunks! "), 200)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := streamcipher.New(discardLogger())
			ks := streamcipher.KeySource{Region: tt.region, NameSum: -1}

			var ciphertext bytes.Buffer
			if err := proc.Encrypt(bytes.NewReader(plaintext), &ciphertext, ks, tt.version, "assets/movie.usm"); err != nil {
				t.Fatalf("Encrypt() failed: %v", err)
			}

			var decrypted bytes.Buffer
			version, err := proc.Decrypt(bytes.NewReader(ciphertext.Bytes()), &decrypted, ks, "assets/movie.usm")
			if err != nil {
				t.Fatalf("Decrypt() failed: %v", err)
			}
			if version != tt.version {
				t.Errorf("Decrypt() detected version = %v, want %v", version, tt.version)
			}
			if !bytes.Equal(decrypted.Bytes(), plaintext) {
				t.Errorf("Decrypt() output mismatch (len got=%d want=%d)", decrypted.Len(), len(plaintext))
			}
		})
	}
}

func TestProcessorDecryptAutoDetectsRegion(t *testing.T) {
	proc := streamcipher.New(discardLogger())
	plaintext := []byte("auto-detect region and version from the header alone")

	var ciphertext bytes.Buffer
	encryptKS := streamcipher.KeySource{Region: keystream.RegionCN, NameSum: -1}
	if err := proc.Encrypt(bytes.NewReader(plaintext), &ciphertext, encryptKS, keystream.V3, "data/config.json"); err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}

	var decrypted bytes.Buffer
	decryptKS := streamcipher.KeySource{Region: keystream.RegionUnknown, NameSum: -1}
	version, err := proc.Decrypt(bytes.NewReader(ciphertext.Bytes()), &decrypted, decryptKS, "data/config.json")
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	if version != keystream.V3 {
		t.Errorf("Decrypt() detected version = %v, want V3", version)
	}
	if !bytes.Equal(decrypted.Bytes(), plaintext) {
		t.Errorf("Decrypt() output mismatch\n got=%q\nwant=%q", decrypted.Bytes(), plaintext)
	}
}

func TestProcessorDetect(t *testing.T) {
	proc := streamcipher.New(discardLogger())
	plaintext := []byte("detect mode never touches the body")

	var ciphertext bytes.Buffer
	ks := streamcipher.KeySource{Region: keystream.RegionJP, NameSum: -1}
	if err := proc.Encrypt(bytes.NewReader(plaintext), &ciphertext, ks, keystream.V4, "movies/op.mp4"); err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}

	result, err := proc.Detect(bytes.NewReader(ciphertext.Bytes()), streamcipher.KeySource{NameSum: -1}, "movies/op.mp4")
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}
	if result.Region != keystream.RegionJP || result.Version != keystream.V4 {
		t.Errorf("Detect() = %+v, want region=JP version=V4", result)
	}
}

func TestProcessorDetectUnknownGamefile(t *testing.T) {
	proc := streamcipher.New(discardLogger())
	garbage := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF, 0x01}, 4)

	_, err := proc.Detect(bytes.NewReader(garbage), streamcipher.KeySource{NameSum: -1}, "unknown.bin")
	if err == nil {
		t.Fatal("Detect() succeeded unexpectedly on non-gamefile input, wanted error")
	}
}

func TestProcessorCustomRegion(t *testing.T) {
	var table [64]uint32
	for i := range table {
		table[i] = uint32(i*31 + 1)
	}
	const prefix = "ExampleCustomPrefix"

	proc := streamcipher.New(discardLogger())
	plaintext := []byte("custom region plumbed straight through the key table")
	ks := streamcipher.KeySource{Region: keystream.RegionUnknown, Prefix: prefix, KeyTable: &table, NameSum: -1}

	var ciphertext bytes.Buffer
	if err := proc.Encrypt(bytes.NewReader(plaintext), &ciphertext, ks, keystream.V3, "custom/payload.dat"); err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}

	var decrypted bytes.Buffer
	version, err := proc.Decrypt(bytes.NewReader(ciphertext.Bytes()), &decrypted, ks, "custom/payload.dat")
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	if version != keystream.V3 {
		t.Errorf("Decrypt() detected version = %v, want V3", version)
	}
	if !bytes.Equal(decrypted.Bytes(), plaintext) {
		t.Errorf("Decrypt() output mismatch\n got=%q\nwant=%q", decrypted.Bytes(), plaintext)
	}
}
