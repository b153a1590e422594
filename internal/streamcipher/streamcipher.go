// Package streamcipher drives internal/keystream over real files: it owns
// the buffered, chunked read/apply/write loop a CLI needs, plus the
// header-peek dance (4 bytes, then — for V3+ — 12 more) that
// keystream.DecryptInit and keystream.DecryptPhase2 call for.
//
// Reference: original_source/honokamiku_program.c's main(), which this
// package generalizes from a single hardcoded CLI flow into a reusable
// Processor, the way internal/parser.WzReader generalized MapleStory's WZ
// header/body walk.
package streamcipher

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/DarkEnergyProcessor/honokamiku/internal/keystream"
)

// BufferSize is the chunk size copyThroughCipher reads and decrypts/encrypts at a
// time. It matches the reference tool's BUFFER_SIZE exactly: V5's chain
// byte resets on every keystream.Apply call (see keystream.Apply's docs),
// so an encrypted V5 file's chunk boundaries are baked into the
// ciphertext — decrypting with a different chunk size would produce
// garbage from the second chunk on.
const BufferSize = 4096

// KeySource resolves the region/prefix/key-table inputs an Initializer
// needs. A known Region leaves Prefix/KeyTable/NameSum unused (the
// keystream package fills them in from the region). Region ==
// keystream.RegionUnknown with a Prefix selects a custom game file, which
// for V3+ also needs KeyTable; RegionUnknown with no Prefix makes Decrypt
// and Detect try each known region in turn (Encrypt rejects it).
type KeySource struct {
	Region   keystream.Region
	Prefix   string
	KeyTable *[64]uint32
	NameSum  int // -1 means "derive from Prefix"
}

// Processor runs encrypt/decrypt/detect operations against a KeySource.
type Processor struct {
	logger *slog.Logger
}

// New builds a Processor that logs to logger, or to slog.Default() if nil.
func New(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger}
}

// DetectResult reports what Detect found.
type DetectResult struct {
	Region  keystream.Region
	Version keystream.Version
}

// Detect peeks enough of r's header to identify its region and version,
// without decrypting the body. r must support re-reading from the start
// if the caller also wants to Decrypt it afterward (os.File does).
func (p *Processor) Detect(r io.Reader, ks KeySource, filename string) (DetectResult, error) {
	var ctx keystream.Context
	region, version, err := p.initDecrypt(&ctx, r, ks, filename)
	if err != nil {
		return DetectResult{}, err
	}
	p.logger.Info("detected gamefile", "file", filename, "region", region, "version", version)
	return DetectResult{Region: region, Version: version}, nil
}

// Decrypt reads r's header, derives the keystream, and writes the
// decrypted body to w.
//
// The version is always auto-detected from the header, which identifies
// V2 through V6 only. V1 files carry no header, so Decrypt never selects
// V1 and returns an error for a V1 file; the V1 branch below, which feeds
// the 4 probed bytes back through Apply as ciphertext, is not reached.
func (p *Processor) Decrypt(r io.Reader, w io.Writer, ks KeySource, filename string) (keystream.Version, error) {
	var ctx keystream.Context
	probe := make([]byte, 4)
	n, err := io.ReadFull(r, probe)
	if err != nil {
		return keystream.VNone, fmt.Errorf("streamcipher: decrypt: reading header: %w", err)
	}
	probe = probe[:n]

	_, version, err := p.initDecryptFromProbe(&ctx, r, probe, ks, filename)
	if err != nil {
		return keystream.VNone, err
	}

	var prefix io.Reader
	if version == keystream.V1 {
		prefix = bytes.NewReader(probe)
	}
	if err := copyThroughCipher(&ctx, prefix, r, w); err != nil {
		return version, err
	}
	return version, nil
}

// Encrypt derives the keystream for filename/ks/version, writes the
// version's header to w, then encrypts r's contents to w.
func (p *Processor) Encrypt(r io.Reader, w io.Writer, ks KeySource, version keystream.Version, filename string) error {
	var ctx keystream.Context
	header := make([]byte, 16)
	n, err := keystream.EncryptInit(&ctx, version, ks.Region, ks.Prefix, ks.KeyTable, ks.NameSum, filename, header)
	if err != nil {
		return fmt.Errorf("streamcipher: encrypt: init: %w", err)
	}
	if n > 0 {
		if _, err := w.Write(header[:n]); err != nil {
			return fmt.Errorf("streamcipher: encrypt: writing header: %w", err)
		}
	}
	return copyThroughCipher(&ctx, nil, r, w)
}

// initDecrypt reads the 4-byte (and, for V3+, the following 12-byte)
// header from r and finalizes ctx, auto-detecting the region if
// ks.Region is keystream.RegionUnknown.
func (p *Processor) initDecrypt(ctx *keystream.Context, r io.Reader, ks KeySource, filename string) (keystream.Region, keystream.Version, error) {
	probe := make([]byte, 4)
	n, err := io.ReadFull(r, probe)
	if err != nil {
		return keystream.RegionUnknown, keystream.VNone, fmt.Errorf("streamcipher: reading header: %w", err)
	}
	return p.initDecryptFromProbe(ctx, r, probe[:n], ks, filename)
}

func (p *Processor) initDecryptFromProbe(ctx *keystream.Context, r io.Reader, probe []byte, ks KeySource, filename string) (keystream.Region, keystream.Version, error) {
	region := ks.Region
	if region == keystream.RegionUnknown && ks.Prefix == "" {
		var err error
		region, err = keystream.DecryptInitAutoRegion(ctx, filename, probe)
		if err != nil {
			return keystream.RegionUnknown, keystream.VNone, fmt.Errorf("streamcipher: unknown gamefile: %w", err)
		}
	} else {
		if err := keystream.DecryptInit(ctx, keystream.Auto, region, ks.Prefix, filename, probe); err != nil {
			return keystream.RegionUnknown, keystream.VNone, fmt.Errorf("streamcipher: cannot decrypt with specified gamefile: %w", err)
		}
	}

	if keystream.NeedsPhase2(ctx) {
		next := make([]byte, 12)
		if _, err := io.ReadFull(r, next); err != nil {
			return region, keystream.VNone, fmt.Errorf("streamcipher: reading extended header: %w", err)
		}
		if err := keystream.DecryptPhase2(ctx, region, ks.KeyTable, ks.NameSum, filename, next); err != nil {
			return region, keystream.VNone, fmt.Errorf("streamcipher: unknown v3+ decryption method: %w", err)
		}
	}

	return region, ctx.Version(), nil
}

// copyThroughCipher streams body through ctx in BufferSize chunks, writing
// each chunk to w as it's transformed. prefix, if non-nil, is read (and
// transformed) before body — used to re-inject V1's probed header bytes.
func copyThroughCipher(ctx *keystream.Context, prefix, body io.Reader, w io.Writer) error {
	buf := make([]byte, BufferSize)
	offset := 0

	if prefix != nil {
		n, err := io.ReadFull(prefix, buf)
		if err != nil && err != io.ErrUnexpectedEOF {
			return fmt.Errorf("streamcipher: reading prefix: %w", err)
		}
		offset = n
	}

	for {
		n, err := body.Read(buf[offset:])
		total := offset + n
		offset = 0
		if total > 0 {
			keystream.Apply(ctx, buf[:total])
			if _, werr := w.Write(buf[:total]); werr != nil {
				return fmt.Errorf("streamcipher: writing output: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("streamcipher: reading input: %w", err)
		}
	}
}
