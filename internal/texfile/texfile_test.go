// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package texfile

import (
	"encoding/binary"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildTex assembles a minimal TEX file: a 32-byte header followed
// immediately by the pixel block.
func buildTex(version uint8, format Format, width, height int16, pixels []byte) []byte {
	data := make([]byte, HeaderSize, HeaderSize+len(pixels))
	copy(data[:4], Magic[:])
	data[4] = version
	data[5] = byte(format)
	binary.BigEndian.PutUint16(data[8:10], uint16(width))
	binary.BigEndian.PutUint16(data[10:12], uint16(height))
	binary.BigEndian.PutUint32(data[12:16], 1)
	binary.BigEndian.PutUint32(data[16:20], HeaderSize)
	binary.BigEndian.PutUint32(data[20:24], uint32(len(pixels)))
	return append(data, pixels...)
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		errMsg string
	}{
		{
			name:   "too short",
			data:   []byte("TEX\n"),
			errMsg: "shorter than",
		},
		{
			name:   "bad magic",
			data:   buildTexWithMagic([4]byte{'P', 'N', 'G', '\n'}),
			errMsg: "mismatched magic",
		},
		{
			name:   "wrong version",
			data:   buildTex(3, FormatBGRA8888, 1, 1, make([]byte, 4)),
			errMsg: "unsupported tex file version: 3",
		},
		{
			name:   "unknown format",
			data:   buildTex(2, Format(0x42), 1, 1, make([]byte, 4)),
			errMsg: "unsupported texture format: 0x42",
		},
		{
			name: "pixel block past end",
			data: func() []byte {
				d := buildTex(2, FormatBGRA8888, 4, 4, make([]byte, 4*4*4))
				return d[:40]
			}(),
			errMsg: "extends past end",
		},
		{
			name: "valid BGRA8888",
			data: buildTex(2, FormatBGRA8888, 2, 2, make([]byte, 2*2*4)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(tt.data)
			if tt.errMsg != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
					t.Fatalf("error = %v, want containing %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.Version != SupportedVersion {
				t.Errorf("version = %d, want %d", h.Version, SupportedVersion)
			}
			if h.Width != 2 || h.Height != 2 {
				t.Errorf("dimensions = %dx%d, want 2x2", h.Width, h.Height)
			}
		})
	}
}

func buildTexWithMagic(magic [4]byte) []byte {
	data := buildTex(2, FormatBGRA8888, 1, 1, make([]byte, 4))
	copy(data[:4], magic[:])
	return data
}

func TestDecodeBGRA8888(t *testing.T) {
	// One pixel: B=0x10, G=0x20, R=0x30, A=0x40 swizzles to RGBA.
	data := buildTex(2, FormatBGRA8888, 1, 1, []byte{0x10, 0x20, 0x30, 0x40})

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got := img.RGBAAt(0, 0)
	want := color.RGBA{R: 0x30, G: 0x20, B: 0x10, A: 0x40}
	if got != want {
		t.Errorf("pixel = %+v, want %+v", got, want)
	}
}

func TestDecodeBGRA5551(t *testing.T) {
	tests := []struct {
		name  string
		pixel uint16
		want  color.RGBA
	}{
		{
			name:  "opaque white",
			pixel: 0xFFFF,
			want:  color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		},
		{
			name:  "transparent black",
			pixel: 0x0000,
			want:  color.RGBA{},
		},
		{
			name: "opaque red",
			// alpha bit plus 0x1F in the red field (bits 10-14).
			pixel: 0x8000 | 0x1F<<10,
			want:  color.RGBA{R: 0xFF, A: 0xFF},
		},
		{
			name:  "opaque green",
			pixel: 0x8000 | 0x1F<<5,
			want:  color.RGBA{G: 0xFF, A: 0xFF},
		},
		{
			name:  "opaque blue",
			pixel: 0x8000 | 0x1F,
			want:  color.RGBA{B: 0xFF, A: 0xFF},
		},
		{
			name: "mid gray",
			// 16/31 in each channel scales to 16*255/31 = 131.
			pixel: 0x8000 | 0x10<<10 | 0x10<<5 | 0x10,
			want:  color.RGBA{R: 131, G: 131, B: 131, A: 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := make([]byte, 2)
			binary.LittleEndian.PutUint16(raw, tt.pixel)
			data := buildTex(2, FormatBGRA5551, 1, 1, raw)

			img, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := img.RGBAAt(0, 0); got != tt.want {
				t.Errorf("pixel = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodePVRTC2Unsupported(t *testing.T) {
	data := buildTex(2, FormatPVRTC2RGBA, 2, 2, make([]byte, 8))
	if _, err := Decode(data); err == nil || !strings.Contains(err.Error(), "not implemented") {
		t.Fatalf("error = %v, want not-implemented", err)
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	data := buildTex(2, FormatBGRA8888, 2, 2, make([]byte, 4))
	if _, err := Decode(data); err == nil || !strings.Contains(err.Error(), "want 16") {
		t.Fatalf("error = %v, want size mismatch", err)
	}
}

func TestDecodeFileWritePNG(t *testing.T) {
	dir := t.TempDir()
	texPath := filepath.Join(dir, "red.tex")
	pngPath := filepath.Join(dir, "red.png")

	// 2x1 BGRA8888, both pixels opaque red.
	pixels := []byte{0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0xFF}
	if err := os.WriteFile(texPath, buildTex(2, FormatBGRA8888, 2, 1, pixels), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeFile(texPath)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if err := WritePNG(pngPath, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	out, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding written PNG: %v", err)
	}
	if out.Bounds().Dx() != 2 || out.Bounds().Dy() != 1 {
		t.Errorf("bounds = %v, want 2x1", out.Bounds())
	}
	r, g, b, a := out.At(0, 0).RGBA()
	if r != 0xFFFF || g != 0 || b != 0 || a != 0xFFFF {
		t.Errorf("pixel = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "absent.tex")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
