// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package texfile parses the proprietary TEX texture container and decodes
// its pixel data into a standard image for PNG export.
//
// A TEX file starts with a 32-byte big-endian header: a 4-byte magic
// ("TEX\n"), version, pixel format, mipmap count, an opaque-bitmap flag,
// 16-bit width and height, a 32-bit scale, and offset/size pairs for the
// pixel block and the opacity bitmap block.
package texfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
)

// Magic identifies a TEX container.
var Magic = [4]byte{'T', 'E', 'X', '\n'}

// SupportedVersion is the only container version the decoder accepts.
const SupportedVersion = 2

// HeaderSize is the fixed size of the TEX header in bytes.
const HeaderSize = 32

// Format is the pixel format byte from the TEX header.
type Format uint8

const (
	// FormatBGRA8888 stores 4 bytes per pixel in BGRA order.
	FormatBGRA8888 Format = 0x08
	// FormatBGRA5551 stores a little-endian uint16 per pixel with
	// 5-bit color channels and the alpha bit on top.
	FormatBGRA5551 Format = 0x0A
	// FormatPVRTC2RGBA is present in the wild but not decodable here.
	FormatPVRTC2RGBA Format = 0x84
)

func (f Format) String() string {
	switch f {
	case FormatBGRA8888:
		return "BGRA8888"
	case FormatBGRA5551:
		return "BGRA5551"
	case FormatPVRTC2RGBA:
		return "PVRTC2_RGBA"
	}
	return fmt.Sprintf("0x%02X", uint8(f))
}

// Header is the fixed-size TEX container header.
type Header struct {
	Version      uint8
	Format       Format
	Mipmaps      uint8
	OpaqueBitmap uint8
	Width        int16
	Height       int16
	Scale        int32
	PixelsOffset int32
	PixelsSize   int32
	BitmapOffset int32
	BitmapSize   int32
}

// ParseHeader validates and decodes the first 32 bytes of a TEX file.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("not a tex file: %d bytes is shorter than the %d-byte header", len(data), HeaderSize)
	}
	if !bytes.Equal(data[:4], Magic[:]) {
		return Header{}, fmt.Errorf("not a tex file: mismatched magic %q", data[:4])
	}

	h := Header{
		Version:      data[4],
		Format:       Format(data[5]),
		Mipmaps:      data[6],
		OpaqueBitmap: data[7],
		Width:        int16(binary.BigEndian.Uint16(data[8:10])),
		Height:       int16(binary.BigEndian.Uint16(data[10:12])),
		Scale:        int32(binary.BigEndian.Uint32(data[12:16])),
		PixelsOffset: int32(binary.BigEndian.Uint32(data[16:20])),
		PixelsSize:   int32(binary.BigEndian.Uint32(data[20:24])),
		BitmapOffset: int32(binary.BigEndian.Uint32(data[24:28])),
		BitmapSize:   int32(binary.BigEndian.Uint32(data[28:32])),
	}

	if h.Version != SupportedVersion {
		return Header{}, fmt.Errorf("unsupported tex file version: %d", h.Version)
	}
	switch h.Format {
	case FormatBGRA8888, FormatBGRA5551, FormatPVRTC2RGBA:
	default:
		return Header{}, fmt.Errorf("unsupported texture format: 0x%02X", uint8(h.Format))
	}
	if h.Width < 0 || h.Height < 0 {
		return Header{}, fmt.Errorf("invalid texture dimensions: %dx%d", h.Width, h.Height)
	}
	if h.PixelsOffset < 0 || h.PixelsSize < 0 || int(h.PixelsOffset)+int(h.PixelsSize) > len(data) {
		return Header{}, fmt.Errorf("pixel block [%d, %d) extends past end of file (%d bytes)",
			h.PixelsOffset, int(h.PixelsOffset)+int(h.PixelsSize), len(data))
	}

	return h, nil
}

// Decode parses a whole TEX file and returns its pixel data as an RGBA
// image. PVRTC2 textures parse but fail here: their decoding is not
// implemented.
func Decode(data []byte) (*image.RGBA, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	pixels := data[h.PixelsOffset : int(h.PixelsOffset)+int(h.PixelsSize)]
	w, ht := int(h.Width), int(h.Height)

	switch h.Format {
	case FormatBGRA8888:
		return decodeBGRA8888(pixels, w, ht)
	case FormatBGRA5551:
		return decodeBGRA5551(pixels, w, ht)
	default:
		return nil, fmt.Errorf("conversion from %s is not implemented", h.Format)
	}
}

// decodeBGRA8888 swizzles 4-byte BGRA pixels into an RGBA image.
func decodeBGRA8888(pixels []byte, w, h int) (*image.RGBA, error) {
	if len(pixels) != w*h*4 {
		return nil, fmt.Errorf("BGRA8888 pixel block is %d bytes, want %d for %dx%d", len(pixels), w*h*4, w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		img.Pix[i+0] = pixels[i+2]
		img.Pix[i+1] = pixels[i+1]
		img.Pix[i+2] = pixels[i+0]
		img.Pix[i+3] = pixels[i+3]
	}
	return img, nil
}

// decodeBGRA5551 expands 16-bit pixels into 8-bit RGBA. Each pixel is a
// little-endian uint16 holding the alpha bit on top, then 5 bits each of
// red, green, and blue; channels scale by 0xFF/0x1F.
func decodeBGRA5551(pixels []byte, w, h int) (*image.RGBA, error) {
	if len(pixels) != w*h*2 {
		return nil, fmt.Errorf("BGRA5551 pixel block is %d bytes, want %d for %dx%d", len(pixels), w*h*2, w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 2 {
		v := binary.LittleEndian.Uint16(pixels[i : i+2])
		o := i * 2
		img.Pix[o+0] = uint8((uint32(v>>10) & 0x1F) * 0xFF / 0x1F)
		img.Pix[o+1] = uint8((uint32(v>>5) & 0x1F) * 0xFF / 0x1F)
		img.Pix[o+2] = uint8((uint32(v) & 0x1F) * 0xFF / 0x1F)
		img.Pix[o+3] = uint8((v >> 15) * 0xFF)
	}
	return img, nil
}
