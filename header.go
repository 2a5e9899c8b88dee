// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// A ColorFormat is a supported PNG colour type.
type ColorFormat byte

const (
	RGBTriple ColorFormat = 2 // R, G, B samples
	RGBAQuad  ColorFormat = 6 // R, G, B, A samples
)

func (f ColorFormat) String() string {
	switch f {
	case RGBTriple:
		return "RGB"
	case RGBAQuad:
		return "RGBA"
	}
	return fmt.Sprintf("ColorFormat(%d)", byte(f))
}

// Channels returns the number of samples per pixel.
func (f ColorFormat) Channels() int {
	switch f {
	case RGBTriple:
		return 3
	case RGBAQuad:
		return 4
	}
	panic("pngdec: invalid ColorFormat " + f.String())
}

// A Header holds the contents of the IHDR chunk.
type Header struct {
	Width, Height     int
	BitDepth          uint8
	Format            ColorFormat
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// BytesPerPixel returns the number of bytes per complete pixel.
func (h *Header) BytesPerPixel() int {
	return int(h.BitDepth) / 8 * h.Format.Channels()
}

// ihdr is the IHDR chunk payload as laid out in the stream.
type ihdr struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

const ihdrLen = 13

// rawLen returns the size of the decompressed image data.
func (h *Header) rawLen() int {
	return h.Height * (h.Width*h.BytesPerPixel() + 1)
}

func parseHeader(c *chunk) (*Header, error) {
	if c.length != ihdrLen {
		return nil, FormatError(fmt.Sprintf(
			"IHDR chunk length %d, want %d", c.length, ihdrLen))
	}
	var raw ihdr
	if err := binary.Read(bytes.NewReader(c.data), binary.BigEndian, &raw); err != nil {
		return nil, FormatError("short IHDR chunk")
	}
	if raw.Width == 0 || raw.Height == 0 ||
		raw.Width > maxChunkLen || raw.Height > maxChunkLen {
		return nil, FormatError(fmt.Sprintf(
			"invalid dimensions %dx%d", raw.Width, raw.Height))
	}
	switch raw.BitDepth {
	case 1, 2, 4, 8, 16:
	default:
		return nil, UnsupportedFormatError(fmt.Sprintf(
			"bit depth %d", raw.BitDepth))
	}
	h := &Header{
		Width:             int(raw.Width),
		Height:            int(raw.Height),
		BitDepth:          raw.BitDepth,
		Format:            ColorFormat(raw.ColorType),
		CompressionMethod: raw.Compression,
		FilterMethod:      raw.Filter,
		InterlaceMethod:   raw.Interlace,
	}
	switch h.Format {
	case RGBTriple, RGBAQuad:
	default:
		return nil, UnsupportedFormatError(fmt.Sprintf(
			"color type %d", raw.ColorType))
	}
	if h.CompressionMethod != 0 {
		return nil, UnsupportedFormatError(fmt.Sprintf(
			"compression method %d", h.CompressionMethod))
	}
	if h.FilterMethod != 0 {
		return nil, UnsupportedFormatError(fmt.Sprintf(
			"filter method %d", h.FilterMethod))
	}
	switch h.InterlaceMethod {
	case 0:
	case 1:
		return nil, UnsupportedFormatError("Adam7 interlacing")
	default:
		return nil, FormatError(fmt.Sprintf(
			"interlace method %d", h.InterlaceMethod))
	}
	// Decompressed size, filter bytes included, must fit in an int.
	rowLen := int64(h.Width)*int64(h.Format.Channels()) + 1
	if n := rowLen * int64(h.Height); n != int64(int(n)) || n > 1<<40 {
		return nil, UnsupportedFormatError(fmt.Sprintf(
			"image too large: %dx%d", h.Width, h.Height))
	}
	return h, nil
}
