// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pngdec decodes 8-bit truecolour PNG images.

The decoder reads the chunk container, collects the IDAT stream,
inflates it and reverses the per-scanline filters into a Raster of
packed 0xAARRGGBB pixels.  Colour types 2 (RGB) and 6 (RGBA) at bit
depth 8, non-interlaced, are supported.

Unknown chunks are skipped, critical or not, and CRCs are not checked.
Decoder.Strict and Decoder.CheckCRC enable the respective checks.
*/
package pngdec // import "github.com/unixdj/pngdec"

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/rs/zerolog"
)

// A Decoder decodes PNG streams.  The zero value is a lenient decoder
// using Inflate.  A Decoder may be used by multiple goroutines.
type Decoder struct {
	// Strict rejects unknown critical chunks other than PLTE.
	Strict bool
	// CheckCRC verifies the checksum of every chunk.
	CheckCRC bool
	// Inflate decompresses the image data; nil means Inflate.
	Inflate InflateFunc
	// Logger receives debug events; nil disables logging.
	Logger *zerolog.Logger
}

// An Image is a decoded PNG image.
type Image struct {
	*Raster
	Header  Header
	Profile *Profile    // first iCCP chunk, or nil
	Chunks  []ChunkInfo // all chunks in stream order
}

var nopLogger = zerolog.Nop()

func (d *Decoder) log() *zerolog.Logger {
	if d.Logger == nil {
		return &nopLogger
	}
	return d.Logger
}

// Decode decodes a PNG image from r with the default Decoder.
func Decode(r io.Reader) (*Image, error) {
	var d Decoder
	return d.Decode(r)
}

// DecodeConfig returns the dimensions and colour model of the PNG
// image in r without decoding its pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d Decoder
	return d.DecodeConfig(r)
}

// DecodeConfig returns the dimensions and colour model of the PNG
// image in r.  Only the signature and IHDR chunk are read.
func (d *Decoder) DecodeConfig(r io.Reader) (image.Config, error) {
	cr, err := newChunkReader(r)
	if err != nil {
		return image.Config{}, err
	}
	cr.checkCRC = d.CheckCRC
	c, err := cr.next()
	if err != nil {
		return image.Config{}, err
	}
	h, err := parseHeader(c)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

// Decode decodes a PNG image from r.  Reading stops after the IEND
// chunk.
func (d *Decoder) Decode(r io.Reader) (*Image, error) {
	log := d.log()
	cr, err := newChunkReader(r)
	if err != nil {
		return nil, err
	}
	cr.checkCRC = d.CheckCRC

	var (
		img    Image
		h      *Header
		stream dataStream
	)
	for {
		c, err := cr.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		img.Chunks = append(img.Chunks, ChunkInfo{c.typ, c.length})
		log.Debug().Str("type", c.typ.String()).
			Uint32("length", c.length).Msg("chunk")

		switch c.kind {
		case headerChunk:
			if h, err = parseHeader(c); err != nil {
				return nil, err
			}
			log.Debug().Int("width", h.Width).Int("height", h.Height).
				Uint8("depth", h.BitDepth).Stringer("format", h.Format).
				Msg("header")
			// Only 8-bit samples are reconstructed.
			if h.BitDepth != 8 {
				return nil, UnsupportedFormatError(fmt.Sprintf(
					"bit depth %d for pixel data", h.BitDepth))
			}
		case dataChunk:
			stream.append(c)
		case iccpChunk:
			if img.Profile != nil {
				log.Debug().Msg("ignoring extra iCCP chunk")
				break
			}
			p, err := parseProfile(c.data)
			if err != nil {
				log.Debug().Err(err).Msg("ignoring malformed iCCP chunk")
				break
			}
			img.Profile = p
		case endChunk:
		case unknownChunk:
			if d.Strict && c.typ.Critical() && c.typ != PLTE {
				return nil, UnsupportedFormatError(
					"critical chunk " + c.typ.String())
			}
			log.Debug().Str("type", c.typ.String()).Msg("skipping chunk")
		default:
			panic(fmt.Sprintf("pngdec: invalid chunk kind %d", c.kind))
		}
	}

	buf, err := stream.inflate(d.Inflate)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("chunks", stream.chunks).Int("size", len(buf)).
		Msg("inflated image data")

	s, err := newScanner(h, buf)
	if err != nil {
		return nil, err
	}
	img.Raster, err = s.run()
	if err != nil {
		return nil, err
	}
	img.Header = *h
	return &img, nil
}
