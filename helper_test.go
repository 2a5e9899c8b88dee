// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

type testChunk struct {
	typ  ChunkType
	data []byte
}

// buildPNG returns a PNG stream holding the given chunks.
func buildPNG(t testing.TB, chunks ...testChunk) []byte {
	t.Helper()
	var b bytes.Buffer
	w := newChunkWriter(&b)
	for _, c := range chunks {
		w.writeChunk(c.typ, c.data)
	}
	require.NoError(t, w.flush())
	return b.Bytes()
}

func ihdrData(width, height int, depth, colorType byte) []byte {
	b := make([]byte, ihdrLen)
	binary.BigEndian.PutUint32(b[0:], uint32(width))
	binary.BigEndian.PutUint32(b[4:], uint32(height))
	b[8] = depth
	b[9] = colorType
	return b
}

// ihdrMethods returns a 1x1 RGB header with the given compression,
// filter and interlace methods.
func ihdrMethods(compression, filter, interlace byte) []byte {
	b := ihdrData(1, 1, 8, 2)
	b[10], b[11], b[12] = compression, filter, interlace
	return b
}

func deflate(t testing.TB, data []byte) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zlib.NewWriter(&b)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return b.Bytes()
}

// simplePNG wraps raw scanline data in IHDR, IDAT and IEND chunks.
func simplePNG(t testing.TB, width, height int, f ColorFormat, raw []byte) []byte {
	t.Helper()
	return buildPNG(t,
		testChunk{IHDR, ihdrData(width, height, 8, byte(f))},
		testChunk{IDAT, deflate(t, raw)},
		testChunk{IEND, nil},
	)
}

// filterRows applies filter f to every row of pix, a grid of rows of
// bpp-byte pixels, returning the decompressed stream an encoder would
// produce.
func filterRows(pix [][]byte, bpp int, f Filter) []byte {
	var out []byte
	var prev []byte
	for _, cur := range pix {
		out = append(out, byte(f))
		for i := range cur {
			var a, b, c byte
			if i >= bpp {
				a = cur[i-bpp]
			}
			if prev != nil {
				b = prev[i]
				if i >= bpp {
					c = prev[i-bpp]
				}
			}
			var pred byte
			switch f {
			case Sub:
				pred = a
			case Up:
				pred = b
			case Average:
				pred = byte((int(a) + int(b)) / 2)
			case Paeth:
				pred = paeth(a, b, c)
			}
			out = append(out, cur[i]-pred)
		}
		prev = cur
	}
	return out
}

// testGrid returns a width×height grid of bpp-byte pixels with values
// that exercise wraparound in every filter.
func testGrid(width, height, bpp int) [][]byte {
	pix := make([][]byte, height)
	for y := range pix {
		pix[y] = make([]byte, width*bpp)
		for i := range pix[y] {
			pix[y][i] = byte(i*37 + y*101 + (i*y)%13*19)
		}
	}
	return pix
}
