// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkType(t *testing.T) {
	for _, tc := range []struct {
		typ      ChunkType
		critical bool
		kind     chunkKind
	}{
		{IHDR, true, headerChunk},
		{IDAT, true, dataChunk},
		{IEND, true, endChunk},
		{ICCP, false, iccpChunk},
		{PLTE, true, unknownChunk},
		{ChunkType{'t', 'E', 'X', 't'}, false, unknownChunk},
		{ChunkType{'i', 'd', 'a', 't'}, false, unknownChunk},
	} {
		t.Run(tc.typ.String(), func(t *testing.T) {
			assert.Equal(t, tc.critical, tc.typ.Critical())
			assert.Equal(t, tc.kind, kindOf(tc.typ))
		})
	}
}

func TestChunkReader(t *testing.T) {
	text := testChunk{ChunkType{'t', 'E', 'X', 't'}, []byte("k\x00v")}
	b := buildPNG(t,
		testChunk{IHDR, ihdrData(1, 1, 8, 2)},
		text,
		testChunk{IDAT, []byte{1, 2, 3}},
		testChunk{IEND, nil},
	)

	t.Run("sequence", func(t *testing.T) {
		cr, err := newChunkReader(bytes.NewReader(b))
		require.NoError(t, err)
		var kinds []chunkKind
		for {
			c, err := cr.next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			kinds = append(kinds, c.kind)
			switch c.kind {
			case unknownChunk:
				assert.Nil(t, c.data, "unknown chunk data is discarded")
				assert.Equal(t, uint32(3), c.length)
			case dataChunk:
				assert.Equal(t, []byte{1, 2, 3}, c.data)
				assert.Equal(t, checksum(c.typ, c.data), c.crc)
			}
		}
		assert.Equal(t, []chunkKind{headerChunk, unknownChunk, dataChunk, endChunk}, kinds)
		_, err = cr.next()
		assert.Equal(t, io.EOF, err)
	})
	t.Run("keep all", func(t *testing.T) {
		cr, err := newChunkReader(bytes.NewReader(b))
		require.NoError(t, err)
		cr.keepAll = true
		_, err = cr.next()
		require.NoError(t, err)
		c, err := cr.next()
		require.NoError(t, err)
		assert.Equal(t, text.data, c.data)
	})
	t.Run("length too large", func(t *testing.T) {
		bad := append([]byte(pngHeader), 0x80, 0, 0, 0, 'I', 'H', 'D', 'R')
		cr, err := newChunkReader(bytes.NewReader(bad))
		require.NoError(t, err)
		_, err = cr.next()
		assert.IsType(t, FormatError(""), err)
		assert.Contains(t, err.Error(), "too large")
	})
}
