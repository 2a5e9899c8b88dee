// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	pix := testGrid(3, 2, 3)
	text := testChunk{ChunkType{'t', 'E', 'X', 't'}, []byte("Comment\x00hello")}
	iccp := testChunk{ICCP, iccpData(t, "sRGB", 0, []byte("profile"))}
	b := buildPNG(t,
		testChunk{IHDR, ihdrData(3, 2, 8, 2)},
		text,
		iccp,
		testChunk{PLTE, []byte{1, 2, 3}},
		testChunk{IDAT, deflate(t, filterRows(pix, 3, Up))},
		testChunk{IEND, nil},
	)
	orig, err := Decode(bytes.NewReader(b))
	require.NoError(t, err)

	t.Run("all ancillary", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Strip(&out, bytes.NewReader(b), nil))
		d := Decoder{CheckCRC: true}
		img, err := d.Decode(&out)
		require.NoError(t, err)
		assert.Equal(t, orig.Pix, img.Pix)
		var types []ChunkType
		for _, c := range img.Chunks {
			types = append(types, c.Type)
		}
		assert.Equal(t, []ChunkType{IHDR, PLTE, IDAT, IEND}, types)
		assert.Nil(t, img.Profile)
	})
	t.Run("keep ICC", func(t *testing.T) {
		var out bytes.Buffer
		keep := func(t ChunkType) bool { return t == ICCP }
		require.NoError(t, Strip(&out, bytes.NewReader(b), keep))
		img, err := Decode(&out)
		require.NoError(t, err)
		require.NotNil(t, img.Profile)
		assert.Equal(t, "sRGB", img.Profile.Name)
		assert.Len(t, img.Chunks, 5)
	})
	t.Run("not PNG", func(t *testing.T) {
		var out bytes.Buffer
		err := Strip(&out, bytes.NewReader([]byte("plain text here")), nil)
		assert.Error(t, err)
		assert.Zero(t, out.Len())
	})
}
