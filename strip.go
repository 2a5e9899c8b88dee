// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import "io"

// Strip copies the PNG stream in r to w, dropping every ancillary
// chunk for which keep returns false.  Critical chunks are always
// copied.  A nil keep drops all ancillary chunks.  Checksums are
// recomputed; input checksums are not verified.
func Strip(w io.Writer, r io.Reader, keep func(ChunkType) bool) error {
	cr, err := newChunkReader(r)
	if err != nil {
		return err
	}
	cr.keepAll = true
	cw := newChunkWriter(w)
	for {
		c, err := cr.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if c.typ.Critical() || keep != nil && keep(c.typ) {
			cw.writeChunk(c.typ, c.data)
		}
	}
	return cw.flush()
}
