// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bytes"
	"encoding/binary"
	"io"
)

// A chunkWriter frames PNG chunks into a buffer and flushes it to w
// once it grows past bufSize.  The first write error sticks.
type chunkWriter struct {
	buf bytes.Buffer
	w   io.Writer
	err error
	tmp [4]byte
}

const bufSize = 0x8000

func newChunkWriter(w io.Writer) *chunkWriter {
	cw := &chunkWriter{w: w}
	cw.buf.WriteString(pngHeader)
	return cw
}

func (w *chunkWriter) putUint32(v uint32) {
	binary.BigEndian.PutUint32(w.tmp[:], v)
	w.buf.Write(w.tmp[:])
}

// writeChunk appends a complete chunk: length, type, data and the
// checksum over type and data.
func (w *chunkWriter) writeChunk(t ChunkType, data []byte) {
	w.putUint32(uint32(len(data)))
	w.buf.Write(t[:])
	w.buf.Write(data)
	w.putUint32(checksum(t, data))
	if w.buf.Len() >= bufSize {
		w.flush()
	}
}

// flush writes out the buffer and returns the first write error.
func (w *chunkWriter) flush() error {
	if w.err == nil {
		_, w.err = w.buf.WriteTo(w.w)
	}
	w.buf.Reset()
	return w.err
}
