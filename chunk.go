// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

// maxChunkLen is the largest chunk length PNG permits.
const maxChunkLen = 1<<31 - 1

// A ChunkType is a four byte PNG chunk type tag.
type ChunkType [4]byte

// Chunk types known to the decoder.
var (
	IHDR = ChunkType{'I', 'H', 'D', 'R'}
	PLTE = ChunkType{'P', 'L', 'T', 'E'}
	IDAT = ChunkType{'I', 'D', 'A', 'T'}
	IEND = ChunkType{'I', 'E', 'N', 'D'}
	ICCP = ChunkType{'i', 'C', 'C', 'P'}
)

func (t ChunkType) String() string { return string(t[:]) }

// Critical reports whether t is a critical chunk type, i.e. whether
// bit 5 of its first byte is clear.
func (t ChunkType) Critical() bool { return t[0]&0x20 == 0 }

// A ChunkInfo describes a chunk encountered in the stream.
type ChunkInfo struct {
	Type   ChunkType
	Length uint32
}

type chunkKind int

const (
	unknownChunk chunkKind = iota
	headerChunk
	dataChunk
	iccpChunk
	endChunk
)

func kindOf(t ChunkType) chunkKind {
	switch t {
	case IHDR:
		return headerChunk
	case IDAT:
		return dataChunk
	case ICCP:
		return iccpChunk
	case IEND:
		return endChunk
	}
	return unknownChunk
}

// A chunk is one length-prefixed, typed, CRC-suffixed block.  Data is
// nil for skipped chunks.
type chunk struct {
	kind   chunkKind
	typ    ChunkType
	length uint32
	data   []byte
	crc    uint32
}

// A chunkReader reads the chunk sequence following the signature.
type chunkReader struct {
	r        io.Reader
	tmp      [8]byte
	checkCRC bool // verify CRC of every chunk; implies keeping data
	keepAll  bool // keep payloads of unknown chunks
	n        int  // chunks read
	done     bool // IEND seen
}

// newChunkReader verifies the PNG signature at the start of r.
func newChunkReader(r io.Reader) (*chunkReader, error) {
	cr := &chunkReader{r: r}
	if _, err := io.ReadFull(r, cr.tmp[:8]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, FormatError("not a PNG file: short signature")
		}
		return nil, err
	}
	if string(cr.tmp[:8]) != pngHeader {
		return nil, FormatError(fmt.Sprintf(
			"not a PNG file: signature % x", cr.tmp[:8]))
	}
	return cr, nil
}

// next reads the next chunk.  It returns io.EOF after IEND.  The
// first chunk must be IHDR and no later chunk may be.
func (cr *chunkReader) next() (*chunk, error) {
	if cr.done {
		return nil, io.EOF
	}
	if _, err := io.ReadFull(cr.r, cr.tmp[:8]); err != nil {
		return nil, cr.truncated("chunk header", err)
	}
	c := &chunk{
		length: binary.BigEndian.Uint32(cr.tmp[:4]),
	}
	copy(c.typ[:], cr.tmp[4:8])
	c.kind = kindOf(c.typ)
	if c.length > maxChunkLen {
		return nil, FormatError(fmt.Sprintf(
			"%s chunk length %d too large", c.typ, c.length))
	}
	if (cr.n == 0) != (c.kind == headerChunk) {
		return nil, errHeaderLocation
	}
	cr.n++

	if c.kind == unknownChunk && !cr.keepAll && !cr.checkCRC {
		if _, err := io.CopyN(io.Discard, cr.r, int64(c.length)); err != nil {
			return nil, cr.truncated(c.typ.String()+" chunk", err)
		}
	} else {
		var b bytes.Buffer
		if _, err := io.CopyN(&b, cr.r, int64(c.length)); err != nil {
			return nil, cr.truncated(c.typ.String()+" chunk", err)
		}
		c.data = b.Bytes()
	}
	if _, err := io.ReadFull(cr.r, cr.tmp[:4]); err != nil {
		return nil, cr.truncated(c.typ.String()+" checksum", err)
	}
	c.crc = binary.BigEndian.Uint32(cr.tmp[:4])
	if cr.checkCRC {
		if sum := checksum(c.typ, c.data); sum != c.crc {
			return nil, FormatError(fmt.Sprintf(
				"invalid checksum in %s chunk: %08x, want %08x",
				c.typ, c.crc, sum))
		}
	}

	if c.kind == endChunk {
		if c.length != 0 {
			return nil, FormatError(fmt.Sprintf(
				"IEND chunk length %d, want 0", c.length))
		}
		cr.done = true
	}
	return c, nil
}

func (cr *chunkReader) truncated(what string, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		if cr.n == 0 {
			return FormatError("missing header chunk")
		}
		return FormatError("truncated " + what)
	}
	return err
}

// checksum returns the CRC-32 of a chunk's type and data.
func checksum(t ChunkType, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(t[:])
	crc.Write(data)
	return crc.Sum32()
}
