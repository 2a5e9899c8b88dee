// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import "bytes"

// A dataStream collects IDAT payloads in stream order.
type dataStream struct {
	buf    bytes.Buffer
	chunks int
	used   bool
}

func (s *dataStream) append(c *chunk) {
	s.buf.Write(c.data)
	s.chunks++
}

// inflate decompresses the collected stream.  It may be called once.
func (s *dataStream) inflate(f InflateFunc) ([]byte, error) {
	if s.used {
		panic("pngdec: data stream inflated twice")
	}
	s.used = true
	if f == nil {
		f = Inflate
	}
	out, err := f(s.buf.Bytes())
	s.buf = bytes.Buffer{}
	if err != nil {
		return nil, &CorruptStreamError{Reason: "inflate", Err: err}
	}
	return out, nil
}
