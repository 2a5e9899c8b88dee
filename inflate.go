// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// An InflateFunc decompresses a complete zlib stream.  It must fail
// on malformed or truncated input.
type InflateFunc func([]byte) ([]byte, error)

// Inflate is the default InflateFunc.
func Inflate(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
