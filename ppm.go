// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePPM writes r to w as a binary Portable Pixel Map (P6) with
// maxval 255, for use with netpbm.  Alpha is discarded.
func (r *Raster) EncodePPM(w io.Writer) error {
	b := bufio.NewWriter(w)
	if _, err := b.WriteString("P6\n" + strconv.Itoa(r.Width) + " " +
		strconv.Itoa(r.Height) + "\n255\n"); err != nil {
		return err
	}
	row := make([]byte, r.Width*3)
	for y := 0; y < r.Height; y++ {
		for x, v := range r.Pix[y*r.Width : (y+1)*r.Width] {
			row[x*3] = red(v)
			row[x*3+1] = green(v)
			row[x*3+2] = blue(v)
		}
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}
