// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import "fmt"

// A Filter is a PNG scanline filter type.
type Filter byte

const (
	None Filter = iota
	Sub
	Up
	Average
	Paeth
	nfilters
)

var filterNames = [nfilters]string{"None", "Sub", "Up", "Average", "Paeth"}

func (f Filter) String() string {
	if f < nfilters {
		return filterNames[f]
	}
	return fmt.Sprintf("Filter(%d)", byte(f))
}

// A scanner reconstructs the raster from the decompressed stream.
// k indexes buf, (x, y) is the pixel being reconstructed and filter
// is the filter type of row y.
type scanner struct {
	buf    []byte
	k      int
	x, y   int
	filter Filter
	format ColorFormat
	stride int
	raster *Raster
}

// newScanner allocates the raster only once buf is known to hold a
// filter byte and Width pixels for every row.
func newScanner(h *Header, buf []byte) (*scanner, error) {
	if n := h.rawLen(); len(buf) < n {
		return nil, &CorruptStreamError{Reason: fmt.Sprintf(
			"not enough pixel data: %d of %d bytes", len(buf), n)}
	}
	return &scanner{
		buf:    buf,
		format: h.Format,
		stride: h.Format.Channels(),
		raster: newRaster(h.Width, h.Height),
	}, nil
}

// run reconstructs every pixel.  The stream must hold exactly one
// filter byte and Width pixels for each of Height rows.
func (s *scanner) run() (*Raster, error) {
	for s.k < len(s.buf) {
		if err := s.step(); err != nil {
			return nil, err
		}
	}
	if s.y != s.raster.Height {
		return nil, &CorruptStreamError{Reason: fmt.Sprintf(
			"not enough pixel data: %d of %d pixels in %d bytes",
			s.y*s.raster.Width+s.x, len(s.raster.Pix), len(s.buf))}
	}
	return s.raster, nil
}

// step reconstructs the pixel at (x, y), reading the row's filter
// byte first if x is 0.
func (s *scanner) step() error {
	if s.y == s.raster.Height {
		return &CorruptStreamError{Reason: fmt.Sprintf(
			"too much pixel data: %d extra bytes", len(s.buf)-s.k)}
	}
	if s.x == 0 {
		f := Filter(s.buf[s.k])
		if f >= nfilters {
			return &CorruptStreamError{Reason: fmt.Sprintf(
				"bad filter type %d in row %d", f, s.y)}
		}
		s.filter = f
		s.k++
	}
	if len(s.buf)-s.k < s.stride {
		return &CorruptStreamError{Reason: fmt.Sprintf(
			"truncated pixel (%d, %d): %d of %d bytes",
			s.x, s.y, len(s.buf)-s.k, s.stride)}
	}
	s.raster.set(s.x, s.y, s.assemble())
	s.k += s.stride
	if s.x++; s.x == s.raster.Width {
		s.x = 0
		s.y++
	}
	return nil
}

// sample reconstructs the byte at buf[i], a sample of channel b of
// pixel (x, y).  Neighbours come from the raster, which holds
// reconstructed values only.  Addition wraps modulo 256.
func (s *scanner) sample(i int, b band) byte {
	raw := s.buf[i]
	switch s.filter {
	case None:
		return raw
	case Sub:
		return raw + s.left(b)
	case Up:
		return raw + s.up(b)
	case Average:
		return raw + byte((int(s.left(b))+int(s.up(b)))/2)
	case Paeth:
		return raw + paeth(s.left(b), s.up(b), s.upLeft(b))
	}
	panic("pngdec: invalid filter " + s.filter.String())
}

func (s *scanner) left(b band) byte {
	if s.x == 0 {
		return 0
	}
	return b(s.raster.ARGB(s.x-1, s.y))
}

func (s *scanner) up(b band) byte {
	if s.y == 0 {
		return 0
	}
	return b(s.raster.ARGB(s.x, s.y-1))
}

func (s *scanner) upLeft(b band) byte {
	if s.x == 0 || s.y == 0 {
		return 0
	}
	return b(s.raster.ARGB(s.x-1, s.y-1))
}

// paeth returns whichever of a (left), b (up) and c (upper left) is
// closest to a+b-c, preferring a, then b, on ties.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
