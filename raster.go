// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"image"
	"image/color"
)

// A Raster is a decoded image: Width×Height pixels packed as
// 0xAARRGGBB, non-premultiplied, in row-major order.
type Raster struct {
	Width, Height int
	Pix           []uint32
}

func newRaster(w, h int) *Raster {
	return &Raster{Width: w, Height: h, Pix: make([]uint32, w*h)}
}

// ARGB returns the packed pixel at (x, y).
func (r *Raster) ARGB(x, y int) uint32 { return r.Pix[y*r.Width+x] }

func (r *Raster) set(x, y int, v uint32) { r.Pix[y*r.Width+x] = v }

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.Width, r.Height) }

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(r.Bounds())) {
		return color.NRGBA{}
	}
	return unpack(r.ARGB(x, y))
}

// NRGBA returns a copy of r as an *image.NRGBA.
func (r *Raster) NRGBA() *image.NRGBA {
	m := image.NewNRGBA(r.Bounds())
	for i, v := range r.Pix {
		c := unpack(v)
		m.Pix[i*4+0] = c.R
		m.Pix[i*4+1] = c.G
		m.Pix[i*4+2] = c.B
		m.Pix[i*4+3] = c.A
	}
	return m
}

func pack(a, r, g, b byte) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func unpack(v uint32) color.NRGBA {
	return color.NRGBA{R: red(v), G: green(v), B: blue(v), A: alpha(v)}
}

// A band selects one channel of a packed pixel.
type band func(uint32) byte

func alpha(v uint32) byte { return byte(v >> 24) }
func red(v uint32) byte   { return byte(v >> 16) }
func green(v uint32) byte { return byte(v >> 8) }
func blue(v uint32) byte  { return byte(v) }

// assemble reconstructs the pixel whose samples start at s.k and
// packs it according to the colour format.
func (s *scanner) assemble() uint32 {
	k := s.k
	switch s.format {
	case RGBTriple:
		return pack(0xff,
			s.sample(k, red), s.sample(k+1, green), s.sample(k+2, blue))
	case RGBAQuad:
		return pack(s.sample(k+3, alpha),
			s.sample(k, red), s.sample(k+1, green), s.sample(k+2, blue))
	}
	panic("pngdec: invalid ColorFormat " + s.format.String())
}
