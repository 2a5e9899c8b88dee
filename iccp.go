// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// A Profile is an embedded ICC profile from an iCCP chunk.
type Profile struct {
	Name       string // UTF-8, decoded from Latin-1
	Method     byte   // compression method; 0 is zlib
	Compressed []byte
}

// Decompress returns the ICC profile data.
func (p *Profile) Decompress() ([]byte, error) {
	if p == nil {
		return nil, ErrNoProfile
	}
	if p.Method != 0 {
		return nil, UnsupportedFormatError(fmt.Sprintf(
			"ICC profile compression method %d", p.Method))
	}
	b, err := Inflate(p.Compressed)
	if err != nil {
		return nil, fmt.Errorf("png: ICC profile %q: %w", p.Name, err)
	}
	return b, nil
}

var (
	errProfileName   = errors.New("missing profile name terminator")
	errProfileLength = errors.New("profile name length out of range")
	errProfileMethod = errors.New("missing compression method")
)

// parseProfile decodes an iCCP payload: a NUL-terminated Latin-1
// name of 1 to 79 bytes, a compression method byte and the profile.
func parseProfile(data []byte) (*Profile, error) {
	n := bytes.IndexByte(data, 0)
	switch {
	case n < 0:
		return nil, errProfileName
	case n == 0 || n > 79:
		return nil, errProfileLength
	case n+1 >= len(data):
		return nil, errProfileMethod
	}
	name, err := charmap.ISO8859_1.NewDecoder().Bytes(data[:n])
	if err != nil {
		return nil, err
	}
	return &Profile{
		Name:       string(name),
		Method:     data[n+1],
		Compressed: data[n+2:],
	}, nil
}
