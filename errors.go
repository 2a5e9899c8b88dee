// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngdec

import "errors"

// A FormatError reports that the input is not a valid PNG stream:
// bad signature, misplaced header, malformed chunk framing.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// An UnsupportedFormatError reports that the input uses a legal PNG
// feature this decoder does not implement.
type UnsupportedFormatError string

func (e UnsupportedFormatError) Error() string {
	return "png: unsupported format: " + string(e)
}

// A CorruptStreamError reports that the image data could not be
// inflated or does not hold exactly the pixels the header declares.
type CorruptStreamError struct {
	Reason string
	Err    error // underlying error, if any
}

func (e *CorruptStreamError) Error() string {
	if e.Err != nil {
		return "png: corrupt stream: " + e.Reason + ": " + e.Err.Error()
	}
	return "png: corrupt stream: " + e.Reason
}

func (e *CorruptStreamError) Unwrap() error { return e.Err }

const errHeaderLocation = FormatError("invalid location of header chunk")

// ErrNoProfile is returned by Profile.Decompress on a nil profile.
var ErrNoProfile = errors.New("png: no ICC profile")
