// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import (
	"io"

	"golang.org/x/xerrors"
)

// Decoder reads packed footers from an underlying data source.
type Decoder struct {
	r   io.Reader
	buf []byte
	err error
}

// NewDecoder creates a decoder that reads footers from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:   r,
		buf: make([]byte, Size1),
	}
}

// Decode0 reads the next type-0 footer.
func (dec *Decoder) Decode0(f *Type0) error {
	dec.load(Size0)
	if dec.err != nil {
		return xerrors.Errorf("footer: could not read type-0 footer: %w", dec.err)
	}
	*f = unpack0(dec.buf)
	return nil
}

// Decode1 reads the next type-1 footer.
func (dec *Decoder) Decode1(f *Type1) error {
	dec.load(Size1)
	if dec.err != nil {
		return xerrors.Errorf("footer: could not read type-1 footer: %w", dec.err)
	}
	*f = unpack1(dec.buf)
	return nil
}

func (dec *Decoder) load(n int) {
	if dec.err != nil {
		return
	}
	dec.buf = dec.buf[:n]
	_, dec.err = io.ReadFull(dec.r, dec.buf)
}
