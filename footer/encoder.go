// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import (
	"io"

	"golang.org/x/xerrors"
)

// Encoder writes packed footers to an output stream.
type Encoder struct {
	w   io.Writer
	buf []byte
	err error
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:   w,
		buf: make([]byte, Size1),
	}
}

// Encode0 writes f as a type-0 footer.
func (enc *Encoder) Encode0(f Type0) error {
	pack0(enc.buf[:Size0], f)
	enc.write(enc.buf[:Size0])
	if enc.err != nil {
		return xerrors.Errorf("footer: could not write type-0 footer: %w", enc.err)
	}
	return nil
}

// Encode1 writes f as a type-1 footer.
func (enc *Encoder) Encode1(f Type1) error {
	pack1(enc.buf[:Size1], f)
	enc.write(enc.buf[:Size1])
	if enc.err != nil {
		return xerrors.Errorf("footer: could not write type-1 footer: %w", enc.err)
	}
	return nil
}

func (enc *Encoder) write(p []byte) {
	if enc.err != nil {
		return
	}
	_, enc.err = enc.w.Write(p)
}
