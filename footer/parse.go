// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

// Parse0 decodes the type-0 footers held in buf into dst.
// len(dst) is the number of footers the caller can receive.
// Parse0 returns the number of decoded footers; on error, the content of
// dst is unspecified.
func Parse0(dst []Type0, buf []byte, cfg Configuration) (int, error) {
	offs, err := locate(buf, cfg, FooterType0, len(dst))
	if err != nil {
		return 0, err
	}
	for i, off := range offs {
		dst[i] = unpack0(buf[off : off+Size0])
	}
	return len(offs), nil
}

// Parse1 decodes the type-1 footers held in buf into dst.
// len(dst) is the number of footers the caller can receive.
// Parse1 returns the number of decoded footers; on error, the content of
// dst is unspecified.
func Parse1(dst []Type1, buf []byte, cfg Configuration) (int, error) {
	offs, err := locate(buf, cfg, FooterType1, len(dst))
	if err != nil {
		return 0, err
	}
	for i, off := range offs {
		dst[i] = unpack1(buf[off : off+Size1])
	}
	return len(offs), nil
}

// Read0 decodes and returns the type-0 footers held in buf.
func Read0(buf []byte, cfg Configuration) ([]Type0, error) {
	offs, err := locate(buf, cfg, FooterType0, -1)
	if err != nil {
		return nil, err
	}
	out := make([]Type0, len(offs))
	for i, off := range offs {
		out[i] = unpack0(buf[off : off+Size0])
	}
	return out, nil
}

// Read1 decodes and returns the type-1 footers held in buf.
func Read1(buf []byte, cfg Configuration) ([]Type1, error) {
	offs, err := locate(buf, cfg, FooterType1, -1)
	if err != nil {
		return nil, err
	}
	out := make([]Type1, len(offs))
	for i, off := range offs {
		out[i] = unpack1(buf[off : off+Size1])
	}
	return out, nil
}

// locate validates cfg against buf and returns the offsets of the footers
// to decode. A negative capacity means the caller can receive any number
// of footers.
func locate(buf []byte, cfg Configuration, ft FooterType, capacity int) ([]int, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if got := FooterTypeOf(cfg.Board); got != ft {
		return nil, errorf(FooterTypeMismatch,
			"%s writes %s footers, not %s", cfg.Board, got, ft,
		)
	}

	offs, err := Offsets(cfg, ft, len(buf))
	if err != nil {
		return nil, err
	}

	if capacity >= 0 && capacity < len(offs) {
		return nil, errorf(FooterCountMismatch,
			"output can hold %d footer(s), buffer holds %d", capacity, len(offs),
		)
	}

	return offs, nil
}
