// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

// Write0 stores the type-0 footers fs at their slots in buf.
// Record payloads are left untouched.
func Write0(buf []byte, cfg Configuration, fs []Type0) error {
	offs, err := place(buf, cfg, FooterType0, len(fs))
	if err != nil {
		return err
	}
	for i, f := range fs {
		pack0(buf[offs[i]:], f)
	}
	return nil
}

// Write1 stores the type-1 footers fs at their slots in buf.
// Record payloads are left untouched.
func Write1(buf []byte, cfg Configuration, fs []Type1) error {
	offs, err := place(buf, cfg, FooterType1, len(fs))
	if err != nil {
		return err
	}
	for i, f := range fs {
		pack1(buf[offs[i]:], f)
	}
	return nil
}

func place(buf []byte, cfg Configuration, ft FooterType, n int) ([]int, error) {
	offs, err := locate(buf, cfg, ft, -1)
	if err != nil {
		return nil, err
	}
	if n > len(offs) {
		return nil, errorf(FooterCountMismatch,
			"buffer can hold %d footer(s), got %d", len(offs), n,
		)
	}
	return offs, nil
}
