// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acq

import (
	"fmt"

	"github.com/go-lpc/ats/footer"
)

// Buffers splits the content of an acquisition file into buffers.
// The final buffer may be shorter than a complete one.
func Buffers(data []byte, cfg footer.Configuration) ([][]byte, error) {
	size, err := footer.BufferSize(cfg, footer.FooterTypeOf(cfg.Board))
	if err != nil {
		return nil, fmt.Errorf("acq: could not compute buffer size: %w", err)
	}

	bufs := make([][]byte, 0, (len(data)+size-1)/size)
	for beg := 0; beg < len(data); beg += size {
		end := beg + size
		if end > len(data) {
			end = len(data)
		}
		bufs = append(bufs, data[beg:end:end])
	}
	return bufs, nil
}

// Footers decodes the footers of buf, whatever their type.
// Type-0 footers are returned with a zero analog value.
func Footers(buf []byte, cfg footer.Configuration) ([]footer.Type1, error) {
	if footer.FooterTypeOf(cfg.Board) == footer.FooterType1 {
		return footer.Read1(buf, cfg)
	}

	fs, err := footer.Read0(buf, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]footer.Type1, len(fs))
	for i, f := range fs {
		out[i] = footer.Type1{
			TriggerTimestamp: f.TriggerTimestamp,
			RecordNumber:     f.RecordNumber,
			FrameCount:       f.FrameCount,
			AuxInState:       f.AuxInState,
		}
	}
	return out, nil
}
