// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import (
	"math"
	"math/bits"
)

// Layout describes where footers land in a buffer.
//
// A buffer is a sequence of slots, each slot being a record payload
// immediately followed by a footer:
//
//	| payload-0 | footer-0 | payload-1 | footer-1 | ...
type Layout struct {
	Footer  int  // size of a footer, in bytes
	Payload int  // size of the record payload preceding each footer, in bytes
	Slots   int  // number of footers in a complete buffer
	FIFO    bool // whether the final slot may be missing
}

// NewLayout returns the layout of buffers acquired with cfg and holding
// footers of type ft. cfg is assumed to be valid, with a buffer size
// BufferSize accepts.
func NewLayout(cfg Configuration, ft FooterType) Layout {
	lay := Layout{
		Footer:  ft.Size(),
		Payload: cfg.BytesPerRecord,
		Slots:   cfg.RecordsPerBuffer,
		FIFO:    cfg.FIFO,
	}
	switch cfg.Layout {
	case RecordInterleaved:
		// every channel record carries its own footer.
		lay.Slots *= cfg.Channels
	default:
		// channels share a record block, followed by a single footer.
		lay.Payload *= cfg.Channels
	}
	return lay
}

// Offset returns the byte offset of the i-th footer.
func (lay Layout) Offset(i int) int {
	return (i+1)*lay.Payload + i*lay.Footer
}

// Size returns the size in bytes of a complete buffer.
func (lay Layout) Size() int {
	return lay.Slots * (lay.Payload + lay.Footer)
}

// MinSize returns the minimum number of bytes a buffer must hold:
// all footers, or all but the final one in FIFO mode.
func (lay Layout) MinSize() int {
	last := lay.Slots - 1
	if lay.FIFO && last > 0 {
		last--
	}
	return lay.Offset(last) + lay.Footer
}

// Count returns the number of footers held by a buffer of n bytes.
// n must be at least MinSize.
func (lay Layout) Count(n int) int {
	if lay.FIFO && lay.Offset(lay.Slots-1)+lay.Footer > n {
		return lay.Slots - 1
	}
	return lay.Slots
}

// BufferSize returns the size in bytes of a complete buffer acquired with
// cfg and holding footers of type ft.
func BufferSize(cfg Configuration, ft FooterType) (int, error) {
	err := cfg.Validate()
	if err != nil {
		return 0, err
	}
	size, ok := sizeOf(cfg, ft)
	if !ok {
		return 0, errorf(InvalidRecordSize,
			"buffer of %d record(s) of %d bytes per channel (%d channels) overflows",
			cfg.RecordsPerBuffer, cfg.BytesPerRecord, cfg.Channels,
		)
	}
	return size, nil
}

// Offsets returns the byte offsets of the footers of type ft held in a
// buffer of n bytes acquired with cfg, in increasing order.
func Offsets(cfg Configuration, ft FooterType, n int) ([]int, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	// no buffer can hold a layout whose size overflows.
	if _, ok := sizeOf(cfg, ft); !ok {
		return nil, errorf(BufferTooSmall,
			"buffer too small for %d record(s) of %d bytes per channel (got=%d bytes, size overflows)",
			cfg.RecordsPerBuffer, cfg.BytesPerRecord, n,
		)
	}

	lay := NewLayout(cfg, ft)
	if min := lay.MinSize(); n < min {
		return nil, errorf(BufferTooSmall,
			"buffer too small for %d footer(s) of %s (got=%d bytes, want>=%d)",
			lay.Slots, ft, n, min,
		)
	}

	offs := make([]int, lay.Count(n))
	for i := range offs {
		offs[i] = lay.Offset(i)
	}
	return offs, nil
}

// sizeOf returns the size in bytes of a complete buffer acquired with the
// valid configuration cfg, and whether it fits in an int.
// Every other Layout quantity is bounded by that size.
func sizeOf(cfg Configuration, ft FooterType) (int, bool) {
	var (
		slots   = uint64(cfg.RecordsPerBuffer)
		payload = uint64(cfg.BytesPerRecord)
		nchans  = uint64(cfg.Channels)
		ok      bool
	)
	switch cfg.Layout {
	case RecordInterleaved:
		slots, ok = mul(slots, nchans)
	default:
		payload, ok = mul(payload, nchans)
	}
	if !ok || payload > math.MaxInt {
		return 0, false
	}

	size, ok := mul(slots, payload+uint64(ft.Size()))
	if !ok || size > math.MaxInt {
		return 0, false
	}
	return int(size), true
}

func mul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}
