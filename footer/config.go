// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import (
	"strconv"
	"strings"
)

// DataDomain describes whether records hold time or frequency samples.
type DataDomain uint32

const (
	Time      DataDomain = 0x1000
	Frequency DataDomain = 0x2000
)

func (d DataDomain) String() string {
	switch d {
	case Time:
		return "time"
	case Frequency:
		return "frequency"
	}
	return "DataDomain(0x" + strconv.FormatUint(uint64(d), 16) + ")"
}

// ParseDataDomain returns the data domain named s ("time" or "frequency").
func ParseDataDomain(s string) (DataDomain, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time", "t":
		return Time, true
	case "frequency", "freq", "fft", "f":
		return Frequency, true
	}
	return 0, false
}

// DataLayout describes how the samples of the active channels are arranged
// in a buffer.
type DataLayout uint32

const (
	BufferInterleaved DataLayout = 0x100000
	RecordInterleaved DataLayout = 0x200000
	SampleInterleaved DataLayout = 0x300000
)

func (l DataLayout) String() string {
	switch l {
	case BufferInterleaved:
		return "buffer-interleaved"
	case RecordInterleaved:
		return "record-interleaved"
	case SampleInterleaved:
		return "sample-interleaved"
	}
	return "DataLayout(0x" + strconv.FormatUint(uint64(l), 16) + ")"
}

// ParseDataLayout returns the data layout named s
// ("buffer", "record", "sample", with an optional "-interleaved" suffix).
func ParseDataLayout(s string) (DataLayout, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "-interleaved"), "_interleaved")
	switch s {
	case "buffer":
		return BufferInterleaved, true
	case "record":
		return RecordInterleaved, true
	case "sample":
		return SampleInterleaved, true
	}
	return 0, false
}

// Configuration describes how an acquisition was performed.
type Configuration struct {
	Board            BoardType
	Domain           DataDomain
	Channels         int // number of active channels
	Layout           DataLayout
	BytesPerRecord   int // bytes per record per channel
	RecordsPerBuffer int // records per buffer per channel

	// FIFO is set for acquisitions performed in FIFO-only streaming mode,
	// where the last record of a buffer may still be in progress.
	FIFO bool
}

// Validate checks the configuration is consistent with its board.
// The first failing check determines the returned error.
func (cfg Configuration) Validate() error {
	b, ok := catalog[cfg.Board]
	if !ok {
		return errorf(UnknownBoard, "unknown board type %d", uint32(cfg.Board))
	}

	if cfg.Channels < 1 || cfg.Channels > b.nchans {
		return errorf(InvalidChannelCount,
			"invalid active channel count %d for %s (want 1..%d)",
			cfg.Channels, b.name, b.nchans,
		)
	}

	switch cfg.Domain {
	case Time, Frequency:
	default:
		return errorf(InvalidDataDomain, "invalid data domain 0x%x", uint32(cfg.Domain))
	}

	switch cfg.Layout {
	case BufferInterleaved, RecordInterleaved, SampleInterleaved:
	default:
		return errorf(InvalidDataLayout, "invalid data layout 0x%x", uint32(cfg.Layout))
	}

	if bps := b.bytesPerSample(); cfg.BytesPerRecord <= 0 || cfg.BytesPerRecord%bps != 0 {
		return errorf(InvalidRecordSize,
			"invalid record size %d bytes for %s (want a positive multiple of %d)",
			cfg.BytesPerRecord, b.name, bps,
		)
	}

	if cfg.RecordsPerBuffer <= 0 {
		return errorf(InvalidRecordCount,
			"invalid records per buffer per channel %d", cfg.RecordsPerBuffer,
		)
	}

	return nil
}
