// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package footer decodes the record footers AlazarTech digitizers append to
// the records of an acquisition buffer.
//
// Footers are packed, little-endian blocks:
//
//	trigger timestamp  8 bytes
//	record number      4 bytes
//	frame count        4 bytes
//	aux-in state       1 byte
//	analog value       2 bytes (type-1 footers only)
//
// Decoding is a pure function of the buffer and its acquisition
// configuration: the package holds no mutable state and is safe for
// concurrent use.
package footer // import "github.com/go-lpc/ats/footer"

import (
	"encoding/binary"
)

const (
	Size0 = 17 // size in bytes of a type-0 footer
	Size1 = 19 // size in bytes of a type-1 footer
)

// Type0 is the footer written by most boards.
type Type0 struct {
	TriggerTimestamp uint64 // trigger time, in sample clock ticks
	RecordNumber     uint32
	FrameCount       uint32
	AuxInState       uint8
}

// Type1 is the footer written by ATS9352 and ATS9353 boards.
type Type1 struct {
	TriggerTimestamp uint64
	RecordNumber     uint32
	FrameCount       uint32
	AuxInState       uint8
	AnalogValue      uint16 // sample captured at trigger time
}

// Type0 returns the fields f shares with a type-0 footer.
func (f Type1) Type0() Type0 {
	return Type0{
		TriggerTimestamp: f.TriggerTimestamp,
		RecordNumber:     f.RecordNumber,
		FrameCount:       f.FrameCount,
		AuxInState:       f.AuxInState,
	}
}

func unpack0(p []byte) Type0 {
	_ = p[Size0-1]
	return Type0{
		TriggerTimestamp: binary.LittleEndian.Uint64(p[0:8]),
		RecordNumber:     binary.LittleEndian.Uint32(p[8:12]),
		FrameCount:       binary.LittleEndian.Uint32(p[12:16]),
		AuxInState:       p[16],
	}
}

func unpack1(p []byte) Type1 {
	_ = p[Size1-1]
	return Type1{
		TriggerTimestamp: binary.LittleEndian.Uint64(p[0:8]),
		RecordNumber:     binary.LittleEndian.Uint32(p[8:12]),
		FrameCount:       binary.LittleEndian.Uint32(p[12:16]),
		AuxInState:       p[16],
		AnalogValue:      binary.LittleEndian.Uint16(p[17:19]),
	}
}

func pack0(p []byte, f Type0) {
	_ = p[Size0-1]
	binary.LittleEndian.PutUint64(p[0:8], f.TriggerTimestamp)
	binary.LittleEndian.PutUint32(p[8:12], f.RecordNumber)
	binary.LittleEndian.PutUint32(p[12:16], f.FrameCount)
	p[16] = f.AuxInState
}

func pack1(p []byte, f Type1) {
	_ = p[Size1-1]
	binary.LittleEndian.PutUint64(p[0:8], f.TriggerTimestamp)
	binary.LittleEndian.PutUint32(p[8:12], f.RecordNumber)
	binary.LittleEndian.PutUint32(p[12:16], f.FrameCount)
	p[16] = f.AuxInState
	binary.LittleEndian.PutUint16(p[17:19], f.AnalogValue)
}
