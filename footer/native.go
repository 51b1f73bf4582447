// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import (
	"encoding/binary"

	"golang.org/x/xerrors"
)

// NativeSize is the size in bytes of a footer block as written by the
// board firmware.
const NativeSize = 16

// Native is a footer block as written by the board firmware: 16-bit
// little-endian words, with the footer type in the last byte.
type Native struct {
	AuxPulsarLow uint8 // bit 0: aux-in state, bits 4-7: analog value low bits
	PulsarHigh   uint8
	TTLow        uint16
	TTMed        uint16
	TTHigh       uint16
	RNLow        uint16
	RNHigh       uint16
	FCLow        uint16
	FCHigh       uint8
	Type         uint8
}

// UnpackNative decodes a firmware footer block from p.
func UnpackNative(p []byte) (Native, error) {
	if len(p) < NativeSize {
		return Native{}, xerrors.Errorf(
			"footer: native block too short (got=%d bytes, want=%d)",
			len(p), NativeSize,
		)
	}
	return Native{
		AuxPulsarLow: p[0],
		PulsarHigh:   p[1],
		TTLow:        binary.LittleEndian.Uint16(p[2:4]),
		TTMed:        binary.LittleEndian.Uint16(p[4:6]),
		TTHigh:       binary.LittleEndian.Uint16(p[6:8]),
		RNLow:        binary.LittleEndian.Uint16(p[8:10]),
		RNHigh:       binary.LittleEndian.Uint16(p[10:12]),
		FCLow:        binary.LittleEndian.Uint16(p[12:14]),
		FCHigh:       p[14],
		Type:         p[15],
	}, nil
}

func (n Native) timestamp() uint64 {
	return uint64(n.TTLow) | uint64(n.TTMed)<<16 | uint64(n.TTHigh)<<32
}

func (n Native) recordNumber() uint32 {
	return uint32(n.RNLow) | uint32(n.RNHigh)<<16
}

func (n Native) frameCount() uint32 {
	return uint32(n.FCLow) | uint32(n.FCHigh)<<16
}

func (n Native) check(ft FooterType) error {
	if n.Type != uint8(ft) {
		return errorf(FooterTypeMismatch,
			"native footer type %d is not the value expected (%d)", n.Type, uint8(ft),
		)
	}
	return nil
}

// Type0 converts n into a type-0 footer.
func (n Native) Type0() (Type0, error) {
	if err := n.check(FooterType0); err != nil {
		return Type0{}, err
	}
	return Type0{
		TriggerTimestamp: n.timestamp(),
		RecordNumber:     n.recordNumber(),
		FrameCount:       n.frameCount(),
		AuxInState:       n.AuxPulsarLow & 0x01,
	}, nil
}

// Type1 converts n into a type-1 footer.
func (n Native) Type1() (Type1, error) {
	if err := n.check(FooterType1); err != nil {
		return Type1{}, err
	}
	return Type1{
		TriggerTimestamp: n.timestamp(),
		RecordNumber:     n.recordNumber(),
		FrameCount:       n.frameCount(),
		AuxInState:       n.AuxPulsarLow & 0x01,
		AnalogValue:      uint16(n.AuxPulsarLow&0xf0) | uint16(n.PulsarHigh)<<8,
	}, nil
}
