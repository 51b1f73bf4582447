// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package daq exposes the footer decoder as a tdaq process: raw
// acquisition buffers are received on an input end-point and the decoded
// footers published on an output end-point.
package daq // import "github.com/go-lpc/ats/daq"

import (
	"bytes"
	"fmt"

	"github.com/go-daq/tdaq"
	"github.com/go-lpc/ats/footer"
)

// MarshalConfig encodes an acquisition configuration as the body of a
// /config command.
func MarshalConfig(cfg footer.Configuration) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := tdaq.NewEncoder(buf)
	enc.WriteU32(uint32(cfg.Board))
	enc.WriteU32(uint32(cfg.Domain))
	enc.WriteU32(uint32(cfg.Channels))
	enc.WriteU32(uint32(cfg.Layout))
	enc.WriteU32(uint32(cfg.BytesPerRecord))
	enc.WriteU32(uint32(cfg.RecordsPerBuffer))
	enc.WriteBool(cfg.FIFO)
	if err := enc.Err(); err != nil {
		return nil, fmt.Errorf("daq: could not encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalConfig decodes the body of a /config command.
func UnmarshalConfig(p []byte) (footer.Configuration, error) {
	var (
		cfg footer.Configuration
		dec = tdaq.NewDecoder(bytes.NewReader(p))
	)
	cfg.Board = footer.BoardType(dec.ReadU32())
	cfg.Domain = footer.DataDomain(dec.ReadU32())
	cfg.Channels = int(dec.ReadU32())
	cfg.Layout = footer.DataLayout(dec.ReadU32())
	cfg.BytesPerRecord = int(dec.ReadU32())
	cfg.RecordsPerBuffer = int(dec.ReadU32())
	cfg.FIFO = dec.ReadBool()
	if err := dec.Err(); err != nil {
		return cfg, fmt.Errorf("daq: could not decode configuration: %w", err)
	}
	return cfg, nil
}

// Footers holds the footers decoded from one buffer.
// Only the slice matching Type is populated.
type Footers struct {
	Buffer uint32 // index of the buffer since the start of the run
	Type   footer.FooterType
	F0     []footer.Type0
	F1     []footer.Type1
}

// Len returns the number of footers.
func (fs Footers) Len() int {
	if fs.Type == footer.FooterType1 {
		return len(fs.F1)
	}
	return len(fs.F0)
}

// MarshalTDAQ encodes fs as the body of a /footers frame.
func (fs Footers) MarshalTDAQ() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := tdaq.NewEncoder(buf)
	enc.WriteU32(fs.Buffer)
	enc.WriteU8(uint8(fs.Type))
	enc.WriteU32(uint32(fs.Len()))
	if err := enc.Err(); err != nil {
		return nil, fmt.Errorf("daq: could not encode footers header: %w", err)
	}

	fenc := footer.NewEncoder(buf)
	switch fs.Type {
	case footer.FooterType1:
		for _, f := range fs.F1 {
			if err := fenc.Encode1(f); err != nil {
				return nil, fmt.Errorf("daq: could not encode footers: %w", err)
			}
		}
	default:
		for _, f := range fs.F0 {
			if err := fenc.Encode0(f); err != nil {
				return nil, fmt.Errorf("daq: could not encode footers: %w", err)
			}
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalTDAQ decodes the body of a /footers frame.
func (fs *Footers) UnmarshalTDAQ(p []byte) error {
	var (
		r   = bytes.NewReader(p)
		dec = tdaq.NewDecoder(r)
	)
	fs.Buffer = dec.ReadU32()
	fs.Type = footer.FooterType(dec.ReadU8())
	n := int(dec.ReadU32())
	if err := dec.Err(); err != nil {
		return fmt.Errorf("daq: could not decode footers header: %w", err)
	}
	if max := r.Len() / fs.Type.Size(); n > max {
		return fmt.Errorf("daq: invalid footers count %d (max=%d)", n, max)
	}

	fdec := footer.NewDecoder(r)
	fs.F0 = nil
	fs.F1 = nil
	switch fs.Type {
	case footer.FooterType0:
		fs.F0 = make([]footer.Type0, n)
		for i := range fs.F0 {
			if err := fdec.Decode0(&fs.F0[i]); err != nil {
				return fmt.Errorf("daq: could not decode footer %d: %w", i, err)
			}
		}
	case footer.FooterType1:
		fs.F1 = make([]footer.Type1, n)
		for i := range fs.F1 {
			if err := fdec.Decode1(&fs.F1[i]); err != nil {
				return fmt.Errorf("daq: could not decode footer %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("daq: invalid footer type %d", uint8(fs.Type))
	}
	return nil
}

var (
	_ tdaq.Marshaler   = (*Footers)(nil)
	_ tdaq.Unmarshaler = (*Footers)(nil)
)
