// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acq

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-lpc/ats/footer"
)

func TestBuffers(t *testing.T) {
	cfg, err := Default().Config()
	if err != nil {
		t.Fatalf("could not create configuration: %+v", err)
	}
	const size = 2 * (2*4096 + footer.Size0)

	for _, tc := range []struct {
		name string
		n    int
		want []int
	}{
		{"empty", 0, []int{}},
		{"one", size, []int{size}},
		{"two", 2 * size, []int{size, size}},
		{"short", 2*size + 10, []int{size, size, 10}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bufs, err := Buffers(make([]byte, tc.n), cfg)
			if err != nil {
				t.Fatalf("could not split buffers: %+v", err)
			}
			got := make([]int, len(bufs))
			for i, buf := range bufs {
				got[i] = len(buf)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("invalid buffer sizes: got=%v, want=%v", got, tc.want)
			}
		})
	}

	huge := cfg
	huge.RecordsPerBuffer = math.MaxInt
	_, err = Buffers(make([]byte, 64), huge)
	if !errors.Is(err, footer.InvalidRecordSize) {
		t.Fatalf("invalid error: got=%v, want=%v", err, footer.InvalidRecordSize)
	}

	cfg.Channels = 0
	_, err = Buffers(nil, cfg)
	if !errors.Is(err, footer.InvalidChannelCount) {
		t.Fatalf("invalid error: got=%v, want=%v", err, footer.InvalidChannelCount)
	}
}

func TestFooters(t *testing.T) {
	t.Run("type-0", func(t *testing.T) {
		cfg, err := Default().Config()
		if err != nil {
			t.Fatalf("could not create configuration: %+v", err)
		}
		size, err := footer.BufferSize(cfg, footer.FooterType0)
		if err != nil {
			t.Fatalf("could not compute buffer size: %+v", err)
		}
		buf := make([]byte, size)
		err = footer.Write0(buf, cfg, []footer.Type0{
			{TriggerTimestamp: 10, RecordNumber: 1, FrameCount: 2, AuxInState: 1},
			{TriggerTimestamp: 20, RecordNumber: 2, FrameCount: 2},
		})
		if err != nil {
			t.Fatalf("could not write footers: %+v", err)
		}

		got, err := Footers(buf, cfg)
		if err != nil {
			t.Fatalf("could not decode footers: %+v", err)
		}
		want := []footer.Type1{
			{TriggerTimestamp: 10, RecordNumber: 1, FrameCount: 2, AuxInState: 1},
			{TriggerTimestamp: 20, RecordNumber: 2, FrameCount: 2},
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("invalid footers:\ngot= %+v\nwant=%+v", got, want)
		}

		_, err = Footers(buf[:10], cfg)
		if !errors.Is(err, footer.BufferTooSmall) {
			t.Fatalf("invalid error: got=%v, want=%v", err, footer.BufferTooSmall)
		}
	})

	t.Run("type-1", func(t *testing.T) {
		a := Default()
		a.Board = "ats9352"
		cfg, err := a.Config()
		if err != nil {
			t.Fatalf("could not create configuration: %+v", err)
		}
		size, err := footer.BufferSize(cfg, footer.FooterType1)
		if err != nil {
			t.Fatalf("could not compute buffer size: %+v", err)
		}
		want := []footer.Type1{
			{TriggerTimestamp: 10, RecordNumber: 1, AnalogValue: 0x123},
			{TriggerTimestamp: 20, RecordNumber: 2, AnalogValue: 0x456},
		}
		buf := make([]byte, size)
		err = footer.Write1(buf, cfg, want)
		if err != nil {
			t.Fatalf("could not write footers: %+v", err)
		}

		got, err := Footers(buf, cfg)
		if err != nil {
			t.Fatalf("could not decode footers: %+v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("invalid footers:\ngot= %+v\nwant=%+v", got, want)
		}
	})
}
