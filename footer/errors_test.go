// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestStatus(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errorf(UnknownBoard, "x"), 1},
		{errorf(InvalidChannelCount, "x"), 2},
		{errorf(InvalidDataDomain, "x"), 3},
		{errorf(InvalidDataLayout, "x"), 4},
		{errorf(InvalidRecordSize, "x"), 5},
		{errorf(InvalidRecordCount, "x"), 6},
		{errorf(BufferTooSmall, "x"), 7},
		{errorf(FooterCountMismatch, "x"), 8},
		{errorf(FooterTypeMismatch, "x"), 9},
		{fmt.Errorf("wrap: %w", errorf(BufferTooSmall, "x")), 7},
		{BufferTooSmall, 7},
		{io.EOF, -1},
	} {
		t.Run(fmt.Sprintf("%v", tc.err), func(t *testing.T) {
			if got, want := Status(tc.err), tc.want; got != want {
				t.Fatalf("invalid status: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	err := errorf(BufferTooSmall, "buffer too small")

	for _, tc := range []struct {
		name string
		size int
		want string
	}{
		{"large", 256, "footer: buffer too small"},
		{"exact", 24, "footer: buffer too small"},
		{"truncated", 10, "footer: bu"},
		{"empty", 0, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dst := make([]byte, tc.size)
			status, n := Report(dst, err)
			if got, want := status, 7; got != want {
				t.Fatalf("invalid status: got=%d, want=%d", got, want)
			}
			if got, want := string(dst[:n]), tc.want; got != want {
				t.Fatalf("invalid message: got=%q, want=%q", got, want)
			}
		})
	}

	status, n := Report(make([]byte, 8), nil)
	if status != 0 || n != 0 {
		t.Fatalf("invalid report of nil error: status=%d, n=%d", status, n)
	}
}

func TestKind(t *testing.T) {
	if got, want := InvalidRecordSize.String(), "invalid record size"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
	if got, want := Kind(42).String(), "Kind(42)"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
	if got, want := BufferTooSmall.Error(), "footer: buffer too small"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}

	err := errorf(InvalidRecordCount, "no record")
	if errors.Is(err, InvalidRecordSize) {
		t.Fatalf("unexpected kind match")
	}
	var e *Error
	if !errors.As(fmt.Errorf("wrap: %w", err), &e) || e.Kind != InvalidRecordCount {
		t.Fatalf("could not retrieve footer error from %v", err)
	}
}
