// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import "testing"

func TestCatalog(t *testing.T) {
	if got, want := len(catalog), 47; got != want {
		t.Fatalf("invalid catalog size: got=%d, want=%d", got, want)
	}

	for id := ATS850; id <= ATS9628; id++ {
		b, ok := catalog[id]
		if !ok {
			t.Fatalf("board %d missing from catalog", id)
		}
		if b.nchans < 1 {
			t.Fatalf("board %s has no channel", b.name)
		}
		switch bps := b.bytesPerSample(); bps {
		case 1, 2:
		default:
			t.Fatalf("board %s has invalid bytes/sample %d", b.name, bps)
		}

		want := FooterType0
		if id == ATS9352 || id == ATS9353 {
			want = FooterType1
		}
		if got := FooterTypeOf(id); got != want {
			t.Fatalf("invalid footer type for %s: got=%v, want=%v", id, got, want)
		}
	}
}

func TestBoard(t *testing.T) {
	for _, tc := range []struct {
		board BoardType
		name  string
		bps   int
		max   int
	}{
		{ATS9130, "ATS9130", 2, 2},
		{ATS9872, "ATS9872", 1, 2},
		{ATS9416, "ATS9416", 2, 16},
		{ATS9410, "ATS9410", 2, 4},
		{0, "BoardType(0)", 0, 0},
		{99, "BoardType(99)", 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := tc.board.String(), tc.name; got != want {
				t.Fatalf("invalid name: got=%q, want=%q", got, want)
			}
			if got, want := tc.board.BytesPerSample(), tc.bps; got != want {
				t.Fatalf("invalid bytes/sample: got=%d, want=%d", got, want)
			}
			if got, want := tc.board.MaxChannels(), tc.max; got != want {
				t.Fatalf("invalid max channels: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestParseBoard(t *testing.T) {
	for _, tc := range []struct {
		s    string
		want BoardType
		ok   bool
	}{
		{"ats9130", ATS9130, true},
		{"ATS9352", ATS9352, true},
		{"forest", Forest, true},
		{"34", ATS9130, true},
		{"ats9999", 0, false},
		{"99", 99, false},
		{"", 0, false},
	} {
		t.Run(tc.s, func(t *testing.T) {
			got, ok := ParseBoard(tc.s)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("got=(%v, %v), want=(%v, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestFooterType(t *testing.T) {
	for _, tc := range []struct {
		ft   FooterType
		name string
		size int
	}{
		{FooterType0, "type-0", 17},
		{FooterType1, "type-1", 19},
		{FooterType(2), "FooterType(2)", 17},
	} {
		if got, want := tc.ft.String(), tc.name; got != want {
			t.Fatalf("invalid name: got=%q, want=%q", got, want)
		}
		if got, want := tc.ft.Size(), tc.size; got != want {
			t.Fatalf("invalid size for %s: got=%d, want=%d", tc.name, got, want)
		}
	}
}
