// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import (
	"strconv"
	"strings"
)

// BoardType identifies an AlazarTech product.
// Values follow the numbering of the vendor SDK.
type BoardType uint32

const (
	ATS850 BoardType = iota + 1
	ATS310
	ATS330
	ATS855
	ATS315
	ATS335
	ATS460
	ATS860
	ATS660
	ATS665
	ATS9462
	ATS9434
	ATS9870
	ATS9350
	ATS9325
	ATS9440
	ATS9410
	ATS9351
	ATS9310
	ATS9461
	ATS9850
	ATS9625
	ATG6500
	ATS9626
	ATS9360
	AXI9870
	ATS9370
	ATU7825
	ATS9373
	ATS9416
	ATS9637
	ATS9120
	ATS9371
	ATS9130
	ATS9352
	ATS9453
	ATS9146
	ATS9000
	ATST371
	ATS9437
	ATS9618
	ATS9358
	Forest
	ATS9353
	ATS9872
	ATS9470
	ATS9628
)

// FooterType identifies the footer variant a board writes.
type FooterType uint8

const (
	FooterType0 FooterType = iota
	FooterType1
)

func (ft FooterType) String() string {
	switch ft {
	case FooterType0:
		return "type-0"
	case FooterType1:
		return "type-1"
	}
	return "FooterType(" + strconv.Itoa(int(ft)) + ")"
}

// Size returns the size in bytes of an encoded footer.
func (ft FooterType) Size() int {
	if ft == FooterType1 {
		return Size1
	}
	return Size0
}

type board struct {
	name   string
	footer FooterType
	bits   int // vertical resolution
	nchans int // max number of channels
}

// bytesPerSample is the resolution padded to the next byte boundary.
func (b board) bytesPerSample() int {
	return (b.bits + 7) / 8
}

var catalog = map[BoardType]board{
	ATS850:  {"ATS850", FooterType0, 8, 2},
	ATS310:  {"ATS310", FooterType0, 12, 2},
	ATS330:  {"ATS330", FooterType0, 12, 2},
	ATS855:  {"ATS855", FooterType0, 8, 4},
	ATS315:  {"ATS315", FooterType0, 12, 2},
	ATS335:  {"ATS335", FooterType0, 12, 2},
	ATS460:  {"ATS460", FooterType0, 14, 2},
	ATS860:  {"ATS860", FooterType0, 8, 2},
	ATS660:  {"ATS660", FooterType0, 16, 2},
	ATS665:  {"ATS665", FooterType0, 16, 2},
	ATS9462: {"ATS9462", FooterType0, 16, 2},
	ATS9434: {"ATS9434", FooterType0, 14, 4},
	ATS9870: {"ATS9870", FooterType0, 8, 2},
	ATS9350: {"ATS9350", FooterType0, 12, 2},
	ATS9325: {"ATS9325", FooterType0, 12, 2},
	ATS9440: {"ATS9440", FooterType0, 14, 4},
	ATS9410: {"ATS9410", FooterType0, 10, 4},
	ATS9351: {"ATS9351", FooterType0, 12, 2},
	ATS9310: {"ATS9310", FooterType0, 12, 2},
	ATS9461: {"ATS9461", FooterType0, 10, 2},
	ATS9850: {"ATS9850", FooterType0, 8, 2},
	ATS9625: {"ATS9625", FooterType0, 16, 2},
	ATG6500: {"ATG6500", FooterType0, 8, 2},
	ATS9626: {"ATS9626", FooterType0, 16, 2},
	ATS9360: {"ATS9360", FooterType0, 12, 2},
	AXI9870: {"AXI9870", FooterType0, 8, 2},
	ATS9370: {"ATS9370", FooterType0, 12, 2},
	ATU7825: {"ATU7825", FooterType0, 8, 2},
	ATS9373: {"ATS9373", FooterType0, 12, 2},
	ATS9416: {"ATS9416", FooterType0, 14, 16},
	ATS9637: {"ATS9637", FooterType0, 16, 2},
	ATS9120: {"ATS9120", FooterType0, 12, 2},
	ATS9371: {"ATS9371", FooterType0, 12, 2},
	ATS9130: {"ATS9130", FooterType0, 12, 2},
	ATS9352: {"ATS9352", FooterType1, 12, 2},
	ATS9453: {"ATS9453", FooterType0, 14, 2},
	ATS9146: {"ATS9146", FooterType0, 14, 2},
	ATS9000: {"ATS9000", FooterType0, 12, 2},
	ATST371: {"ATST371", FooterType0, 12, 2},
	ATS9437: {"ATS9437", FooterType0, 14, 4},
	ATS9618: {"ATS9618", FooterType0, 16, 2},
	ATS9358: {"ATS9358", FooterType0, 12, 2},
	Forest:  {"Forest", FooterType0, 12, 2},
	ATS9353: {"ATS9353", FooterType1, 12, 2},
	ATS9872: {"ATS9872", FooterType0, 8, 2},
	ATS9470: {"ATS9470", FooterType0, 14, 2},
	ATS9628: {"ATS9628", FooterType0, 16, 2},
}

func (b BoardType) String() string {
	if v, ok := catalog[b]; ok {
		return v.name
	}
	return "BoardType(" + strconv.Itoa(int(b)) + ")"
}

// MaxChannels returns the number of input channels of the board,
// or 0 if the board is unknown.
func (b BoardType) MaxChannels() int {
	return catalog[b].nchans
}

// BytesPerSample returns the number of bytes the board normally uses
// to store one sample, or 0 if the board is unknown.
func (b BoardType) BytesPerSample() int {
	return catalog[b].bytesPerSample()
}

// FooterTypeOf returns the footer type written by the board b.
// Boards missing from the catalog map to FooterType0; configurations holding such
// boards are rejected by Configuration.Validate.
func FooterTypeOf(b BoardType) FooterType {
	return catalog[b].footer
}

// ParseBoard returns the board type named s (e.g. "ats9130", "ATS9352").
// Numeric SDK identifiers are accepted too.
func ParseBoard(s string) (BoardType, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseUint(s, 10, 32); err == nil {
		b := BoardType(v)
		_, ok := catalog[b]
		return b, ok
	}
	for id, b := range catalog {
		if strings.EqualFold(b.name, s) {
			return id, true
		}
	}
	return 0, false
}
