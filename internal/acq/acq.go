// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package acq describes acquisition configurations the way commands
// receive them: as command-line flags or YAML documents.
package acq // import "github.com/go-lpc/ats/internal/acq"

import (
	"flag"
	"fmt"

	"github.com/go-lpc/ats/footer"
)

// Acquisition is the textual form of a footer.Configuration.
type Acquisition struct {
	Board            string `yaml:"board"`
	Domain           string `yaml:"domain"`
	Channels         int    `yaml:"channels"`
	Layout           string `yaml:"layout"`
	BytesPerRecord   int    `yaml:"bytes_per_record"`
	RecordsPerBuffer int    `yaml:"records_per_buffer"`
	FIFO             bool   `yaml:"fifo"`
}

// Default returns the acquisition used when nothing else is specified.
func Default() Acquisition {
	return Acquisition{
		Board:            "ats9130",
		Domain:           "time",
		Channels:         2,
		Layout:           "sample",
		BytesPerRecord:   4096,
		RecordsPerBuffer: 2,
	}
}

// Flags binds the fields of acq to command-line flags of fset,
// using the current values as defaults.
func (acq *Acquisition) Flags(fset *flag.FlagSet) {
	fset.StringVar(&acq.Board, "board", acq.Board, "board type (name or numeric id)")
	fset.StringVar(&acq.Domain, "domain", acq.Domain, "data domain (time|freq)")
	fset.IntVar(&acq.Channels, "ch", acq.Channels, "number of active channels")
	fset.StringVar(&acq.Layout, "layout", acq.Layout, "data layout (buffer|record|sample)")
	fset.IntVar(&acq.BytesPerRecord, "rec", acq.BytesPerRecord, "bytes per record, per channel")
	fset.IntVar(&acq.RecordsPerBuffer, "n", acq.RecordsPerBuffer, "records per buffer, per channel")
	fset.BoolVar(&acq.FIFO, "fifo", acq.FIFO, "enable FIFO mode (final footer may be missing)")
}

// Config converts acq into a validated footer configuration.
func (acq Acquisition) Config() (footer.Configuration, error) {
	var cfg footer.Configuration

	board, ok := footer.ParseBoard(acq.Board)
	if !ok {
		return cfg, fmt.Errorf("acq: unknown board %q", acq.Board)
	}
	domain, ok := footer.ParseDataDomain(acq.Domain)
	if !ok {
		return cfg, fmt.Errorf("acq: unknown data domain %q", acq.Domain)
	}
	layout, ok := footer.ParseDataLayout(acq.Layout)
	if !ok {
		return cfg, fmt.Errorf("acq: unknown data layout %q", acq.Layout)
	}

	cfg = footer.Configuration{
		Board:            board,
		Domain:           domain,
		Channels:         acq.Channels,
		Layout:           layout,
		BytesPerRecord:   acq.BytesPerRecord,
		RecordsPerBuffer: acq.RecordsPerBuffer,
		FIFO:             acq.FIFO,
	}

	err := cfg.Validate()
	if err != nil {
		return cfg, fmt.Errorf("acq: invalid configuration: %w", err)
	}
	return cfg, nil
}
