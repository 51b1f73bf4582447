// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ats-dump decodes and displays the record footers of ATS buffer files.
//
// Usage: ats-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> ats-dump -board ats9130 -ch 2 -layout sample -rec 4096 -n 2 ./testdata/run-042.bin
//	=== buffer 0 (16418 bytes) ===
//	footers:             2 (type-0)
//	  [  0] record=         0 ts=           50000 frames=     7 aux=0x01
//	  [  1] record=         1 ts=          100000 frames=     7 aux=0x00
//	[...]
//
// With -native, input files hold consecutive 16-byte footer blocks as
// written by the board firmware:
//
//	$> ats-dump -native -board ats9352 ./testdata/footers.raw
//	=== native footers (32 bytes) ===
//	footers:             2 (type-1)
//	  [  0] record=         0 ts=              10 frames=     1 aux=0x00 analog=0x0120
//	  [  1] record=         1 ts=              20 frames=     1 aux=0x01 analog=0x0ab0
package main // import "github.com/go-lpc/ats/cmd/ats-dump"

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/ats/footer"
	"github.com/go-lpc/ats/internal/acq"
	"github.com/go-lpc/ats/internal/mmap"
)

func main() {
	log.SetPrefix("ats-dump: ")
	log.SetFlags(0)

	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	var (
		fset   = flag.NewFlagSet("ats-dump", flag.ExitOnError)
		desc   = acq.Default()
		native = fset.Bool("native", false, "decode files of firmware footer blocks")
	)
	desc.Flags(fset)

	fset.Usage = func() {
		fmt.Printf(`ats-dump decodes and displays the record footers of ATS buffer files.

Usage: ats-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> ats-dump -board ats9130 -ch 2 -layout sample -rec 4096 -n 2 ./testdata/run-042.bin
 === buffer 0 (16418 bytes) ===
 footers:             2 (type-0)
   [  0] record=         0 ts=           50000 frames=     7 aux=0x01
   [  1] record=         1 ts=          100000 frames=     7 aux=0x00
 [...]

 $> ats-dump -native -board ats9352 ./testdata/footers.raw
 === native footers (32 bytes) ===
 footers:             2 (type-1)
   [  0] record=         0 ts=              10 frames=     1 aux=0x00 analog=0x0120
   [  1] record=         1 ts=              20 frames=     1 aux=0x01 analog=0x0ab0

Options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		log.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() == 0 {
		fset.Usage()
		log.Fatalf("missing path to input buffer file")
	}

	cfg, err := desc.Config()
	if err != nil {
		log.Fatalf("invalid acquisition configuration: %+v", err)
	}

	dump := process
	if *native {
		dump = processNative
	}

	for _, fname := range fset.Args() {
		err := dump(w, fname, cfg)
		if err != nil {
			log.Fatalf("could not dump file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string, cfg footer.Configuration) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	f, err := mmap.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer f.Close()

	bufs, err := acq.Buffers(f.Bytes(), cfg)
	if err != nil {
		return fmt.Errorf("could not split %q into buffers: %w", fname, err)
	}

	ft := footer.FooterTypeOf(cfg.Board)
	for i, buf := range bufs {
		fs, err := acq.Footers(buf, cfg)
		if err != nil {
			return fmt.Errorf("could not decode footers of buffer %d: %w", i, err)
		}

		fmt.Fprintf(wbuf, "=== buffer %d (%d bytes) ===\n", i, len(buf))
		display(wbuf, fs, ft)
	}

	return wbuf.Flush()
}

// processNative decodes a file of firmware footer blocks.
func processNative(w io.Writer, fname string, cfg footer.Configuration) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	f, err := mmap.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer f.Close()

	raw := f.Bytes()
	if len(raw)%footer.NativeSize != 0 {
		return fmt.Errorf(
			"invalid size for %q: %d bytes is not a multiple of %d",
			fname, len(raw), footer.NativeSize,
		)
	}

	var (
		ft = footer.FooterTypeOf(cfg.Board)
		fs = make([]footer.Type1, 0, len(raw)/footer.NativeSize)
	)
	for beg := 0; beg < len(raw); beg += footer.NativeSize {
		i := len(fs)
		n, err := footer.UnpackNative(raw[beg : beg+footer.NativeSize])
		if err != nil {
			return fmt.Errorf("could not unpack native footer %d: %w", i, err)
		}
		switch ft {
		case footer.FooterType1:
			rec, err := n.Type1()
			if err != nil {
				return fmt.Errorf("could not convert native footer %d: %w", i, err)
			}
			fs = append(fs, rec)
		default:
			rec, err := n.Type0()
			if err != nil {
				return fmt.Errorf("could not convert native footer %d: %w", i, err)
			}
			fs = append(fs, footer.Type1{
				TriggerTimestamp: rec.TriggerTimestamp,
				RecordNumber:     rec.RecordNumber,
				FrameCount:       rec.FrameCount,
				AuxInState:       rec.AuxInState,
			})
		}
	}

	fmt.Fprintf(wbuf, "=== native footers (%d bytes) ===\n", len(raw))
	display(wbuf, fs, ft)

	return wbuf.Flush()
}

func display(w io.Writer, fs []footer.Type1, ft footer.FooterType) {
	fmt.Fprintf(w, "footers:    % 10d (%s)\n", len(fs), ft)
	for i, f := range fs {
		fmt.Fprintf(w, "  [% 3d] record=% 10d ts=% 16d frames=% 6d aux=0x%02x",
			i, f.RecordNumber, f.TriggerTimestamp, f.FrameCount, f.AuxInState,
		)
		if ft == footer.FooterType1 {
			fmt.Fprintf(w, " analog=0x%04x", f.AnalogValue)
		}
		fmt.Fprintf(w, "\n")
	}
}
