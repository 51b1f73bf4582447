// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ats-gen writes synthetic ATS buffer files.
//
// Footers carry consecutive record numbers, starting at 0, and trigger
// timestamps spaced by a fixed number of clock ticks.
// In FIFO mode, the final footer of the file is left out, as when an
// acquisition is stopped before the end of a buffer.
package main // import "github.com/go-lpc/ats/cmd/ats-gen"

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/go-lpc/ats/footer"
	"github.com/go-lpc/ats/internal/acq"
)

var (
	msg = log.New(os.Stdout, "ats-gen: ", 0)
)

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	var (
		fset  = flag.NewFlagSet("ats-gen", flag.ExitOnError)
		desc  = acq.Default()
		oname = fset.String("o", "out.bin", "path to output buffer file")
		nbufs = fset.Int("buffers", 1, "number of buffers to generate")
		ticks = fset.Uint64("ticks", 50000, "clock ticks between two triggers")
		seed  = fset.Int64("seed", 1234, "seed for the records payload")
	)
	desc.Flags(fset)

	fset.Usage = func() {
		fmt.Printf(`Usage: ats-gen [OPTIONS]

ex:
 $> ats-gen -o out.bin -board ats9130 -ch 2 -layout sample -rec 4096 -n 2 -buffers 10 -ticks 50000

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		msg.Fatalf("could not parse input arguments: %+v", err)
	}

	if *oname == "" {
		fset.Usage()
		msg.Fatalf("invalid output file name")
	}

	cfg, err := desc.Config()
	if err != nil {
		msg.Fatalf("invalid acquisition configuration: %+v", err)
	}

	err = process(*oname, cfg, *nbufs, *ticks, *seed)
	if err != nil {
		msg.Fatalf("could not generate buffer file: %+v", err)
	}
}

func process(oname string, cfg footer.Configuration, nbufs int, ticks uint64, seed int64) error {
	if nbufs <= 0 {
		return fmt.Errorf("invalid number of buffers %d", nbufs)
	}

	ft := footer.FooterTypeOf(cfg.Board)
	size, err := footer.BufferSize(cfg, ft)
	if err != nil {
		return fmt.Errorf("could not compute buffer size: %w", err)
	}

	var (
		lay  = footer.NewLayout(cfg, ft)
		rnd  = rand.New(rand.NewSource(seed))
		buf  = make([]byte, size)
		fs0  = make([]footer.Type0, lay.Slots)
		fs1  = make([]footer.Type1, lay.Slots)
		irec uint32
	)

	f, err := os.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for ibuf := 0; ibuf < nbufs; ibuf++ {
		_, _ = rnd.Read(buf)
		for i := range fs0 {
			ts := uint64(irec+1) * ticks
			fs0[i] = footer.Type0{
				TriggerTimestamp: ts,
				RecordNumber:     irec,
				FrameCount:       uint32(ibuf + 1),
				AuxInState:       uint8(irec & 1),
			}
			fs1[i] = footer.Type1{
				TriggerTimestamp: ts,
				RecordNumber:     irec,
				FrameCount:       uint32(ibuf + 1),
				AuxInState:       uint8(irec & 1),
				AnalogValue:      uint16(rnd.Intn(1 << 12)),
			}
			irec++
		}

		switch ft {
		case footer.FooterType1:
			err = footer.Write1(buf, cfg, fs1)
		default:
			err = footer.Write0(buf, cfg, fs0)
		}
		if err != nil {
			return fmt.Errorf("could not write footers of buffer %d: %w", ibuf, err)
		}

		out := buf
		if cfg.FIFO && ibuf == nbufs-1 {
			out = buf[:lay.MinSize()]
		}
		_, err = w.Write(out)
		if err != nil {
			return fmt.Errorf("could not write buffer %d: %w", ibuf, err)
		}
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("could not flush output file: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("could not close output file: %w", err)
	}

	return nil
}
