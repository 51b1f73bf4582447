// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ats-sql displays the acquisition configuration of a run,
// as stored in the condition DB.
package main // import "github.com/go-lpc/ats/cmd/ats-sql"

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-lpc/ats/conddb"
	"github.com/go-lpc/ats/footer"
)

func main() {
	log.SetPrefix("ats-sql: ")
	log.SetFlags(0)

	var (
		dbname = flag.String("db", "ats", "name of the condition DB")
		run    = flag.Uint("run", 0, "run number to inspect (default: last run)")
	)

	flag.Parse()

	db, err := conddb.Open(*dbname)
	if err != nil {
		log.Fatalf("could not open condition DB: %+v", err)
	}
	defer db.Close()

	err = doQuery(os.Stdout, db, uint32(*run))
	if err != nil {
		log.Fatalf("could not do query: %+v", err)
	}
}

type condDB interface {
	LastRun(ctx context.Context) (uint32, error)
	Acquisition(ctx context.Context, run uint32) (conddb.Acquisition, error)
}

func doQuery(w io.Writer, db condDB, run uint32) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if run == 0 {
		v, err := db.LastRun(ctx)
		if err != nil {
			return fmt.Errorf("could not get last run: %w", err)
		}
		run = v
	}

	acq, err := db.Acquisition(ctx, run)
	if err != nil {
		return fmt.Errorf("could not get acquisition of run %d: %w", run, err)
	}

	var (
		cfg = acq.Config
		ft  = footer.FooterTypeOf(cfg.Board)
	)
	size, err := footer.BufferSize(cfg, ft)
	if err != nil {
		return fmt.Errorf("invalid acquisition of run %d: %w", run, err)
	}

	fmt.Fprintf(w, "run:                %d\n", acq.Run)
	fmt.Fprintf(w, "board:              %v (%s footers)\n", cfg.Board, ft)
	fmt.Fprintf(w, "domain:             %v\n", cfg.Domain)
	fmt.Fprintf(w, "channels:           %d\n", cfg.Channels)
	fmt.Fprintf(w, "layout:             %v\n", cfg.Layout)
	fmt.Fprintf(w, "bytes/record:       %d\n", cfg.BytesPerRecord)
	fmt.Fprintf(w, "records/buffer:     %d\n", cfg.RecordsPerBuffer)
	fmt.Fprintf(w, "fifo:               %v\n", cfg.FIFO)
	fmt.Fprintf(w, "ticks/trigger:      %d\n", acq.TicksPerTrigger)
	fmt.Fprintf(w, "buffer size:        %d\n", size)

	return nil
}
