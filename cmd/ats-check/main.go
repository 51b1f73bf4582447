// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ats-check checks the record footers of the ATS buffer files
// listed in a YAML manifest.
//
// Each file is decoded buffer by buffer; record numbers must be
// consecutive and trigger timestamps evenly spaced.
//
// Example manifest:
//
//	files:
//	  - file: run-042.bin
//	    ticks: 50000
//	    acquisition:
//	      board: ats9130
//	      domain: time
//	      channels: 2
//	      layout: sample
//	      bytes_per_record: 4096
//	      records_per_buffer: 2
//	  - file: run-043.bin
//	    run: 43  # configuration taken from the condition DB
package main // import "github.com/go-lpc/ats/cmd/ats-check"

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-lpc/ats/conddb"
	"github.com/go-lpc/ats/footer"
	"github.com/go-lpc/ats/internal/acq"
	"github.com/go-lpc/ats/internal/mmap"
	"github.com/go-lpc/ats/internal/verify"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func main() {
	log.SetPrefix("ats-check: ")
	log.SetFlags(0)

	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	var (
		fset   = flag.NewFlagSet("ats-check", flag.ExitOnError)
		njobs  = fset.Int("j", runtime.NumCPU(), "number of files checked concurrently")
		dbname = fset.String("db", "ats", "name of the condition DB")
	)

	fset.Usage = func() {
		fmt.Printf(`Usage: ats-check [OPTIONS] manifest.yaml

ex:
 $> ats-check -j 4 ./manifest.yaml
 $> ats-check -db ats-test ./manifest.yaml

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		log.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() != 1 {
		fset.Usage()
		log.Fatalf("missing path to input manifest")
	}

	nbad, err := process(w, fset.Arg(0), *dbname, *njobs)
	if err != nil {
		log.Fatalf("could not check manifest: %+v", err)
	}
	if nbad > 0 {
		log.Fatalf("%d file(s) failed the checks", nbad)
	}
}

type manifest struct {
	Files []entry `yaml:"files"`
}

type entry struct {
	File  string `yaml:"file"`
	Run   uint32 `yaml:"run"`
	First uint32 `yaml:"first"` // record number of the first footer
	Ticks uint64 `yaml:"ticks"` // clock ticks between two triggers (0: unchecked)

	Acq *acq.Acquisition `yaml:"acquisition"`
}

type result struct {
	bufs int
	recs int
	err  error
}

type condDB interface {
	Acquisition(ctx context.Context, run uint32) (conddb.Acquisition, error)
	Close() error
}

var openDB = func(name string) (condDB, error) {
	return conddb.Open(name)
}

func loadManifest(fname string) (manifest, error) {
	var m manifest

	f, err := os.Open(fname)
	if err != nil {
		return m, fmt.Errorf("could not open manifest: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(&m)
	if err != nil {
		return m, fmt.Errorf("could not decode manifest: %w", err)
	}

	dir := filepath.Dir(fname)
	for i, e := range m.Files {
		if e.File == "" {
			return m, fmt.Errorf("manifest entry %d has no file", i)
		}
		if e.Acq == nil && e.Run == 0 {
			return m, fmt.Errorf("manifest entry %d (%s) has neither acquisition nor run", i, e.File)
		}
		if !filepath.IsAbs(e.File) {
			m.Files[i].File = filepath.Join(dir, e.File)
		}
	}

	return m, nil
}

// resolve fills the configuration of entries described by a run number.
func resolve(ctx context.Context, m manifest, dbname string) ([]footer.Configuration, error) {
	var (
		cfgs = make([]footer.Configuration, len(m.Files))
		db   condDB
	)

	for i, e := range m.Files {
		if e.Acq != nil {
			cfg, err := e.Acq.Config()
			if err != nil {
				return nil, fmt.Errorf("invalid acquisition for %s: %w", e.File, err)
			}
			cfgs[i] = cfg
			continue
		}

		if db == nil {
			var err error
			db, err = openDB(dbname)
			if err != nil {
				return nil, fmt.Errorf("could not open condition DB: %w", err)
			}
			defer db.Close()
		}

		a, err := db.Acquisition(ctx, e.Run)
		if err != nil {
			return nil, fmt.Errorf("could not retrieve acquisition of run %d: %w", e.Run, err)
		}
		cfgs[i] = a.Config
		if m.Files[i].Ticks == 0 {
			m.Files[i].Ticks = a.TicksPerTrigger
		}
	}

	return cfgs, nil
}

func process(w io.Writer, fname, dbname string, njobs int) (int, error) {
	m, err := loadManifest(fname)
	if err != nil {
		return 0, err
	}

	ctx := context.Background()
	cfgs, err := resolve(ctx, m, dbname)
	if err != nil {
		return 0, err
	}

	var (
		grp  errgroup.Group
		res  = make([]result, len(m.Files))
		nbad = 0
	)
	if njobs > 0 {
		grp.SetLimit(njobs)
	}

	for i := range m.Files {
		i := i
		grp.Go(func() error {
			res[i] = check(m.Files[i], cfgs[i])
			return nil
		})
	}
	_ = grp.Wait()

	for i, e := range m.Files {
		r := res[i]
		if r.err != nil {
			nbad++
			fmt.Fprintf(w, "%s: FAIL: %+v\n", e.File, r.err)
			continue
		}
		fmt.Fprintf(w, "%s: OK (buffers=%d, footers=%d)\n", e.File, r.bufs, r.recs)
	}

	return nbad, nil
}

func check(e entry, cfg footer.Configuration) result {
	var res result

	f, err := mmap.Open(e.File)
	if err != nil {
		res.err = fmt.Errorf("could not open file: %w", err)
		return res
	}
	defer f.Close()

	bufs, err := acq.Buffers(f.Bytes(), cfg)
	if err != nil {
		res.err = err
		return res
	}

	var (
		nums = make([]uint32, 0, len(bufs))
		ts   = make([]uint64, 0, len(bufs))
	)
	for i, buf := range bufs {
		fs, err := acq.Footers(buf, cfg)
		if err != nil {
			res.err = fmt.Errorf("could not decode buffer %d: %w", i, err)
			return res
		}
		for _, f := range fs {
			nums = append(nums, f.RecordNumber)
			ts = append(ts, f.TriggerTimestamp)
		}
	}
	res.bufs = len(bufs)
	res.recs = len(nums)

	err = verify.RecordNumbers(nums, e.First)
	if err != nil {
		res.err = err
		return res
	}

	if e.Ticks > 0 {
		err = verify.Timestamps(ts, e.Ticks)
		if err != nil {
			res.err = err
			return res
		}
	}

	return res
}
