// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-lpc/ats/conddb"
	"github.com/go-lpc/ats/footer"
)

type fakeDB struct {
	acqs   map[uint32]conddb.Acquisition
	closed bool
}

func (db *fakeDB) Acquisition(ctx context.Context, run uint32) (conddb.Acquisition, error) {
	acq, ok := db.acqs[run]
	if !ok {
		return acq, fmt.Errorf("conddb: no acquisition for run %d", run)
	}
	return acq, nil
}

func (db *fakeDB) Close() error {
	db.closed = true
	return nil
}

func ats9130() footer.Configuration {
	return footer.Configuration{
		Board:            footer.ATS9130,
		Domain:           footer.Time,
		Channels:         2,
		Layout:           footer.SampleInterleaved,
		BytesPerRecord:   4096,
		RecordsPerBuffer: 2,
	}
}

// writeFile writes nbufs buffers acquired with cfg, holding footers with
// consecutive record numbers starting at first.
func writeFile(t *testing.T, fname string, cfg footer.Configuration, nbufs int, first uint32, ticks uint64) {
	t.Helper()

	size, err := footer.BufferSize(cfg, footer.FooterType0)
	if err != nil {
		t.Fatalf("could not compute buffer size: %+v", err)
	}

	var (
		raw  []byte
		irec = first
		n    = footer.NewLayout(cfg, footer.FooterType0).Slots
	)
	for i := 0; i < nbufs; i++ {
		buf := make([]byte, size)
		fs := make([]footer.Type0, n)
		for j := range fs {
			fs[j] = footer.Type0{
				TriggerTimestamp: uint64(irec-first+1) * ticks,
				RecordNumber:     irec,
				FrameCount:       uint32(i),
			}
			irec++
		}
		err = footer.Write0(buf, cfg, fs)
		if err != nil {
			t.Fatalf("could not write footers: %+v", err)
		}
		raw = append(raw, buf...)
	}

	err = os.WriteFile(fname, raw, 0644)
	if err != nil {
		t.Fatalf("could not write file %q: %+v", fname, err)
	}
}

func TestProcess(t *testing.T) {
	tmp := t.TempDir()

	writeFile(t, filepath.Join(tmp, "run-042.bin"), ats9130(), 3, 0, 50000)
	writeFile(t, filepath.Join(tmp, "run-043.bin"), ats9130(), 2, 10, 50000)
	writeFile(t, filepath.Join(tmp, "run-044.bin"), ats9130(), 2, 0, 50000)
	writeFile(t, filepath.Join(tmp, "run-045.bin"), ats9130(), 1, 0, 1000)

	const manifest = `
files:
  - file: run-042.bin
    ticks: 50000
    acquisition:
      board: ats9130
      domain: time
      channels: 2
      layout: sample
      bytes_per_record: 4096
      records_per_buffer: 2
  - file: run-043.bin
    run: 43
    first: 10
  - file: run-044.bin
    first: 3
    acquisition:
      board: ats9130
      domain: time
      channels: 2
      layout: sample
      bytes_per_record: 4096
      records_per_buffer: 2
  - file: run-045.bin
    ticks: 50000
    acquisition:
      board: ats9130
      domain: time
      channels: 2
      layout: sample
      bytes_per_record: 4096
      records_per_buffer: 2
  - file: run-046.bin
    acquisition:
      board: ats9130
      domain: time
      channels: 2
      layout: sample
      bytes_per_record: 4096
      records_per_buffer: 2
`
	fname := filepath.Join(tmp, "manifest.yaml")
	err := os.WriteFile(fname, []byte(manifest), 0644)
	if err != nil {
		t.Fatalf("could not write manifest: %+v", err)
	}

	db := &fakeDB{
		acqs: map[uint32]conddb.Acquisition{
			43: {Run: 43, Config: ats9130(), TicksPerTrigger: 50000},
		},
	}
	defer func(f func(string) (condDB, error)) { openDB = f }(openDB)
	openDB = func(name string) (condDB, error) {
		if name != "ats-test" {
			return nil, fmt.Errorf("unknown db %q", name)
		}
		return db, nil
	}

	for _, njobs := range []int{1, 4} {
		t.Run(fmt.Sprintf("jobs=%d", njobs), func(t *testing.T) {
			out := new(strings.Builder)
			nbad, err := process(out, fname, "ats-test", njobs)
			if err != nil {
				t.Fatalf("could not process manifest: %+v", err)
			}
			if got, want := nbad, 3; got != want {
				t.Fatalf("invalid number of failures: got=%d, want=%d\n%s", got, want, out.String())
			}
			if !db.closed {
				t.Fatalf("condition DB not closed")
			}

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			if got, want := len(lines), 5; got != want {
				t.Fatalf("invalid number of lines: got=%d, want=%d\n%s", got, want, out.String())
			}

			for i, want := range []string{
				filepath.Join(tmp, "run-042.bin") + ": OK (buffers=3, footers=6)",
				filepath.Join(tmp, "run-043.bin") + ": OK (buffers=2, footers=4)",
				filepath.Join(tmp, "run-044.bin") + ": FAIL: verify: footer 0 has record number 0 instead of 3",
				filepath.Join(tmp, "run-045.bin") + ": FAIL: verify: timestamp difference",
				filepath.Join(tmp, "run-046.bin") + ": FAIL: could not open file",
			} {
				if !strings.HasPrefix(lines[i], want) {
					t.Fatalf("invalid line %d:\ngot= %q\nwant=%q", i, lines[i], want)
				}
			}
		})
	}
}

func TestProcessInvalidManifest(t *testing.T) {
	tmp := t.TempDir()

	for _, tc := range []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "no-file",
			doc:  "files:\n  - ticks: 10\n",
			want: "manifest entry 0 has no file",
		},
		{
			name: "no-config",
			doc:  "files:\n  - file: run.bin\n",
			want: "manifest entry 0 (run.bin) has neither acquisition nor run",
		},
		{
			name: "unknown-field",
			doc:  "files:\n  - file: run.bin\n    color: blue\n",
			want: "could not decode manifest",
		},
		{
			name: "bad-acquisition",
			doc:  "files:\n  - file: run.bin\n    acquisition:\n      board: ats9130\n      domain: time\n      channels: 3\n      layout: sample\n      bytes_per_record: 4096\n      records_per_buffer: 2\n",
			want: "invalid acquisition for",
		},
		{
			name: "no-db",
			doc:  "files:\n  - file: run.bin\n    run: 42\n",
			want: "could not open condition DB",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fname := filepath.Join(tmp, tc.name+".yaml")
			err := os.WriteFile(fname, []byte(tc.doc), 0644)
			if err != nil {
				t.Fatalf("could not write manifest: %+v", err)
			}

			defer func(f func(string) (condDB, error)) { openDB = f }(openDB)
			openDB = func(name string) (condDB, error) {
				return nil, fmt.Errorf("no db")
			}

			_, err = process(new(strings.Builder), fname, "ats", 1)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if got := err.Error(); !strings.Contains(got, tc.want) {
				t.Fatalf("invalid error:\ngot= %q\nwant=%q", got, tc.want)
			}
		})
	}

	_, err := process(new(strings.Builder), filepath.Join(tmp, "not-there.yaml"), "ats", 1)
	if err == nil {
		t.Fatalf("expected an error")
	}
}
