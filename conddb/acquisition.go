// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conddb

import (
	"context"
	"fmt"
	"time"

	"github.com/go-lpc/ats/footer"
)

// Acquisition describes an acquisition run.
type Acquisition struct {
	Run    uint32
	Config footer.Configuration

	// TicksPerTrigger is the expected number of sample clock ticks
	// between two triggers (0 when the trigger rate is unknown).
	TicksPerTrigger uint64
}

// Acquisition returns the acquisition configuration of the given run.
func (db *DB) Acquisition(ctx context.Context, run uint32) (Acquisition, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	acq := Acquisition{Run: run}
	rows, err := db.db.QueryContext(
		ctx,
		`
SELECT board, domain, channels, layout,
       bytes_per_record, records_per_buffer, fifo, ticks_per_trigger
FROM acquisitions
WHERE run=?
`,
		run,
	)
	if err != nil {
		return acq, fmt.Errorf("conddb: could not query acquisition of run %d: %w", run, err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var (
			board  string
			domain string
			layout string
		)
		err = rows.Scan(
			&board, &domain, &acq.Config.Channels, &layout,
			&acq.Config.BytesPerRecord, &acq.Config.RecordsPerBuffer,
			&acq.Config.FIFO, &acq.TicksPerTrigger,
		)
		if err != nil {
			return acq, fmt.Errorf("conddb: could not scan acquisition of run %d: %w", run, err)
		}
		n++

		var ok bool
		acq.Config.Board, ok = footer.ParseBoard(board)
		if !ok {
			return acq, fmt.Errorf("conddb: run %d: unknown board %q", run, board)
		}
		acq.Config.Domain, ok = footer.ParseDataDomain(domain)
		if !ok {
			return acq, fmt.Errorf("conddb: run %d: unknown data domain %q", run, domain)
		}
		acq.Config.Layout, ok = footer.ParseDataLayout(layout)
		if !ok {
			return acq, fmt.Errorf("conddb: run %d: unknown data layout %q", run, layout)
		}
	}

	if err := rows.Err(); err != nil {
		return acq, fmt.Errorf("conddb: could not scan db for run %d: %w", run, err)
	}

	if err := ctx.Err(); err != nil {
		return acq, fmt.Errorf("conddb: context error while retrieving run %d: %w", run, err)
	}

	switch n {
	case 0:
		return acq, fmt.Errorf("conddb: no acquisition for run %d", run)
	case 1:
		return acq, nil
	default:
		return acq, fmt.Errorf("conddb: %d acquisitions for run %d", n, run)
	}
}
